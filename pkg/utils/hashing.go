package utils

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferralCode returns an uppercase code without ambiguous
// characters (no I/O/0/1). Uniqueness is enforced by the users table index;
// callers retry on collision.
func GenerateReferralCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid referral code length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	for i, b := range bytes {
		bytes[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(bytes), nil
}
