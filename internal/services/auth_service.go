package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/models/request_models"
	"tiketku/internal/models/response_models"
	"tiketku/internal/repositories"
	"tiketku/pkg/utils"
)

const (
	referralCodeLength = 8
	referralBonus      = 10000
	referralBonusTTL   = 90 * 24 * time.Hour // points expire after three months
)

type AuthServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.RegisterResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
}

type AuthService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) AuthServiceInterface {
	return &AuthService{users: users}
}

func (a *AuthService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.RegisterResponse, error) {
	existing, err := a.users.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	// Registering with someone's referral code credits the referrer.
	var referrer *dbm.User
	var credit *dbm.PointBalance
	if request.ReferralCode != "" {
		referrer, err = a.users.FindByReferralCode(ctx, request.ReferralCode)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if referrer == nil {
			return nil, utils.ErrReferralNotFound
		}
		credit = &dbm.PointBalance{
			Amount:    referralBonus,
			ExpiresAt: time.Now().Add(referralBonusTTL).Unix(),
		}
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	role := request.Role
	if role == "" {
		role = dbm.RoleCustomer
	}

	code, err := utils.GenerateReferralCode(referralCodeLength)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &dbm.User{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		ReferralCode: code,
	}

	if err := a.users.CreateWithReferralCredit(ctx, user, referrer, credit); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if referrer != nil {
		logrus.WithFields(logrus.Fields{
			"referrer": referrer.ID,
			"amount":   referralBonus,
		}).Info("referral bonus credited")
	}

	return &response_models.RegisterResponse{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		ReferralCode: user.ReferralCode,
	}, nil
}

func (a *AuthService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	user, err := a.users.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	points, err := a.users.ActivePoints(ctx, user.ID, time.Now().Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.LoginResponse{
		AccessToken: token,
		Name:        user.Name,
		Role:        user.Role,
		Points:      points,
	}, nil
}
