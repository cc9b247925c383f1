package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/models/request_models"
	"tiketku/pkg/utils"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account with a referral code", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewAuthService(users)

		resp, err := svc.Register(ctx, request_models.RegisterRequest{
			Name:     "Budi",
			Email:    "budi@example.com",
			Password: "s3cretpass",
		})
		require.NoError(t, err)
		assert.Equal(t, dbm.RoleCustomer, resp.Role)
		assert.Len(t, resp.ReferralCode, referralCodeLength)

		stored, err := users.FindByEmail(ctx, "budi@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		existing := dbm.User{Name: "Budi", Email: "budi@example.com"}
		existing.ID = uuid.New()
		users := newFakeUserRepo(existing)
		svc := NewAuthService(users)

		_, err := svc.Register(ctx, request_models.RegisterRequest{
			Name:     "Other",
			Email:    "budi@example.com",
			Password: "s3cretpass",
		})
		assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	})

	t.Run("credits the referrer", func(t *testing.T) {
		referrer := dbm.User{Name: "Sari", Email: "sari@example.com", ReferralCode: "SARI2024"}
		referrer.ID = uuid.New()
		users := newFakeUserRepo(referrer)
		svc := NewAuthService(users)

		_, err := svc.Register(ctx, request_models.RegisterRequest{
			Name:         "Budi",
			Email:        "budi@example.com",
			Password:     "s3cretpass",
			ReferralCode: "SARI2024",
		})
		require.NoError(t, err)

		points, err := users.ActivePoints(ctx, referrer.ID, time.Now().Unix())
		require.NoError(t, err)
		assert.Equal(t, int64(referralBonus), points)

		// The credit carries an expiry; well past it the balance is gone.
		future := time.Now().Add(referralBonusTTL + time.Hour).Unix()
		points, err = users.ActivePoints(ctx, referrer.ID, future)
		require.NoError(t, err)
		assert.Zero(t, points)
	})

	t.Run("rejects unknown referral code", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewAuthService(users)

		_, err := svc.Register(ctx, request_models.RegisterRequest{
			Name:         "Budi",
			Email:        "budi@example.com",
			Password:     "s3cretpass",
			ReferralCode: "NOPE1234",
		})
		assert.ErrorIs(t, err, utils.ErrReferralNotFound)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T) (*fakeUserRepo, AuthServiceInterface) {
		t.Helper()
		users := newFakeUserRepo()
		svc := NewAuthService(users)
		_, err := svc.Register(ctx, request_models.RegisterRequest{
			Name:     "Budi",
			Email:    "budi@example.com",
			Password: "s3cretpass",
		})
		require.NoError(t, err)
		return users, svc
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		_, svc := register(t)
		resp, err := svc.Login(ctx, request_models.LoginRequest{
			Email:    "budi@example.com",
			Password: "s3cretpass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Budi", resp.Name)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, svc := register(t)
		_, err := svc.Login(ctx, request_models.LoginRequest{
			Email:    "budi@example.com",
			Password: "wrongpass1",
		})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})

	t.Run("rejects an unknown account", func(t *testing.T) {
		_, svc := register(t)
		_, err := svc.Login(ctx, request_models.LoginRequest{
			Email:    "ghost@example.com",
			Password: "s3cretpass",
		})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})
}
