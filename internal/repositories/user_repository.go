package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tiketku/internal/models/db_models"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*dbm.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.User, error)
	FindByReferralCode(ctx context.Context, code string) (*dbm.User, error)

	// CreateWithReferralCredit inserts the user and, when referrer is not
	// nil, credits the referrer's point balance in the same database
	// transaction.
	CreateWithReferralCredit(ctx context.Context, user *dbm.User, referrer *dbm.User, credit *dbm.PointBalance) error

	ActivePoints(ctx context.Context, userID uuid.UUID, now int64) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByReferralCode(ctx context.Context, code string) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CreateWithReferralCredit(ctx context.Context, user *dbm.User, referrer *dbm.User, credit *dbm.PointBalance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if referrer != nil && credit != nil {
			credit.UserID = referrer.ID
			if err := tx.Create(credit).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) ActivePoints(ctx context.Context, userID uuid.UUID, now int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&dbm.PointBalance{}).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
