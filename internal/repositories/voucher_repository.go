package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tiketku/internal/models/db_models"
)

type VoucherFilter struct {
	EventID  *uuid.UUID
	Code     string
	Page     int
	PageSize int
}

type VoucherRepository interface {
	Insert(ctx context.Context, voucher *dbm.Voucher) error
	FindByCode(ctx context.Context, code string) (*dbm.Voucher, error)
	List(ctx context.Context, filter VoucherFilter) ([]dbm.Voucher, int64, error)
}

type voucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Insert(ctx context.Context, voucher *dbm.Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

func (r *voucherRepository) FindByCode(ctx context.Context, code string) (*dbm.Voucher, error) {
	var voucher dbm.Voucher
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&voucher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) List(ctx context.Context, filter VoucherFilter) ([]dbm.Voucher, int64, error) {
	query := r.db.WithContext(ctx).Model(&dbm.Voucher{})
	if filter.EventID != nil {
		query = query.Where("event_id = ?", *filter.EventID)
	}
	if filter.Code != "" {
		query = query.Where("code ILIKE ?", "%"+filter.Code+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vouchers []dbm.Voucher
	err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&vouchers).Error
	return vouchers, total, err
}
