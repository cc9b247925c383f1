package services

import (
	"context"

	"github.com/google/uuid"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/models/request_models"
	"tiketku/internal/models/response_models"
	"tiketku/internal/repositories"
	"tiketku/pkg/utils"
)

// Voucher codes are catalog data only. They are intentionally not applied
// to checkout totals.
type VoucherServiceInterface interface {
	ListVouchers(ctx context.Context, eventSlug, code string, page, pageSize int) ([]response_models.VoucherResponse, *response_models.PageMeta, error)
	CreateVoucher(ctx context.Context, request request_models.CreateVoucherRequest) (*response_models.VoucherResponse, error)
}

type VoucherService struct {
	vouchers repositories.VoucherRepository
	events   repositories.EventRepository
}

func NewVoucherService(vouchers repositories.VoucherRepository, events repositories.EventRepository) VoucherServiceInterface {
	return &VoucherService{vouchers: vouchers, events: events}
}

func (s *VoucherService) ListVouchers(ctx context.Context, eventSlug, code string, page, pageSize int) ([]response_models.VoucherResponse, *response_models.PageMeta, error) {
	var eventID *uuid.UUID
	if eventSlug != "" {
		event, err := s.events.FindBySlug(ctx, eventSlug)
		if err != nil {
			return nil, nil, utils.ErrDatabaseError
		}
		if event == nil {
			return nil, nil, utils.ErrEventNotFound
		}
		eventID = &event.ID
	}

	vouchers, total, err := s.vouchers.List(ctx, repositories.VoucherFilter{
		EventID:  eventID,
		Code:     code,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	data := make([]response_models.VoucherResponse, 0, len(vouchers))
	for _, voucher := range vouchers {
		data = append(data, toVoucherResponse(&voucher))
	}
	meta := &response_models.PageMeta{Page: page, PageSize: pageSize, Total: total}
	return data, meta, nil
}

func (s *VoucherService) CreateVoucher(ctx context.Context, request request_models.CreateVoucherRequest) (*response_models.VoucherResponse, error) {
	event, err := s.events.FindBySlug(ctx, request.EventSlug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	existing, err := s.vouchers.FindByCode(ctx, request.Code)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrVoucherCodeTaken
	}

	voucher := &dbm.Voucher{
		EventID:       event.ID,
		Code:          request.Code,
		DiscountMinor: request.DiscountMinor,
		Quota:         request.Quota,
		ValidFrom:     request.ValidFrom,
		ValidUntil:    request.ValidUntil,
	}
	if err := s.vouchers.Insert(ctx, voucher); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toVoucherResponse(voucher)
	return &resp, nil
}

func toVoucherResponse(voucher *dbm.Voucher) response_models.VoucherResponse {
	return response_models.VoucherResponse{
		Code:          voucher.Code,
		DiscountMinor: voucher.DiscountMinor,
		Quota:         voucher.Quota,
		ValidFrom:     voucher.ValidFrom,
		ValidUntil:    voucher.ValidUntil,
	}
}
