package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tiketku/internal/models/db_models"
	"tiketku/pkg/utils"
)

type TicketRepository interface {
	Insert(ctx context.Context, ticket *dbm.Ticket) error
	FindByID(ctx context.Context, id uint) (*dbm.Ticket, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dbm.Ticket, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, page, pageSize int) ([]dbm.Ticket, int64, error)

	// ReserveStock and RestoreStock run inside the caller's transaction so
	// stock movement commits or rolls back together with the rows that
	// justify it.
	ReserveStock(tx *gorm.DB, ticketID uint, qty int) error
	RestoreStock(tx *gorm.DB, ticketID uint, qty int) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Insert(ctx context.Context, ticket *dbm.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*dbm.Ticket, error) {
	var ticket dbm.Ticket
	err := r.db.WithContext(ctx).First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByIDs(ctx context.Context, ids []uint) ([]dbm.Ticket, error) {
	var tickets []dbm.Ticket
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) ListByEvent(ctx context.Context, eventID uuid.UUID, page, pageSize int) ([]dbm.Ticket, int64, error) {
	var tickets []dbm.Ticket
	var total int64

	query := r.db.WithContext(ctx).Model(&dbm.Ticket{}).Where("event_id = ?", eventID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tickets).Error
	return tickets, total, err
}

// ReserveStock is the single authoritative availability check: one
// conditional UPDATE that only matches while enough stock remains.
// Concurrent reservations on the same ticket serialize on the row, and the
// loser sees zero affected rows instead of a stale read.
func (r *ticketRepository) ReserveStock(tx *gorm.DB, ticketID uint, qty int) error {
	result := tx.Model(&dbm.Ticket{}).
		Where("id = ? AND stock >= ?", ticketID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrInsufficientStock
	}
	return nil
}

func (r *ticketRepository) RestoreStock(tx *gorm.DB, ticketID uint, qty int) error {
	return tx.Model(&dbm.Ticket{}).
		Where("id = ?", ticketID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}
