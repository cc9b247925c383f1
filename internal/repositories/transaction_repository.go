package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tiketku/internal/models/db_models"
	"tiketku/pkg/utils"
)

// TransactionFilter enumerates every field List can filter on. No dynamic
// map filters: a new filter means a new field here.
type TransactionFilter struct {
	UserID   *uuid.UUID
	Status   *dbm.TransactionStatus
	Page     int
	PageSize int
}

type TransactionRepository interface {
	// CreateWithDetails persists the transaction, its line items, and the
	// matching stock decrements in one database transaction. Any failed
	// decrement aborts the whole reservation.
	CreateWithDetails(ctx context.Context, txn *dbm.Transaction, details []dbm.TransactionDetail) error

	FindByReference(ctx context.Context, reference uuid.UUID) (*dbm.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]dbm.Transaction, int64, error)

	// UpdateStatusIf flips status from -> to only while the current status
	// is still from, applying extra column updates in the same statement.
	// Returns whether the guard matched. This is the only way status ever
	// changes, so every race is decided by one conditional UPDATE.
	UpdateStatusIf(ctx context.Context, reference uuid.UUID, from, to dbm.TransactionStatus, updates map[string]interface{}) (bool, error)

	// RejectAndRestore / ExpireAndRestore pair the guarded status flip with
	// compensation of every line item's stock, atomically. The guard losing
	// means another actor already moved the transaction: no stock is
	// touched.
	RejectAndRestore(ctx context.Context, reference uuid.UUID) (bool, error)
	ExpireAndRestore(ctx context.Context, reference uuid.UUID) (bool, error)
}

type transactionRepository struct {
	db      *gorm.DB
	tickets TicketRepository
}

func NewTransactionRepository(db *gorm.DB, tickets TicketRepository) TransactionRepository {
	return &transactionRepository{db: db, tickets: tickets}
}

func (r *transactionRepository) CreateWithDetails(ctx context.Context, txn *dbm.Transaction, details []dbm.TransactionDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		for i := range details {
			details[i].TransactionID = txn.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}

		for _, detail := range details {
			if err := r.tickets.ReserveStock(tx, detail.TicketID, detail.Qty); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *transactionRepository) FindByReference(ctx context.Context, reference uuid.UUID) (*dbm.Transaction, error) {
	var txn dbm.Transaction
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("User").
		Where("reference = ?", reference).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]dbm.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&dbm.Transaction{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []dbm.Transaction
	err := query.
		Preload("Details").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&txns).Error
	return txns, total, err
}

func (r *transactionRepository) UpdateStatusIf(ctx context.Context, reference uuid.UUID, from, to dbm.TransactionStatus, updates map[string]interface{}) (bool, error) {
	return r.guardedUpdate(r.db.WithContext(ctx), reference, from, to, updates)
}

func (r *transactionRepository) RejectAndRestore(ctx context.Context, reference uuid.UUID) (bool, error) {
	return r.transitionAndRestore(ctx, reference, dbm.TxnStatusWaitingForConfirmation, dbm.TxnStatusReject)
}

func (r *transactionRepository) ExpireAndRestore(ctx context.Context, reference uuid.UUID) (bool, error) {
	return r.transitionAndRestore(ctx, reference, dbm.TxnStatusWaitingForPayment, dbm.TxnStatusExpired)
}

// transitionAndRestore runs the guarded flip and, only if the guard won,
// restores every line item's stock in the same database transaction. A crash
// mid-way rolls back both halves, so inventory accounting can never observe
// a half-compensated transaction.
func (r *transactionRepository) transitionAndRestore(ctx context.Context, reference uuid.UUID, from, to dbm.TransactionStatus) (bool, error) {
	won := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := r.guardedUpdate(tx, reference, from, to, nil)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		won = true

		var txn dbm.Transaction
		if err := tx.Where("reference = ?", reference).First(&txn).Error; err != nil {
			return err
		}

		var details []dbm.TransactionDetail
		if err := tx.Where("transaction_id = ?", txn.ID).Find(&details).Error; err != nil {
			return err
		}

		for _, detail := range details {
			if err := r.tickets.RestoreStock(tx, detail.TicketID, detail.Qty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return won, nil
}

func (r *transactionRepository) guardedUpdate(tx *gorm.DB, reference uuid.UUID, from, to dbm.TransactionStatus, updates map[string]interface{}) (bool, error) {
	values := map[string]interface{}{"status": to}
	for column, value := range updates {
		values[column] = value
	}

	result := tx.Model(&dbm.Transaction{}).
		Where("reference = ? AND status = ?", reference, from).
		Updates(values)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
