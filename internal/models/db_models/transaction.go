package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TxnStatusWaitingForPayment      TransactionStatus = "WAITING_FOR_PAYMENT"
	TxnStatusWaitingForConfirmation TransactionStatus = "WAITING_FOR_CONFIRMATION"
	TxnStatusPaid                   TransactionStatus = "PAID"
	TxnStatusReject                 TransactionStatus = "REJECT"
	TxnStatusExpired                TransactionStatus = "EXPIRED"
)

// Terminal reports whether no further transition may leave s.
func (s TransactionStatus) Terminal() bool {
	switch s {
	case TxnStatusPaid, TxnStatusReject, TxnStatusExpired:
		return true
	}
	return false
}

// Transaction rows are never deleted; terminal states are kept for audit.
// The numeric ID stays internal. Reference is the only identifier handed to
// API clients and doubles as the expiry-job dedup key.
type Transaction struct {
	ID          uint              `gorm:"primaryKey"`
	Reference   uuid.UUID         `gorm:"type:uuid;uniqueIndex"`
	UserID      uuid.UUID         `gorm:"type:uuid;index"`
	Status      TransactionStatus `gorm:"size:32;index"`
	AmountMinor int64
	// Durable URL of the uploaded proof image, set on submission.
	PaymentProof string
	ExpiresAt    int64
	CreatedAt    int64
	UpdatedAt    int64

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	User    User                `gorm:"foreignKey:UserID"`
	Details []TransactionDetail `gorm:"foreignKey:TransactionID"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Reference == uuid.Nil {
		t.Reference = uuid.New()
	}
	return nil
}
