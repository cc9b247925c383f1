package db_models

import "github.com/google/uuid"

// PointBalance is one referral credit batch. Batches expire independently,
// so the usable balance is the sum of non-expired rows.
type PointBalance struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Amount    int64
	ExpiresAt int64

	User User `gorm:"foreignKey:UserID"`
}
