package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is the inventory unit. Stock is only ever mutated through the
// conditional updates in the ticket repository; the check constraint is the
// last line of defense, not the concurrency mechanism.
type Ticket struct {
	ID         uint      `gorm:"primaryKey"`
	EventID    uuid.UUID `gorm:"type:uuid;index"`
	Title      string
	PriceMinor int64
	Stock      int `gorm:"check:stock >= 0"`
	CreatedAt  int64
	UpdatedAt  int64
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Event Event `gorm:"foreignKey:EventID"`
}
