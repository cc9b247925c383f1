package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Voucher struct {
	BaseModel
	EventID       uuid.UUID `gorm:"type:uuid;index"`
	Code          string    `gorm:"uniqueIndex"`
	DiscountMinor int64
	Quota         int
	ValidFrom     time.Time
	ValidUntil    time.Time

	Event Event `gorm:"foreignKey:EventID"`
}
