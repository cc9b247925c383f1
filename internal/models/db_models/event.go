package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	BaseModel
	Title       string
	Slug        string `gorm:"uniqueIndex"`
	Description string
	Category    string `gorm:"index"`
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	OrganizerID uuid.UUID `gorm:"type:uuid;index"`

	Organizer User     `gorm:"foreignKey:OrganizerID"`
	Tickets   []Ticket `gorm:"foreignKey:EventID"`
}
