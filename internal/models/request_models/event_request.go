package request_models

import "time"

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type CreateTicketRequest struct {
	EventSlug  string `json:"event_slug" binding:"required"`
	Title      string `json:"title" binding:"required"`
	PriceMinor int64  `json:"price_minor" binding:"required,gt=0"`
	Stock      int    `json:"stock" binding:"required,gt=0"`
}

type CreateVoucherRequest struct {
	EventSlug     string    `json:"event_slug" binding:"required"`
	Code          string    `json:"code" binding:"required"`
	DiscountMinor int64     `json:"discount_minor" binding:"required,gt=0"`
	Quota         int       `json:"quota" binding:"required,gt=0"`
	ValidFrom     time.Time `json:"valid_from" binding:"required"`
	ValidUntil    time.Time `json:"valid_until" binding:"required"`
}
