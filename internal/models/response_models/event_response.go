package response_models

import "time"

type TicketResponse struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	PriceMinor int64  `json:"price_minor"`
	Stock      int    `json:"stock"`
}

type EventResponse struct {
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category"`
	Location    string           `json:"location"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Tickets     []TicketResponse `json:"tickets,omitempty"`
}

type EventListResponse struct {
	Data []EventResponse `json:"data"`
	Meta PageMeta        `json:"meta"`
}

type VoucherResponse struct {
	Code          string    `json:"code"`
	DiscountMinor int64     `json:"discount_minor"`
	Quota         int       `json:"quota"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
}
