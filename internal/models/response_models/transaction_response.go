package response_models

import "time"

type CreateTransactionResponse struct {
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	AmountMinor int64     `json:"amount_minor"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type TransactionItemResponse struct {
	TicketID   uint  `json:"ticket_id"`
	Qty        int   `json:"qty"`
	PriceMinor int64 `json:"price_minor"`
}

type TransactionResponse struct {
	Reference    string                    `json:"reference"`
	Status       string                    `json:"status"`
	AmountMinor  int64                     `json:"amount_minor"`
	PaymentProof string                    `json:"payment_proof,omitempty"`
	ExpiresAt    time.Time                 `json:"expires_at"`
	CreatedAt    time.Time                 `json:"created_at"`
	Items        []TransactionItemResponse `json:"items"`
}

type PageMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

type TransactionListResponse struct {
	Data []TransactionResponse `json:"data"`
	Meta PageMeta              `json:"meta"`
}
