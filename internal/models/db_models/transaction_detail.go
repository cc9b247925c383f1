package db_models

// TransactionDetail is an immutable line item. PriceMinor snapshots the
// ticket price at purchase time so later catalog edits cannot change what
// the buyer owes, and Qty is what compensation restores on reject/expiry.
type TransactionDetail struct {
	ID            uint `gorm:"primaryKey"`
	TransactionID uint `gorm:"index"`
	TicketID      uint `gorm:"index"`
	Qty           int
	PriceMinor    int64
	CreatedAt     int64

	Ticket Ticket `gorm:"foreignKey:TicketID"`
}
