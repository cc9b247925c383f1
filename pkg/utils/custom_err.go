package utils

import "errors"

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidState        = errors.New("invalid transaction state")
	ErrForbidden           = errors.New("forbidden")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrReferralNotFound    = errors.New("referral code not found")
	ErrVoucherCodeTaken    = errors.New("voucher code already exists")
	ErrInvalidPage         = errors.New("invalid page parameter")
	ErrInvalidPageSize     = errors.New("invalid page size parameter")
	ErrDatabaseError       = errors.New("database error")
)
