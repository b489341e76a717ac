package payout

import "errors"

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrBelowMinimum        = errors.New("amount is below the platform minimum payout")
	ErrInsufficientBalance = errors.New("amount exceeds your current balance")
	ErrMethodNotFound      = errors.New("payout method not found")
	ErrMethodNotUsable     = errors.New("payout method is not approved or not yours")
	ErrTypeNotAllowed      = errors.New("payout method type is not allowed")
)
