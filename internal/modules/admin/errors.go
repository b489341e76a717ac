package admin

import "errors"

var (
	ErrInvalidStatus   = errors.New("status must be approved or rejected")
	ErrMissingReason   = errors.New("a rejection reason is required")
	ErrAlreadyReviewed = errors.New("already reviewed")
	ErrInvalidRole     = errors.New("invalid role")
)
