package release

import "errors"

var (
	ErrForbidden  = errors.New("release does not belong to you")
	ErrValidation = errors.New("release validation failed")
)
