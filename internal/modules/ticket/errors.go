package ticket

import "errors"

var (
	ErrForbidden    = errors.New("ticket does not belong to you")
	ErrTicketClosed = errors.New("ticket is closed")
)
