package payment

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotFound        = errors.New("payment record not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidStatus   = errors.New("booking is not pending payment")
	ErrInProgress      = errors.New("a payment for this booking is already in progress")
)
