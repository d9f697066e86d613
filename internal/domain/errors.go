package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrShowtimeNotFound  = errors.New("showtime not found")
	ErrSeatNotFound      = errors.New("seat not found")
	ErrInvalidStep       = errors.New("operation not valid in the current booking step")
	ErrInvalidTransition = errors.New("transition not allowed from the current booking step")
	ErrNoSeatsSelected   = errors.New("at least one seat must be selected")
	ErrInvalidPayment    = errors.New("payment details failed validation")
	ErrBookingClosed     = errors.New("booking session has been closed")
	ErrCheckoutPending   = errors.New("a checkout is already being processed")
)
