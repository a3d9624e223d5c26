package booking

import "errors"

var (
	ErrInvalidRange      = errors.New("start time must be before end time")
	ErrStartTooFarInPast = errors.New("start time is too far in the past")
	ErrRoomNotFound      = errors.New("room not found")
	ErrConflict          = errors.New("room is already booked for this time range")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
)
