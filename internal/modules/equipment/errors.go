package equipment

import "errors"

var (
	ErrNotFound       = errors.New("equipment not found")
	ErrStudioNotFound = errors.New("studio not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidStatus  = errors.New("equipment cannot be scanned in this direction")
)
