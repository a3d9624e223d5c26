package catalog

import "errors"

var (
	ErrStudioNotFound = errors.New("studio not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrForbidden      = errors.New("not allowed to manage this studio")
)
