package util

import "errors"

var (
	ErrInvalidPoolSize   = errors.New("invalid pool size")
	ErrPageOutOfBounds   = errors.New("page out of bounds")
	ErrPageNotFound      = errors.New("page not found on disk")
	ErrDiskManagerClosed = errors.New("disk manager is closed")
)
