package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	ErrUnknownBackend  = errors.New("unknown storage backend")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
)
