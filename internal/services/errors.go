package services

import "errors"

// Engine error kinds. Handlers map these to HTTP statuses with errors.Is;
// everything else is treated as an internal failure.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPermissionDenied  = errors.New("actor role not authorized for transition")
	ErrInvalidState      = errors.New("record is not in a state that allows this operation")
	ErrOrderNotFound     = errors.New("order not found")
)
