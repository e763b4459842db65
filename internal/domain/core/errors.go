package core

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrAreaInUse    = errors.New("area has assigned employees")
	ErrEmailTaken   = errors.New("email already registered")
	ErrHasRequests  = errors.New("employee has leave requests")
	ErrInvalidInput = errors.New("invalid input")
)
