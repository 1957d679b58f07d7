package domain

import "errors"

// ErrNotFound is returned when an entity id is absent from the store.
var ErrNotFound = errors.New("not found")

// ValidationError is a caller-correctable business failure ("not enough
// stock", "advance exceeds total", ...). It is a value, not a fault: the
// API layer converts it into an OpResult instead of a server error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// OpResult is the structured success/failure payload surfaced to callers
// for business outcomes.
type OpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(msg string) OpResult {
	return OpResult{Success: true, Message: msg}
}

func Failed(msg string) OpResult {
	return OpResult{Success: false, Message: msg}
}
