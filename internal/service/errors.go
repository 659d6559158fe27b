package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a request cannot be acted on as given.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a knowledge base or document id does not exist.
	// Service lookups report absence with found == false; callers wrap this
	// sentinel when absence is an error for them.
	ErrNotFound = errors.New("not found")
	// ErrStore is returned when the snapshot store cannot be read or written.
	ErrStore = errors.New("knowledge base store error")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// storeError marks err as a store failure while keeping the cause inspectable.
func storeError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrStore, err)
}
