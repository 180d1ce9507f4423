package model

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound   = errors.New("product not found in inventory")
	ErrInsufficientStock = errors.New("not enough stock to complete the sale")
	ErrNoSalesData       = errors.New("no sales data available for this product")
	ErrInvalidInput      = errors.New("invalid input")
	ErrProductExists     = errors.New("product already exists")
	ErrDuplicateEvent    = errors.New("sale event already applied")
	ErrPersistence       = errors.New("persistence failure")
)

var knownKinds = []error{
	ErrProductNotFound,
	ErrInsufficientStock,
	ErrNoSalesData,
	ErrInvalidInput,
	ErrProductExists,
	ErrDuplicateEvent,
	ErrPersistence,
}

// PersistenceError carries the store error that rejected an operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Persistence wraps err as a PersistenceError unless it already carries one of
// the known kinds.
func Persistence(op string, err error) error {
	if err == nil || IsKnown(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

func IsKnown(err error) bool {
	for _, kind := range knownKinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
