package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFileMissing    = errors.New("inventory file not found")
	ErrFileIO         = errors.New("inventory file error")
	ErrMalformedField = errors.New("malformed field")
	ErrNegativeValue  = errors.New("cost and quantity must be non-negative")
	ErrNotFound       = errors.New("shoe not found")
	ErrEmptyInventory = errors.New("inventory is empty")
	ErrNotLoaded      = errors.New("inventory not loaded")
	ErrQuantityLimit  = errors.New("quantity exceeds the largest storable value")
)

// LineError reports the storage line a malformed record was read from.
// Records after it are not ingested.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
