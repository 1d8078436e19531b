package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound signals a query for a product id absent from the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct signals two catalog records sharing an id.
	ErrDuplicateProduct = errors.New("duplicate product id")
	// ErrInvalidRecord signals a malformed catalog record.
	ErrInvalidRecord = errors.New("invalid catalog record")
	// ErrUnknownReference signals a curated similarity pair naming a missing product.
	ErrUnknownReference = errors.New("unknown product reference")
	// ErrInvalidConfig signals configuration that fails startup validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UnknownReferenceError wraps ErrUnknownReference with the offending pair.
// The pair is skipped during the graph build; the build continues.
type UnknownReferenceError struct {
	From string
	To   string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s: similarity pair (%s, %s)", ErrUnknownReference.Error(), e.From, e.To)
}

func (e *UnknownReferenceError) Unwrap() error { return ErrUnknownReference }
