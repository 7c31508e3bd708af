package models

import (
	"errors"
	"fmt"
)

// ErrorKind tags a domain failure so callers can translate it without string matching.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindInsufficientStock ErrorKind = "insufficient_stock"
	KindDuplicateID       ErrorKind = "duplicate_id"
	KindEmptyCart         ErrorKind = "empty_cart"
)

// Error is the tagged error returned by the catalog, cart and checkout.
type Error struct {
	Kind    ErrorKind
	Field   string // offending input field, if any
	ID      string // offending product id, if any
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// for every not-found error regardless of field or id.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
	ErrDuplicateID       = &Error{Kind: KindDuplicateID}
	ErrEmptyCart         = &Error{Kind: KindEmptyCart, Message: "the cart is empty"}
)

func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NewProductNotFoundError(id string) *Error {
	return &Error{Kind: KindNotFound, Field: "id", ID: id, Message: fmt.Sprintf("product with ID %s not found", id)}
}

func NewInsufficientStockError(id string, requested, available int) *Error {
	return &Error{
		Kind:    KindInsufficientStock,
		Field:   "quantity",
		ID:      id,
		Message: fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)", id, requested, available),
	}
}

func NewDuplicateIDError(id string) *Error {
	return &Error{Kind: KindDuplicateID, Field: "id", ID: id, Message: fmt.Sprintf("product with ID %s already exists", id)}
}

// AsError unwraps err into a *Error when it carries one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind carried by err, or "" for untagged errors.
func KindOf(err error) ErrorKind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return ""
}
