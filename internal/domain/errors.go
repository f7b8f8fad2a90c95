package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrConcurrencyConflict = errors.New("order state changed concurrently")
	ErrInvalidTransition   = errors.New("transition not allowed in current state")
	ErrDuplicateID         = errors.New("order id already exists")

	ErrPromoNotFound  = errors.New("promo code not found")
	ErrPromoExpired   = errors.New("promo code expired")
	ErrPromoExhausted = errors.New("promo code exhausted")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

type PromoInvalidKind int

const (
	PromoNotFound PromoInvalidKind = iota + 1
	PromoExpired
	PromoExhausted
)

type PromoInvalidError struct {
	Code string
	Kind PromoInvalidKind
}

func (e *PromoInvalidError) Error() string {
	return fmt.Sprintf("%s: %s", e.sentinel().Error(), e.Code)
}

func (e *PromoInvalidError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *PromoInvalidError) sentinel() error {
	switch e.Kind {
	case PromoExpired:
		return ErrPromoExpired
	case PromoExhausted:
		return ErrPromoExhausted
	default:
		return ErrPromoNotFound
	}
}

func NewPromoInvalidError(code string, kind PromoInvalidKind) *PromoInvalidError {
	return &PromoInvalidError{Code: code, Kind: kind}
}

// IsPromoInvalid reports whether err is any promo rejection.
func IsPromoInvalid(err error) bool {
	var promoErr *PromoInvalidError
	return errors.As(err, &promoErr)
}
