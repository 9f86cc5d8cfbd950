package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// ProviderErrorCategory is the fixed taxonomy payment-provider failures
// are classified into before being surfaced to a caller.
type ProviderErrorCategory string

const (
	ProviderAuthentication ProviderErrorCategory = "authentication"
	ProviderAPI            ProviderErrorCategory = "api"
	ProviderConnection     ProviderErrorCategory = "connection"
	ProviderRateLimit      ProviderErrorCategory = "rate_limit"
	ProviderInvalidRequest ProviderErrorCategory = "invalid_request"
	ProviderCard           ProviderErrorCategory = "card"
	ProviderOther          ProviderErrorCategory = "other"
)

// ProviderError wraps a payment-provider failure with its category and a
// message safe to show to the customer.
type ProviderError struct {
	Category ProviderErrorCategory
	Code     string
	Msg      string
	Err      error
}

func (e ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment provider %s error (%s): %s", e.Category, e.Code, e.Msg)
	}
	return fmt.Sprintf("payment provider %s error: %s", e.Category, e.Msg)
}

func (e ProviderError) Unwrap() error { return e.Err }

// UserMessage maps the category to the message shown to the customer.
func (e ProviderError) UserMessage() string {
	switch e.Category {
	case ProviderAuthentication:
		return "Payment service is misconfigured. Please contact support."
	case ProviderAPI:
		return "The payment service reported an unexpected error. Please try again."
	case ProviderConnection:
		return "Could not reach the payment service. Please check your connection and retry."
	case ProviderRateLimit:
		return "The payment service is busy right now. Please try again in a moment."
	case ProviderInvalidRequest:
		return "The payment request was rejected. Please review your booking details."
	case ProviderCard:
		return "Your card was declined. Please try a different payment method."
	default:
		return "Payment could not be processed. Please try again later."
	}
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsProvider(err error) bool {
	var target ProviderError
	return errors.As(err, &target)
}

// AsProvider returns the ProviderError wrapped in err, if any.
func AsProvider(err error) (ProviderError, bool) {
	var target ProviderError
	ok := errors.As(err, &target)
	return target, ok
}
