// Package apperr carries the application error taxonomy. Every failure a
// caller can meaningfully branch on gets a Kind; everything else stays a
// plain error and surfaces as an internal failure.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind string

const (
	KindInputTooShort      Kind = "INPUT_TOO_SHORT"
	KindLimitReached       Kind = "LIMIT_REACHED"
	KindMissingIdentity    Kind = "MISSING_IDENTITY"
	KindAccessDenied       Kind = "ACCESS_DENIED"
	KindNotFound           Kind = "NOT_FOUND"
	KindPaymentSetupFailed Kind = "PAYMENT_SETUP_FAILED"
	KindNetworkUnavailable Kind = "NETWORK_UNAVAILABLE"
	KindValidation         Kind = "VALIDATION"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when
// the chain carries none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a Kind onto the response status. Access denial is
// deliberately distinct from not found: a denied set exists, the caller's
// tier just does not unlock it.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInputTooShort, KindValidation, KindMissingIdentity:
		return fiber.StatusBadRequest
	case KindLimitReached, KindAccessDenied:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindPaymentSetupFailed:
		return fiber.StatusBadGateway
	case KindNetworkUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
