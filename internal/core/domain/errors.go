package domain

import "errors"

// Kind classifies an expected failure. Anything that is not a *Error is
// treated as an internal failure by the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is an expected, client-visible failure carrying a human readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every NotFound failure regardless of its message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation   = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}

	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
	ErrUserExists         = &Error{Kind: KindValidation, Message: "user already exists"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrCommunityNotFound  = &Error{Kind: KindNotFound, Message: "community not found"}
	ErrMembershipNotFound = &Error{Kind: KindNotFound, Message: "membership not found"}
	ErrListingNotFound    = &Error{Kind: KindNotFound, Message: "listing not found"}
	ErrEventNotFound      = &Error{Kind: KindNotFound, Message: "event not found"}
	ErrDuplicateMember    = &Error{Kind: KindValidation, Message: "membership already exists"}
)

func Validation(msg string) error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }

// KindOf returns the kind of err, or 0 when err is not an expected failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
