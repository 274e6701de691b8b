package service

import "errors"

// Kind classifies orchestrator failures. The HTTP layer maps each kind to a
// status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindConflict
	KindState
	KindNotFound
	KindRateLimit
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	default:
		return "internal"
	}
}

// Error is a caller-facing failure. Message is safe to return to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrRateLimited             = &Error{KindRateLimit, "Too many requests"}
	ErrInvalidRegistration     = &Error{KindValidation, "Invalid email or password"}
	ErrRegistrationFailed      = &Error{KindConflict, "Registration failed"}
	ErrInvalidCredentials      = &Error{KindAuthentication, "Invalid credentials"}
	ErrTOTPNotEnabled          = &Error{KindState, "2FA not enabled"}
	ErrInvalidTOTPCode         = &Error{KindAuthentication, "Invalid 2FA code"}
	ErrNoPendingSetup          = &Error{KindState, "No 2FA setup in progress"}
	ErrInvalidVerificationCode = &Error{KindValidation, "Invalid code"}
	ErrUserNotFound            = &Error{KindNotFound, "User not found"}
	ErrInvalidToken            = &Error{KindAuthentication, "Invalid token"}
)

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
