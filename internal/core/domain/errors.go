package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind enumerates every failure the client reports through *Error.
// The set is closed: callers can switch over it exhaustively.
type ErrorKind int

// Error kinds.
const (
	// KindUnknown is returned by KindOf for errors that are not *Error,
	// such as network or decode failures.
	KindUnknown ErrorKind = iota

	// KindValidation is a local field-constraint failure or a server 400/422.
	KindValidation

	// KindAuthentication is a 401 or a missing API key.
	KindAuthentication

	// KindInsufficientCredits is a 402.
	KindInsufficientCredits

	// KindNotFound is a 404.
	KindNotFound

	// KindRateLimit is a 429. Callers should back off.
	KindRateLimit

	// KindService is a 5xx or any other unmapped non-2xx status.
	KindService

	// KindReportFailed means the report reached the failed or cancelled state.
	KindReportFailed

	// KindTimeout means the wait budget ran out before the report finished.
	KindTimeout
)

// Sentinel errors, one per kind. *Error matches its kind's sentinel via errors.Is.
var (
	// ErrValidation indicates invalid request data.
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication indicates an invalid or missing API key.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInsufficientCredits indicates the account cannot pay for the report.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrNotFound indicates a report or resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrService indicates the service failed or returned an unexpected status.
	ErrService = errors.New("service error")

	// ErrReportFailed indicates the report finished without producing output.
	ErrReportFailed = errors.New("report failed")

	// ErrWaitTimeout indicates the report did not finish within the wait budget.
	ErrWaitTimeout = errors.New("wait timed out")

	// ErrAmbiguousMode indicates Solutions input matches more than one mode.
	ErrAmbiguousMode = errors.New("ambiguous solutions mode")
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindInsufficientCredits:
		return "insufficient_credits"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindService:
		return "service"
	case KindReportFailed:
		return "report_failed"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindAuthentication:
		return ErrAuthentication
	case KindInsufficientCredits:
		return ErrInsufficientCredits
	case KindNotFound:
		return ErrNotFound
	case KindRateLimit:
		return ErrRateLimited
	case KindService:
		return ErrService
	case KindReportFailed:
		return ErrReportFailed
	case KindTimeout:
		return ErrWaitTimeout
	default:
		return nil
	}
}

// Error is the single error type surfaced by the client.
// Which fields are populated depends on Kind.
type Error struct {
	Kind    ErrorKind
	Message string

	// StatusCode and Body are the raw HTTP response, unmodified.
	// Zero and nil for errors raised locally.
	StatusCode int
	Body       []byte

	// Response is Body decoded as a JSON object, when it is one.
	Response map[string]any

	// Field and Limit identify a local validation failure.
	Field string
	Limit int

	// RetryAfter is the server's back-off hint on KindRateLimit.
	RetryAfter time.Duration

	// ReportID and Reason are set by the poller.
	ReportID string
	Reason   string

	// Cause is an optional underlying error.
	Cause error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
		if s := e.Kind.sentinel(); s != nil {
			msg = s.Error()
		}
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("surmado: %s (status %d)", msg, e.StatusCode)
	}
	return "surmado: " + msg
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsValidation checks if the error is a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsAuthentication checks if the error indicates a bad or missing API key.
func IsAuthentication(err error) bool { return errors.Is(err, ErrAuthentication) }

// IsInsufficientCredits checks if the error indicates the account is out of credits.
func IsInsufficientCredits(err error) bool { return errors.Is(err, ErrInsufficientCredits) }

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsTimeout checks if the error is a wait budget expiry.
func IsTimeout(err error) bool { return errors.Is(err, ErrWaitTimeout) }

// IsReportFailed checks if the error is a failed or cancelled report.
func IsReportFailed(err error) bool { return errors.Is(err, ErrReportFailed) }

// NewValidationError returns a local validation error for field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// FieldRequired returns the error for a missing required field.
func FieldRequired(field string) *Error {
	return NewValidationError(field, fmt.Sprintf("%s is required", field))
}

// FieldTooLong returns the error for a field over its character limit.
func FieldTooLong(field string, limit int) *Error {
	e := NewValidationError(field, fmt.Sprintf("%s exceeds maximum length of %d characters", field, limit))
	e.Limit = limit
	return e
}

// MissingAPIKey is returned before any network call when no key is configured.
func MissingAPIKey() *Error {
	return &Error{
		Kind:    KindAuthentication,
		Message: "API key required: set SURMADO_API_KEY, run 'surmado config set-key', or pass an API key to the client",
	}
}
