package backend

import (
	"errors"
	"fmt"
)

// Category is the normalized failure taxonomy surfaced to the correlator.
type Category string

const (
	// CategoryUnauthorized indicates the bearer token was rejected (401).
	CategoryUnauthorized Category = "unauthorized"

	// CategoryForbidden indicates the token is valid but access was denied (403).
	CategoryForbidden Category = "forbidden"

	// CategoryConnectionFailed indicates the backend could not be reached.
	CategoryConnectionFailed Category = "connection_failed"

	// CategoryTimeout indicates the backend did not answer within the timeout.
	CategoryTimeout Category = "timeout"

	// CategoryReasonRequired is a control signal, not a terminal failure: the
	// borrow must be retried with a user-supplied reason.
	CategoryReasonRequired Category = "reason_required"

	// CategoryFailure covers every other rejection; Message carries the
	// backend's explanation.
	CategoryFailure Category = "failure"
)

// ErrorCodeRequireReason is the structured error_code the backend returns
// when the requester has no scheduled authorization for the room.
const ErrorCodeRequireReason = "REQUIRE_REASON"

// Error wraps backend failures with a normalized category.
type Error struct {
	Category   Category
	Operation  string
	StatusCode int // zero for transport failures
	Code       string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("backend %s [%s]: %s: %v", e.Operation, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("backend %s [%s]: %s", e.Operation, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Underlying
}

func newError(category Category, operation, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
	}
}

// GetCategory extracts the category from err, defaulting to CategoryFailure.
func GetCategory(err error) Category {
	var be *Error
	if errors.As(err, &be) {
		return be.Category
	}
	return CategoryFailure
}

// IsReasonRequired reports whether err asks for a reason-augmented retry.
func IsReasonRequired(err error) bool {
	return GetCategory(err) == CategoryReasonRequired
}

// UserMessage renders err for the kiosk popup.
func UserMessage(err error) string {
	var be *Error
	if !errors.As(err, &be) {
		return "เกิดข้อผิดพลาด"
	}
	switch be.Category {
	case CategoryUnauthorized:
		if errors.Is(be, ErrNotConfigured) {
			return msgTokenNotConfigured
		}
		return "Unauthorized: Please check your API token"
	case CategoryForbidden:
		if be.Message != "" {
			return be.Message
		}
		return "Forbidden: Access denied"
	case CategoryConnectionFailed:
		return "Connection Error: Unable to reach the server"
	case CategoryTimeout:
		return "Timeout: Server took too long to respond"
	default:
		if be.Message != "" {
			return be.Message
		}
		return "เกิดข้อผิดพลาด"
	}
}

// ErrNotConfigured is returned without a network call when no API token is set.
var ErrNotConfigured = errors.New("API token not configured")

// msgTokenNotConfigured is the popup shown for ErrNotConfigured.
const msgTokenNotConfigured = "กรุณากำหนดค่า API_TOKEN ในไฟล์ .env"
