package auctionerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRequestFailed matches every *RequestError via errors.Is
var ErrRequestFailed = errors.New("request failed")

// RequestError is the single failure raised by the API client. Message is
// either the backend's "error" field or a generic status-derived message.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

// NewRequestError builds a RequestError, falling back to "API Error: <status>"
// when message is empty.
func NewRequestError(status int, message string) *RequestError {
	if message == "" {
		message = StatusMessage(status)
	}
	return &RequestError{StatusCode: status, Message: message}
}

// StatusMessage is the generic message used when the body carries none.
func StatusMessage(status int) string {
	return fmt.Sprintf("API Error: %d", status)
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// RequestError or the request never got a response.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// Repository-level errors
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoBids           = errors.New("no bids found for item")
)

// business logic errors
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidBid       = errors.New("invalid bid")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrAuctionEnded     = errors.New("this auction has ended")
	ErrOwnItem          = errors.New("you cannot bid on your own item")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidData      = errors.New("invalid data")
)

// DetailedError pairs a sentinel with the message shown to API clients.
type DetailedError struct {
	Kind   error
	Detail string
}

// WithDetail wraps kind with a client-facing message.
func WithDetail(kind error, format string, args ...any) error {
	return &DetailedError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *DetailedError) Error() string {
	return e.Detail
}

func (e *DetailedError) Unwrap() error {
	return e.Kind
}

// Detail returns the client-facing message carried anywhere in err's chain.
func Detail(err error) (string, bool) {
	var detailed *DetailedError
	if errors.As(err, &detailed) {
		return detailed.Detail, true
	}
	return "", false
}
