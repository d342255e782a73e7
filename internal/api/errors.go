package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request for display purposes.
type ErrorKind int

const (
	// KindEmptyQuestion is a local validation failure; no request was sent.
	KindEmptyQuestion ErrorKind = iota + 1
	// KindUnreachable covers transport failures: refused connections, DNS, timeouts.
	KindUnreachable
	// KindStatus is a non-2xx HTTP response.
	KindStatus
	// KindDecode is a 2xx response whose body could not be used.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyQuestion:
		return "empty_question"
	case KindUnreachable:
		return "unreachable"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client call that fails.
type Error struct {
	Kind       ErrorKind
	Op         string
	HTTPStatus int
	Detail     string
	BaseURL    string
	Cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s %s", e.Op, e.Kind)
	if e.HTTPStatus != 0 {
		msg = fmt.Sprintf("%s (%d)", msg, e.HTTPStatus)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Message is the text shown in the error panel.
func (e *Error) Message() string {
	switch e.Kind {
	case KindEmptyQuestion:
		return "Please enter a question."
	case KindUnreachable:
		return fmt.Sprintf("Backend unreachable at %s. Make sure the server is running.", e.BaseURL)
	case KindStatus:
		if e.Detail != "" {
			return e.Detail
		}
		return fmt.Sprintf("API error: %d", e.HTTPStatus)
	case KindDecode:
		if e.Detail != "" {
			return "Unexpected response from backend: " + e.Detail
		}
		return "Unexpected response from backend."
	default:
		return e.Error()
	}
}

// ErrEmptyQuestion is matched by errors.Is for local validation failures.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// MessageFor renders any error returned by this package, or a foreign one,
// as a human-readable line.
func MessageFor(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
