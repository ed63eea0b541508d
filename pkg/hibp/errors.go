package hibp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies API failures.
type ErrorKind int

const (
	// KindHTTP is any non-2xx status without a more specific kind.
	KindHTTP ErrorKind = iota
	// KindForbidden is a 403, typically a request without a user agent.
	KindForbidden
	// KindBadRequest is a 400, typically a malformed account or email.
	KindBadRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindHTTP:
		return "http_error"
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

var (
	// ErrForbidden matches any *Error of KindForbidden.
	ErrForbidden = errors.New("forbidden")
	// ErrBadRequest matches any *Error of KindBadRequest.
	ErrBadRequest = errors.New("bad request")
)

const (
	msgForbidden  = "Forbidden: no user agent has been specified in the request"
	msgBadRequest = "Bad request: the account does not comply with an acceptable format"
	maxBodyBytes  = 512
)

// Error is returned for non-2xx responses other than 404.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match the package sentinels by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	}
	return false
}

// IsForbidden reports whether err is a 403 from the API.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsBadRequest reports whether err is a 400 from the API.
func IsBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }

// newStatusError maps a non-2xx, non-404 status to an *Error.
func newStatusError(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Body: bodySnippet(body)}
	switch status {
	case http.StatusForbidden:
		e.Kind = KindForbidden
		e.Message = msgForbidden
	case http.StatusBadRequest:
		e.Kind = KindBadRequest
		e.Message = msgBadRequest
	default:
		e.Kind = KindHTTP
		e.Message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
		if e.Body != "" {
			e.Message += ": " + e.Body
		}
	}
	return e
}

func bodySnippet(body []byte) string {
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes]
	}
	return strings.TrimSpace(string(body))
}
