// Package errs defines the failure kinds surfaced by the Citrex client.
//
// Every error returned by the request pipeline carries a Kind, reachable with
// KindOf even after the error has been wrapped with fmt.Errorf("...: %w").
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidEndpoint: the endpoint is not in the registry. No I/O happened.
	KindInvalidEndpoint
	// KindAuthentication: no usable identity, or the message could not be
	// signed. No I/O happened.
	KindAuthentication
	// KindRemote: the venue answered with a non-200 status.
	KindRemote
	// KindTransport: no response was obtained.
	KindTransport
	// KindDecode: the venue answered 200 but the body could not be decoded.
	KindDecode
	// KindValidation: a caller argument was rejected. No I/O happened.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidEndpoint:
		return "InvalidEndpoint"
	case KindAuthentication:
		return "AuthenticationError"
	case KindRemote:
		return "RemoteError"
	case KindTransport:
		return "TransportError"
	case KindDecode:
		return "DecodeError"
	case KindValidation:
		return "ValidationError"
	}
	return "Unknown"
}

var (
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	ErrAuthentication  = errors.New("authentication error")
	ErrRemote          = errors.New("remote error")
	ErrTransport       = errors.New("transport error")
	ErrDecode          = errors.New("decode error")
	ErrValidation      = errors.New("validation error")
)

// KindOf reports the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

type InvalidEndpointError struct {
	Endpoint string
	Method   string
}

func (e *InvalidEndpointError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("invalid endpoint: %s", e.Endpoint)
	}
	return fmt.Sprintf("invalid endpoint: %s %s", e.Method, e.Endpoint)
}

func (e *InvalidEndpointError) Kind() Kind { return KindInvalidEndpoint }

func (e *InvalidEndpointError) Is(target error) bool { return target == ErrInvalidEndpoint }

type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication error: %s", e.Reason)
}

func (e *AuthenticationError) Kind() Kind { return KindAuthentication }

func (e *AuthenticationError) Unwrap() error { return e.Err }

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

// RemoteError is a non-200 response. Body is kept verbatim; Code and Msg are
// filled when the body is a JSON object carrying them.
type RemoteError struct {
	StatusCode int
	Body       []byte
	URL        string
	Method     string
	Headers    http.Header
	Code       string
	Msg        string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf(
		"remote error (status %d) %s %s: %s",
		e.StatusCode,
		e.Method,
		e.URL,
		string(e.Body),
	)
}

func (e *RemoteError) Kind() Kind { return KindRemote }

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

// IsClientError reports whether the venue rejected the request (4xx).
func (e *RemoteError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports a 5xx response.
func (e *RemoteError) IsServerError() bool {
	return e.StatusCode >= 500
}

type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Kind() Kind { return KindTransport }

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Kind() Kind { return KindDecode }

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// ValidationError rejects a caller argument, e.g. a zero quantity or an
// empty symbol, before anything is signed or sent.
type ValidationError struct {
	Field  string
	Reason string
}

// Invalid returns a *ValidationError for field.
func Invalid(field string, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Kind() Kind { return KindValidation }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
