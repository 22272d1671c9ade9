package apperr

import "errors"

// ErrMissingInput is returned when the submitted text is empty or whitespace only.
var ErrMissingInput = errors.New("missing input")

// ErrMalformedInput is returned when the submitted text does not match any
// shape the tool accepts.
var ErrMalformedInput = errors.New("malformed input")

// ErrTimeout is returned when the backend does not answer within the request timeout.
var ErrTimeout = errors.New("request timeout")

// ErrTransport is returned when the request fails before a response arrives
// (DNS failure, connection refused, TLS error, ...).
var ErrTransport = errors.New("transport error")

// ErrApplication is returned when the backend answers with a non-2xx status.
var ErrApplication = errors.New("application error")

// ErrMalformedResponse is returned when a response body is not the JSON the
// client expected.
var ErrMalformedResponse = errors.New("malformed response")

// RequestError carries the user-visible message for a failed lookup together
// with its kind. Error returns the message verbatim so it can be shown as-is.
type RequestError struct {
	Kind    error
	Message string
	Status  int
	Err     error
}

// Error returns the user-visible message.
func (e *RequestError) Error() string { return e.Message }

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Kind returns the sentinel matching err, or nil when err is not one of ours.
func Kind(err error) error {
	for _, k := range []error{
		ErrMissingInput,
		ErrMalformedInput,
		ErrTimeout,
		ErrTransport,
		ErrApplication,
		ErrMalformedResponse,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// KindName returns a stable snake_case name for the kind of err, used in JSON
// state and log attributes. It returns "" for a nil error.
func KindName(err error) string {
	switch Kind(err) {
	case ErrMissingInput:
		return "missing_input"
	case ErrMalformedInput:
		return "malformed_input"
	case ErrTimeout:
		return "timeout"
	case ErrTransport:
		return "transport_error"
	case ErrApplication:
		return "application_error"
	case ErrMalformedResponse:
		return "malformed_response"
	}
	if err == nil {
		return ""
	}
	return "unknown"
}
