package domain

import "fmt"

// ErrorKind classifies a catalog fetch failure. The catalog client maps
// every lower-level failure into one of these at the boundary; nothing
// unclassified reaches the browse layer.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindNoConnectivity
	ErrKindTimeout
	ErrKindServerError
	ErrKindInvalidData
	ErrKindBadRequest
)

// FetchError is a classified catalog failure.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // Set for ErrKindServerError only
	Detail     string
	cause      error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrKindNoConnectivity:
		return "no network connection"
	case ErrKindTimeout:
		return "request timed out"
	case ErrKindServerError:
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	case ErrKindInvalidData:
		if e.Detail != "" {
			return "invalid response data: " + e.Detail
		}
		return "invalid response data"
	case ErrKindBadRequest:
		if e.Detail != "" {
			return "could not build request: " + e.Detail
		}
		return "could not build request"
	default:
		if e.Detail != "" {
			return "unexpected error: " + e.Detail
		}
		return "unexpected error"
	}
}

func (e *FetchError) Unwrap() error { return e.cause }

// UserMessage returns a short message suitable for direct display.
func (e *FetchError) UserMessage() string {
	switch e.Kind {
	case ErrKindNoConnectivity:
		return "No internet connection. Check your network and retry."
	case ErrKindTimeout:
		return "The catalog took too long to respond. Try again."
	case ErrKindServerError:
		return fmt.Sprintf("The catalog returned an error (%d). Try again later.", e.StatusCode)
	case ErrKindInvalidData:
		return "The catalog sent data we couldn't read."
	case ErrKindBadRequest:
		return "Something went wrong building the request."
	default:
		return "Something went wrong. Try again."
	}
}

// NewNoConnectivityError wraps a transport-level failure to reach the server.
func NewNoConnectivityError(cause error) *FetchError {
	return &FetchError{Kind: ErrKindNoConnectivity, cause: cause}
}

// NewTimeoutError wraps a deadline expiry.
func NewTimeoutError(cause error) *FetchError {
	return &FetchError{Kind: ErrKindTimeout, cause: cause}
}

// NewServerError records a non-success HTTP status.
func NewServerError(statusCode int) *FetchError {
	return &FetchError{Kind: ErrKindServerError, StatusCode: statusCode}
}

// NewInvalidDataError records an unparseable or invariant-violating response.
func NewInvalidDataError(detail string, cause error) *FetchError {
	return &FetchError{Kind: ErrKindInvalidData, Detail: detail, cause: cause}
}

// NewBadRequestError records a request that could not be constructed.
func NewBadRequestError(detail string, cause error) *FetchError {
	return &FetchError{Kind: ErrKindBadRequest, Detail: detail, cause: cause}
}

// NewUnknownError is the catch-all; the underlying description is preserved.
func NewUnknownError(cause error) *FetchError {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	return &FetchError{Kind: ErrKindUnknown, Detail: detail, cause: cause}
}
