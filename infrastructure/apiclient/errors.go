package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is a 401 from the API. On non-public paths the stored tokens have
// already been cleared by the time the caller sees it.
type AuthError struct {
	Path    string
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unauthorized", e.Path)
	}
	return fmt.Sprintf("%s: unauthorized: %s", e.Path, e.Message)
}

// ValidationError is a 400 or 422. Messages holds every message the API sent,
// whether it arrived as one string or as a list.
type ValidationError struct {
	StatusCode int
	Path       string
	Messages   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed (%d): %s", e.Path, e.StatusCode, e.Message())
}

// Message is the user-facing text of the error.
func (e *ValidationError) Message() string {
	if len(e.Messages) == 0 {
		return "The request was rejected"
	}
	return strings.Join(e.Messages, "; ")
}

// NotFoundError is a 404, usually on a detail endpoint.
type NotFoundError struct {
	Path    string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found", e.Path)
}

// APIError is any other non-2xx response.
type APIError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Path, e.StatusCode, e.Message)
}

// ListFetchError wraps any failure of a listing fetch.
type ListFetchError struct {
	Resource string
	Err      error
}

func (e *ListFetchError) Error() string {
	return fmt.Sprintf("fetch %s list: %v", e.Resource, e.Err)
}

func (e *ListFetchError) Unwrap() error { return e.Err }

// IsAuth reports whether err is, or wraps, an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNetwork reports whether err is, or wraps, a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// UserMessage returns text suitable for a toast.
func UserMessage(err error) string {
	var (
		ve  *ValidationError
		ae  *AuthError
		nf  *NotFoundError
		ne  *NetworkError
		api *APIError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message()
	case errors.As(err, &ae):
		return "Your session has expired. Please sign in again."
	case errors.As(err, &nf):
		return "The requested record was not found."
	case errors.As(err, &ne):
		return "The server could not be reached. Check your connection and try again."
	case errors.As(err, &api):
		if api.Message != "" {
			return api.Message
		}
		return http.StatusText(api.StatusCode)
	default:
		return "Something went wrong."
	}
}

func classify(status int, path string, messages []string) error {
	msg := strings.Join(messages, "; ")
	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{Path: path, Message: msg}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &ValidationError{StatusCode: status, Path: path, Messages: messages}
	case status == http.StatusNotFound:
		return &NotFoundError{Path: path, Message: msg}
	default:
		return &APIError{StatusCode: status, Path: path, Message: msg}
	}
}
