package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// RequestError is any non-2xx answer from the FinTalk API. Message carries the
// server-supplied error string when the body had one, otherwise a generic
// fallback so the UI always has something displayable.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend: %s (http %d)", e.Message, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

// UserMessage extracts a display string from a client error. Server-supplied
// messages win; anything else collapses to the generic fallback.
func UserMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return GenericErrorMessage
}

// GenericErrorMessage is shown when the server gave no structured error.
const GenericErrorMessage = "Something went wrong. Please try again."
