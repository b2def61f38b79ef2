package api

import "fmt"

// Error is a non-2xx response from the API. The server answers failures
// with plain-text bodies, so Body is shown to the user verbatim when
// present.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
