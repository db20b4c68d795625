package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error is the single failure type returned by every API call.
// Status is 0 when the request never got an HTTP response.
type Error struct {
	Status  int
	Message string
	// Fields holds per-field validation messages of a 422 response.
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Hint renders validation failures one field per line, sorted by field name.
// Without field details it falls back to the server message.
func (e *Error) Hint() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", name, strings.Join(e.Fields[name], "; "))
	}
	return b.String()
}

func statusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

// IsUnauthorized reports a 401 rejection of the bearer token. A 403 means the
// token is valid but the action is not allowed, so it does not qualify.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsValidation reports a 422-class rejection of the submitted data.
func IsValidation(err error) bool {
	s := statusOf(err)
	return s == http.StatusUnprocessableEntity || s == http.StatusBadRequest
}

// IsNetwork reports that no HTTP response was received at all.
func IsNetwork(err error) bool {
	return statusOf(err) == 0
}

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}
