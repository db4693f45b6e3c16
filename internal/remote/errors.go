package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnavailable is wrapped by every TransportError so callers can test for a
// retryable failure without caring about the cause.
var ErrUnavailable = errors.New("backend unavailable")

// TransportError is a request that never produced a usable answer: the
// connection failed, timed out, or the server answered 5xx.
type TransportError struct {
	Op     string
	Status int // 0 when no response was received
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: server error (%d)", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Err}
}

// ValidationError is a create or update payload rejected by the server. The
// field detail is passed through exactly as the server sent it.
type ValidationError struct {
	Status int
	Fields map[string][]string
	Body   string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Body
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return strings.Join(parts, "; ")
}

// StatusError is any other non-success answer, such as 404 for a record that
// no longer exists.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Body)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == 404
}

// parseValidation decodes a rejection body. It understands {"field": ["msg"]},
// {"field": "msg"} and falls back to the raw text.
func parseValidation(status int, body []byte) *ValidationError {
	ve := &ValidationError{Status: status, Body: strings.TrimSpace(string(body))}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ve
	}

	fields := make(map[string][]string, len(raw))
	for k, v := range raw {
		var many []string
		if err := json.Unmarshal(v, &many); err == nil {
			fields[k] = many
			continue
		}
		var one string
		if err := json.Unmarshal(v, &one); err == nil {
			fields[k] = []string{one}
			continue
		}
		fields[k] = []string{string(v)}
	}
	ve.Fields = fields
	return ve
}
