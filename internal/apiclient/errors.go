package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized means the backend rejected the bearer token. The
	// session behind it is gone; callers should stop and send the user to
	// the login view.
	ErrUnauthorized = errors.New("backend rejected credentials")

	// ErrTransport wraps failures where no HTTP response arrived.
	ErrTransport = errors.New("backend unreachable")
)

// APIError is any non-2xx answer other than a session-ending 401.
type APIError struct {
	Op      string
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend status %d: %s", e.Op, e.Status, e.Message)
}

// MessageFrom returns the user-facing text for err: the backend's own words
// when it sent any, otherwise fallback.
func MessageFrom(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// messageFromBody pulls a readable message out of an error body. JSON bodies
// with a "message" (or "error") string use that field; anything else is taken
// verbatim.
func messageFromBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	if strings.HasPrefix(text, "{") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(text), &obj); err == nil {
			for _, key := range []string{"message", "error"} {
				if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		}
	}

	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			return s
		}
	}

	return text
}

func statusClass(status int) string {
	switch {
	case status == 401:
		return "401"
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// FieldMessage is stricter than MessageFrom: only a JSON "message" field
// counts, anything else gives fallback. The login view reads errors this way.
func FieldMessage(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}

	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(apiErr.Body, &obj) == nil && strings.TrimSpace(obj.Message) != "" {
		return strings.TrimSpace(obj.Message)
	}
	return fallback
}
