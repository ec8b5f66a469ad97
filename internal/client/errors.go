package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// APIError is returned when the server answered with a non-2xx status.
type APIError struct {
	Method     string
	URL        string
	StatusCode int

	// Message is the display text extracted from the response body by
	// ErrorMessage. It is empty when the body carried nothing usable.
	Message string

	Elapsed time.Duration
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return e.Message
}

// ErrorMessage turns an error response body into display text:
//
//   - a JSON string is used as is;
//   - a JSON object with a string "error" or "message" field uses that field;
//   - any other JSON value is shown as its compact JSON text;
//   - a body that is not JSON is shown trimmed.
//
// An empty body yields "".
func ErrorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}

	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case map[string]any:
		for _, key := range []string{"error", "message"} {
			if s, ok := val[key].(string); ok && s != "" {
				return s
			}
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(body)
	}
	return buf.String()
}
