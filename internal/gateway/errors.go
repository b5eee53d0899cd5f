package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	app_errors "docuchat/client/internal/errors"
)

// APIError is the normalized form of every request failure leaving the
// gateway. Message is always a single human-readable string, so the stores
// can surface it to the UI without inspecting transport details. A Status
// of 0 means the server was never reached.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the HTTP status onto the client's sentinel errors so callers
// can branch with errors.Is without parsing messages.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == 0:
		return app_errors.ErrUnavailable
	case e.Status == http.StatusUnauthorized:
		return app_errors.ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return app_errors.ErrNotFound
	case e.Status == http.StatusConflict:
		return app_errors.ErrConflict
	case e.Status >= 400 && e.Status < 500:
		return app_errors.ErrValidation
	default:
		return app_errors.ErrInternal
	}
}

// errorBody covers the structured error shapes the backend is known to
// produce. Servers in the wild disagree on the field name.
type errorBody struct {
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

const maxErrorBodyBytes = 8 << 10

// normalizeError extracts a human-readable message from a non-2xx response.
// It is total: any body shape, including an empty or unreadable one, falls
// back to the generic status text.
func normalizeError(resp *http.Response) *APIError {
	msg := ""
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err == nil && len(data) > 0 {
		var body errorBody
		if jsonErr := json.Unmarshal(data, &body); jsonErr == nil {
			switch {
			case body.Error != "":
				msg = body.Error
			case body.Detail != "":
				msg = body.Detail
			case body.Message != "":
				msg = body.Message
			}
		}
	}
	if strings.TrimSpace(msg) == "" {
		msg = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// transportError wraps a failure that happened before any response arrived.
func transportError(err error) *APIError {
	return &APIError{Status: 0, Message: "could not reach the server: " + err.Error()}
}
