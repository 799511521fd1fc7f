package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrUnauthorized means the session could not be proven to the
	// backend even after a refresh attempt. The token store has been
	// cleared by the time callers observe it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable wraps transport-level failures: the HTTP call did
	// not complete.
	ErrUnavailable = errors.New("server unavailable")
)

// Error is a non-2xx response from the backend. Detail carries the
// server body's "detail" field when present.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// ErrorDetail extracts the server-provided detail from err, or a
// fallback representation for other error kinds.
func ErrorDetail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

// decodeError turns a non-2xx response into *Error, pulling the
// "detail" field out of the JSON body when there is one.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
	}

	return apiErr
}
