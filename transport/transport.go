// Package transport abstracts how widgets reach their endpoints. Widgets
// receive a Transport explicitly instead of sharing an ambient HTTP client,
// so the same widget code runs against a remote server or an in-process
// handler.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
)

// Transport performs one request per call. There is no retry and no
// cancellation of earlier calls; overlap handling belongs to the caller.
type Transport interface {
	Do(ctx context.Context, method, url string, body []byte) ([]byte, error)
}

// Error is returned for non-success HTTP statuses. Message carries the
// server-supplied "message" (or "error") field when the body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// serverMessage digs a human readable message out of an error response body.
func serverMessage(body []byte) string {
	var fields struct {
		Message string `json:"message"`
		ErrMsg  string `json:"error"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	if fields.Message != "" {
		return fields.Message
	}
	return fields.ErrMsg
}
