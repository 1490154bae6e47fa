package transport

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
)

// EngineTransport dispatches requests straight into an http.Handler,
// typically the same Gin engine the widgets are mounted on. No network
// round trip is involved, which also makes it the natural test backend.
type EngineTransport struct {
	Handler http.Handler
}

func NewEngineTransport(h http.Handler) *EngineTransport {
	return &EngineTransport{Handler: h}
}

func (t *EngineTransport) Do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	rec := httptest.NewRecorder()
	t.Handler.ServeHTTP(rec, req)

	payload := rec.Body.Bytes()
	if rec.Code < 200 || rec.Code > 299 {
		return nil, &Error{Status: rec.Code, Message: serverMessage(payload)}
	}
	return payload, nil
}
