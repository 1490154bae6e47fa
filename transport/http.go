package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// HTTPTransport talks to a real server over net/http.
type HTTPTransport struct {
	Client  *http.Client
	BaseURL string
}

func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{Client: http.DefaultClient, BaseURL: baseURL}
}

func (t *HTTPTransport) Do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.BaseURL+url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: serverMessage(payload)}
	}
	return payload, nil
}
