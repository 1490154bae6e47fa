package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPTransportSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL)
	payload, err := tr.Do(context.Background(), http.MethodGet, "/items", nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if string(payload) != `{"data":[]}` {
		t.Errorf("unexpected payload: %s", payload)
	}
}

func TestHTTPTransportServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Server exploded"}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL)
	_, err := tr.Do(context.Background(), http.MethodGet, "/items", nil)

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", terr.Status)
	}
	if terr.Message != "Server exploded" {
		t.Errorf("message = %q", terr.Message)
	}
}

func TestEngineTransport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})
	mux.HandleFunc("/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad filter"}`))
	})

	tr := NewEngineTransport(mux)

	payload, err := tr.Do(context.Background(), http.MethodGet, "/ok", nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if string(payload) != `{"ok":true}` {
		t.Errorf("unexpected payload: %s", payload)
	}

	_, err = tr.Do(context.Background(), http.MethodGet, "/fail", nil)
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Message != "bad filter" {
		t.Errorf("message = %q", terr.Message)
	}
}
