package export

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgallion1/docstruct/internal/document"
)

func testResult() *document.Result {
	return &document.Result{
		Document: document.Document{ID: "doc-1", Filename: "a.pdf", Type: document.TypeTextbook},
	}
}

func TestNewClient_EmptyURLDisablesExport(t *testing.T) {
	if NewClient("", "key") != nil {
		t.Error("expected nil client for empty URL")
	}
}

func TestDeliver_Success(t *testing.T) {
	var gotAuth string
	var gotBody document.Result
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	if err := c.Deliver(context.Background(), testResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody.Document.ID != "doc-1" {
		t.Errorf("expected posted result, got %+v", gotBody.Document)
	}
}

func TestDeliver_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").Deliver(context.Background(), testResult())
	if err == nil {
		t.Fatal("expected an error")
	}
	var retryable *RetryableError
	if !errors.As(err, &retryable) {
		t.Errorf("expected retryable error, got %v", err)
	}
}

func TestDeliver_ClientErrorIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").Deliver(context.Background(), testResult())
	if err == nil {
		t.Fatal("expected an error")
	}
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		t.Errorf("expected permanent error, got retryable %v", err)
	}
}

func TestDeliver_ConnectionRefusedIsRetryable(t *testing.T) {
	// A closed server yields a transport error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := NewClient(srv.URL, "k").Deliver(context.Background(), testResult())
	if err == nil {
		t.Fatal("expected an error")
	}
	var retryable *RetryableError
	if !errors.As(err, &retryable) {
		t.Errorf("expected retryable error, got %v", err)
	}
}
