package registrar

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(server.URL, "token", discardLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("not-a-url", "token", discardLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreateContact(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/customers" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["external_id"] != "tg-42" {
			t.Fatalf("unexpected external id %v", payload["external_id"])
		}
		_, _ = w.Write([]byte(`{"code":0,"data":{"handle":"AB123456-US"}}`))
	})

	handle, err := client.CreateContact(context.Background(), ContactRequest{
		TelegramID: 42,
		Name:       "tg-42",
		Email:      "owner@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle != "AB123456-US" {
		t.Fatalf("unexpected handle %q", handle)
	}
}

func TestRegisterDomain(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		domain := payload["domain"].(map[string]any)
		if domain["name"] != "example" || domain["extension"] != "sbs" {
			t.Fatalf("unexpected domain payload %v", domain)
		}
		if payload["additional_data"] == nil {
			t.Fatal("expected additional data to be forwarded")
		}
		_, _ = w.Write([]byte(`{"code":0,"data":{"id":987654}}`))
	})

	id, err := client.RegisterDomain(context.Background(), RegisterRequest{
		Root:          "example",
		TLD:           "sbs",
		ContactHandle: "AB123456-US",
		Nameservers:   []string{"ns1.example.com", "ns2.example.com"},
		AdditionalData: map[string]string{
			"it_accept_trustee_tac": "1",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "987654" {
		t.Fatalf("unexpected domain id %q", id)
	}
}

func TestRegisterDomainDuplicate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":346,"desc":"Domain already exists"}`))
	})

	_, err := client.RegisterDomain(context.Background(), RegisterRequest{Root: "example", TLD: "sbs"})
	if !errors.Is(err, ErrDuplicateDomain) {
		t.Fatalf("expected ErrDuplicateDomain, got %v", err)
	}
}

func TestRegisterDomainErrorCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":500,"desc":"internal registry error"}`))
	})

	_, err := client.RegisterDomain(context.Background(), RegisterRequest{Root: "example", TLD: "sbs"})
	if err == nil || errors.Is(err, ErrDuplicateDomain) {
		t.Fatalf("expected generic registrar error, got %v", err)
	}
}

func TestLookupDomain(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("full_name"); got != "example.sbs" {
			t.Fatalf("unexpected query %q", got)
		}
		_, _ = w.Write([]byte(`{"code":0,"data":{"results":[{"id":111}]}}`))
	})

	id, err := client.LookupDomain(context.Background(), "example", "sbs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "111" {
		t.Fatalf("unexpected domain id %q", id)
	}
}

func TestLookupDomainNotFound(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"code":0,"data":{"results":[]}}`))
	})

	_, err := client.LookupDomain(context.Background(), "example", "sbs")
	if !errors.Is(err, ErrDomainNotFound) {
		t.Fatalf("expected ErrDomainNotFound, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("an empty result set must not be retried, got %d calls", calls)
	}
}
