package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func withServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	origURL := baseURL
	baseURL = server.URL
	t.Cleanup(func() { baseURL = origURL })
}

func TestVerifyChain_Valid(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/verify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid":true,"total_entries":42,"violations":[]}`))
	})

	out := captureOutput(t, verifyChain)

	if !strings.Contains(out, "Chain VALID") {
		t.Fatalf("expected valid chain output, got %q", out)
	}
	if !strings.Contains(out, "42 entries") {
		t.Fatalf("expected entry count in output, got %q", out)
	}
}

func TestShowBalance(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts/GL001/balance" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("entity_id"); got != "entity-1" {
			t.Errorf("unexpected entity_id %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"account_id":"GL001","entity_id":"entity-1","balance":"-150.00"}`))
	})

	out := captureOutput(t, func() {
		showBalance("GL001", "entity-1", "")
	})

	if !strings.Contains(out, "Balance: -150.00") {
		t.Fatalf("expected balance in output, got %q", out)
	}
}

func TestListEntries(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/entries" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("transaction_id"); got != "TXN-1" {
			t.Errorf("unexpected transaction_id %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"entries":[{"id":"01DEBIT","transaction_id":"TXN-1","account_id":"GL001","type":"DEBIT","amount":"150.00","currency":"ZAR","status":"POSTED","is_reversed":false,"created_at":"2026-01-15T10:00:00Z"}],"total":1}`))
	})

	out := captureOutput(t, func() {
		listEntries("TXN-1", "", 50)
	})

	if !strings.Contains(out, "1 entries (total 1)") {
		t.Fatalf("expected entry count, got %q", out)
	}
	if !strings.Contains(out, "DEBIT") || !strings.Contains(out, "150.00") {
		t.Fatalf("expected entry details, got %q", out)
	}
}
