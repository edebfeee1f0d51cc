package rates

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, url string) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(url, "secret", time.Second, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPClient("/rates", "key", time.Second, discardLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestFetchBuildsRequestAndParsesSnapshot(t *testing.T) {
	var gotKey, gotBase, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("access_key")
		gotBase = r.URL.Query().Get("base")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"rates":{"eur":{"rate":"0.92"},"GBP":{"rate":"0.79"}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	snapshot, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "secret" {
		t.Errorf("expected access_key to be sent, got %q", gotKey)
	}
	if gotBase != "USD" {
		t.Errorf("expected base=USD, got %q", gotBase)
	}
	if gotAccept != "application/json" {
		t.Errorf("expected Accept header, got %q", gotAccept)
	}

	if len(snapshot) != 2 {
		t.Fatalf("expected two rates, got %d", len(snapshot))
	}
	rate, ok := snapshot.Lookup("EUR")
	if !ok || !rate.Equal(decimal.RequireFromString("0.92")) {
		t.Fatalf("unexpected EUR rate: %s (ok=%v)", rate, ok)
	}
	if _, ok := snapshot.Lookup("gbp"); !ok {
		t.Fatal("expected GBP rate to be present")
	}
}

func TestFetchSkipsUnparseableRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"rates":{"EUR":{"rate":"not-a-number"},"GBP":{"rate":"0.79"}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	snapshot, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := snapshot.Lookup("EUR"); ok {
		t.Fatal("expected unparseable EUR entry to be skipped")
	}
	if _, ok := snapshot.Lookup("GBP"); !ok {
		t.Fatal("expected GBP entry to survive")
	}
}

func TestFetchFailsOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestFetchFailsOnReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error when source reports failure")
	}
}

func TestFetchFailsOnMalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for malformed envelope")
	}
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	if _, err := client.Fetch(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
