package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestClientRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/route" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("origin") != "10115" || r.URL.Query().Get("destination") != "80331" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"distance_km": 584.3, "duration_hours": 5.75}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	distance, travel, err := client.Route(context.Background(), "10115", "80331")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if !distance.Equal(decimal.RequireFromString("584.3")) {
		t.Fatalf("expected 584.3 km, got %s", distance)
	}
	if !travel.Equal(decimal.RequireFromString("5.75")) {
		t.Fatalf("expected 5.75 h, got %s", travel)
	}
}

func TestClientRoute_MissingDurationIsZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"distance_km": 12}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	distance, travel, err := client.Route(context.Background(), "10115", "10117")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if !distance.Equal(decimal.NewFromInt(12)) || !travel.IsZero() {
		t.Fatalf("expected (12, 0), got (%s, %s)", distance, travel)
	}
}

func TestClientRoute_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, _, err = client.Route(context.Background(), "00000", "99999")
	if !errors.Is(err, ErrRouteUnavailable) {
		t.Fatalf("expected ErrRouteUnavailable, got %v", err)
	}
}

func TestFixedProvider(t *testing.T) {
	provider, err := NewFixedProvider(decimal.NewFromInt(25), decimal.Zero)
	if err != nil {
		t.Fatalf("new fixed provider: %v", err)
	}
	distance, travel, err := provider.Route(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if !distance.Equal(decimal.NewFromInt(25)) || !travel.IsZero() {
		t.Fatalf("unexpected route (%s, %s)", distance, travel)
	}
}
