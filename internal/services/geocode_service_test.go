package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"outreach-backend/internal/config"
)

func geocodeServiceFor(t *testing.T, handler http.HandlerFunc) *GeocodeService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Geocode.BaseURL = srv.URL
	cfg.Geocode.TimeoutSeconds = 2
	return NewGeocodeService(cfg)
}

func TestGeocodeReverseUsesLocalityAndState(t *testing.T) {
	s := geocodeServiceFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("format = %q", r.URL.Query().Get("format"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing user agent")
		}
		fmt.Fprint(w, `{"display_name":"full address","address":{"town":"Tirupati","state":"Andhra Pradesh"}}`)
	})

	got := s.Reverse(context.Background(), 13.628, 79.419)
	if got != "Tirupati, Andhra Pradesh" {
		t.Errorf("Reverse = %q", got)
	}
}

func TestGeocodeReverseFallsBackToDisplayName(t *testing.T) {
	s := geocodeServiceFor(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"display_name":"somewhere remote","address":{}}`)
	})

	if got := s.Reverse(context.Background(), 13.628, 79.419); got != "somewhere remote" {
		t.Errorf("Reverse = %q", got)
	}
}

func TestGeocodeReverseNeverFails(t *testing.T) {
	s := geocodeServiceFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	got := s.Reverse(context.Background(), 13.62801, 79.41904)
	if got != "13.62801, 79.41904" {
		t.Errorf("fallback = %q", got)
	}

	// A dead endpoint degrades the same way.
	cfg := &config.Config{}
	cfg.Geocode.BaseURL = "http://127.0.0.1:1"
	cfg.Geocode.TimeoutSeconds = 1
	dead := NewGeocodeService(cfg)
	if got := dead.Reverse(context.Background(), 1.5, 2.5); got != "1.50000, 2.50000" {
		t.Errorf("dead endpoint fallback = %q", got)
	}
}
