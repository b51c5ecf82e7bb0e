package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"googlemaps.github.io/maps"
)

const geocodeOK = `{
	"results": [
		{
			"formatted_address": "Paris, France",
			"geometry": {"location": {"lat": 48.86, "lng": 2.35}}
		}
	],
	"status": "OK"
}`

const geocodeEmpty = `{"results": [], "status": "ZERO_RESULTS"}`

func testResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := maps.NewClient(maps.WithAPIKey("test-key"), maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("maps client: %v", err)
	}
	return &Resolver{client: client}
}

func TestForwardResolvesPlaceName(t *testing.T) {
	var gotAddress string
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		gotAddress = req.URL.Query().Get("address")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geocodeOK))
	})

	lat, lng, display, err := r.Forward(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if gotAddress != "Paris" {
		t.Errorf("address param = %q, want Paris", gotAddress)
	}
	if lat != 48.86 || lng != 2.35 {
		t.Errorf("coords = (%f, %f), want (48.86, 2.35)", lat, lng)
	}
	if display != "Paris, France" {
		t.Errorf("display = %q", display)
	}
}

func TestForwardRejectsEmptyName(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		t.Error("no request should be issued for an empty name")
	})

	if _, _, _, err := r.Forward(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for an empty place name")
	}
}

func TestForwardErrorsOnNoResults(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geocodeEmpty))
	})

	if _, _, _, err := r.Forward(context.Background(), "Nowhereville"); err == nil {
		t.Fatal("expected an error when geocoding returns no results")
	}
}

func TestReverseResolvesCoordinates(t *testing.T) {
	var gotLatLng string
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		gotLatLng = req.URL.Query().Get("latlng")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geocodeOK))
	})

	display, err := r.Reverse(context.Background(), 48.86, 2.35)
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if !strings.Contains(gotLatLng, "48.86") {
		t.Errorf("latlng param = %q, want the latitude in it", gotLatLng)
	}
	if display != "Paris, France" {
		t.Errorf("display = %q, want Paris, France", display)
	}
}

func TestReverseErrorsOnNoResults(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geocodeEmpty))
	})

	if _, err := r.Reverse(context.Background(), 0, 0); err == nil {
		t.Fatal("expected an error when reverse geocoding returns no results")
	}
}
