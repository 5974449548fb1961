package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"wildwatch/internal/models"
)

const primaryFireBody = `{
	"features": [
		{
			"attributes": {
				"FIRE_NUMBER": "G41234",
				"FIRE_STATUS": "Out of Control",
				"GEOGRAPHIC_DESCRIPTION": "Fraser Canyon",
				"FIRE_TYPE": "Wildfire",
				"FIRE_SIZE_HECTARES": 120.56
			},
			"geometry": {"x": -121.5, "y": 49.8}
		},
		{
			"attributes": {
				"FIRE_STATUS": "Holding"
			},
			"geometry": {"x": -122.1, "y": 49.1}
		}
	]
}`

func TestWildfirePrimaryFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("f") != "json" {
			t.Errorf("f = %q, want json", q.Get("f"))
		}
		if q.Get("units") != "esriSRUnit_Meter" {
			t.Errorf("units = %q", q.Get("units"))
		}
		if q.Get("distance") != "100000" {
			t.Errorf("distance = %q, want 100000", q.Get("distance"))
		}
		if !strings.Contains(q.Get("where"), "Out of Control") {
			t.Errorf("where clause missing status filter: %q", q.Get("where"))
		}
		if !strings.Contains(q.Get("geometry"), `"x":`) {
			t.Errorf("geometry param malformed: %q", q.Get("geometry"))
		}
		w.Write([]byte(primaryFireBody))
	}))
	defer srv.Close()

	fetcher := NewDataFetcher()
	coord := models.Coordinate{Latitude: 49.28, Longitude: -123.12}

	alerts, err := fetcher.Wildfire.Fetch(context.Background(), srv.URL, "http://unused.invalid", "tn", coord)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}

	first := alerts[0]
	if first.Category != models.CategoryFire {
		t.Errorf("category = %s, want fire", first.Category)
	}
	if first.Source != "BC Wildfire Service" {
		t.Errorf("source = %q", first.Source)
	}
	wantDesc := "Fire #G41234 - Out of Control\nLocation: Fraser Canyon\nType: Wildfire\nSize: 120.6 hectares"
	if first.Description != wantDesc {
		t.Errorf("description = %q, want %q", first.Description, wantDesc)
	}
	if first.Coordinate.Latitude != 49.8 || first.Coordinate.Longitude != -121.5 {
		t.Errorf("coordinate = %+v, want geometry point", first.Coordinate)
	}
	if !first.IsActiveFire() {
		t.Error("out-of-control fire should be active")
	}

	// Second record is mostly empty: placeholders, never a crash.
	second := alerts[1]
	wantDesc = "Fire #Unknown - Holding\nLocation: Unknown Location\nType: Unknown\nSize: 0.0 hectares"
	if second.Description != wantDesc {
		t.Errorf("placeholder description = %q, want %q", second.Description, wantDesc)
	}
}

func TestWildfireFallbackOnPrimaryFailure(t *testing.T) {
	coord := models.Coordinate{Latitude: 50.0, Longitude: -120.0}

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service down", http.StatusInternalServerError)
	}))
	defer primary.Close()

	var fallbackCalls int32
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackCalls, 1)
		q := r.URL.Query()
		if q.Get("service") != "WFS" || q.Get("request") != "GetFeature" {
			t.Errorf("unexpected WFS params: %v", q)
		}
		wantBBox := fmt.Sprintf("%f,%f,%f,%f,EPSG:4326", -121.0, 49.0, -119.0, 51.0)
		if q.Get("bbox") != wantBBox {
			t.Errorf("bbox = %q, want %q", q.Get("bbox"), wantBBox)
		}
		w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [{
				"properties": {
					"FIRE_NUMBER": "C10987",
					"FIRE_STATUS": "Under Control",
					"GEOGRAPHIC_DESCRIPTION": "Cariboo",
					"FIRE_TYPE": "Wildfire",
					"FIRE_SIZE_HECTARES": 4.0
				},
				"geometry": {"type": "Point", "coordinates": [-120.4, 50.2]}
			}]
		}`))
	}))
	defer fallback.Close()

	fetcher := NewDataFetcher()
	alerts, err := fetcher.Wildfire.Fetch(context.Background(), primary.URL, fallback.URL, "pub:FIRE_PNTS", coord)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if n := atomic.LoadInt32(&fallbackCalls); n != 1 {
		t.Errorf("fallback called %d times, want exactly 1", n)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Source != "BC Government Data" {
		t.Errorf("source = %q, want BC Government Data", alerts[0].Source)
	}
	if alerts[0].Coordinate.Latitude != 50.2 || alerts[0].Coordinate.Longitude != -120.4 {
		t.Errorf("coordinate = %+v", alerts[0].Coordinate)
	}
	if !strings.Contains(alerts[0].Description, "Fire #C10987 - Under Control") {
		t.Errorf("description = %q", alerts[0].Description)
	}
}

func TestWildfireFallbackStrictSchema(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer primary.Close()

	// FIRE_SIZE_HECTARES missing: the fallback schema has no optional fields.
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [{
				"properties": {
					"FIRE_NUMBER": "X1",
					"FIRE_STATUS": "Holding",
					"GEOGRAPHIC_DESCRIPTION": "Somewhere",
					"FIRE_TYPE": "Wildfire"
				},
				"geometry": {"type": "Point", "coordinates": [-120.0, 50.0]}
			}]
		}`))
	}))
	defer fallback.Close()

	fetcher := NewDataFetcher()
	_, err := fetcher.Wildfire.Fetch(context.Background(), primary.URL, fallback.URL, "tn", models.Coordinate{Latitude: 50, Longitude: -120})
	if err == nil {
		t.Fatal("expected error for missing required property")
	}
	if !strings.Contains(err.Error(), "FIRE_SIZE_HECTARES") {
		t.Errorf("error should name the missing property: %v", err)
	}
}

func TestWildfirePrimaryEmptyIsNotFailure(t *testing.T) {
	var fallbackCalled bool
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": []}`))
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackCalled = true
	}))
	defer fallback.Close()

	fetcher := NewDataFetcher()
	alerts, err := fetcher.Wildfire.Fetch(context.Background(), primary.URL, fallback.URL, "tn", models.Coordinate{})
	if err != nil {
		t.Fatalf("empty result should not be an error: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts, got %d", len(alerts))
	}
	if fallbackCalled {
		t.Error("fallback must not fire when the primary succeeds with no records")
	}
}

func TestWildfireBothSourcesFail(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer fallback.Close()

	fetcher := NewDataFetcher()
	_, err := fetcher.Wildfire.Fetch(context.Background(), primary.URL, fallback.URL, "tn", models.Coordinate{})
	if err == nil {
		t.Fatal("expected error when both sources fail")
	}
}

func TestWildfireInBandServiceError(t *testing.T) {
	// ArcGIS reports some failures inside a 200 response.
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"code": 400, "message": "Invalid query"}}`))
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "FeatureCollection", "features": []}`))
	}))
	defer fallback.Close()

	fetcher := NewDataFetcher()
	alerts, err := fetcher.Wildfire.Fetch(context.Background(), primary.URL, fallback.URL, "tn", models.Coordinate{})
	if err != nil {
		t.Fatalf("fallback should have rescued the in-band error: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts, got %d", len(alerts))
	}
}
