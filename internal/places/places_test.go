package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearchKeyword(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v2/local/search/keyword.json") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[
			{"id":"1234","place_name":"Gwangjang Market","address_name":"88 Changgyeonggung-ro","road_address_name":"88 Changgyeonggung-ro, Jongno-gu","category_name":"Market","x":"127.0","y":"37.57"},
			{"id":"bad","place_name":"Broken","address_name":"","road_address_name":"","x":"not-a-number","y":"0"}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))
	locations, err := client.SearchKeyword(context.Background(), "gwangjang", 5)
	if err != nil {
		t.Fatalf("SearchKeyword failed: %v", err)
	}

	if gotAuth != "KakaoAK test-key" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotQuery != "gwangjang" {
		t.Errorf("unexpected query %q", gotQuery)
	}

	if len(locations) != 1 {
		t.Fatalf("expected 1 valid location (broken coordinates skipped), got %d", len(locations))
	}

	loc := locations[0]
	if loc.PlaceID != "1234" || loc.PlaceName != "Gwangjang Market" {
		t.Errorf("unexpected place fields: %+v", loc)
	}
	if loc.Address != "88 Changgyeonggung-ro, Jongno-gu" {
		t.Errorf("expected road address preferred, got %q", loc.Address)
	}
	if loc.Latitude != 37.57 || loc.Longitude != 127.0 {
		t.Errorf("unexpected coordinates: %+v", loc)
	}
}

func TestSearchKeywordRequiresTerm(t *testing.T) {
	client := NewClient("key")
	if _, err := client.SearchKeyword(context.Background(), "", 5); err == nil {
		t.Error("expected error for empty keyword")
	}
}

func TestSearchKeywordBadAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("wrong", WithBaseURL(server.URL))
	_, err := client.SearchKeyword(context.Background(), "anything", 5)
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("expected API key error, got %v", err)
	}
}

func TestReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v2/local/geo/coord2address.json") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[{"road_address":null,"address":{"address_name":"Jongno-gu, Seoul"}}]}`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	loc, err := client.ReverseGeocode(context.Background(), 37.57, 127.0)
	if err != nil {
		t.Fatalf("ReverseGeocode failed: %v", err)
	}

	if loc.Address != "Jongno-gu, Seoul" {
		t.Errorf("unexpected address %q", loc.Address)
	}
	if loc.Latitude != 37.57 || loc.Longitude != 127.0 {
		t.Errorf("coordinates not preserved: %+v", loc)
	}
}

func TestReverseGeocodeNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[]}`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	if _, err := client.ReverseGeocode(context.Background(), 0, 0); err == nil {
		t.Error("expected error for empty result")
	}
}
