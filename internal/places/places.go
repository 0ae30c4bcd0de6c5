// Package places wraps the Kakao Local REST API for keyword place search
// and reverse geocoding. The journal only consumes the resolved location
// tuple; callers fall back to manual entry when no API key is configured.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hansollee/matzip/internal/models"
)

const defaultBaseURL = "https://dapi.kakao.com"

const defaultTimeout = 10 * time.Second

// Client talks to the place-search provider. The zero value is not usable;
// construct with NewClient.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different endpoint, used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type keywordResponse struct {
	Documents []struct {
		ID          string `json:"id"`
		PlaceName   string `json:"place_name"`
		AddressName string `json:"address_name"`
		RoadAddress string `json:"road_address_name"`
		Category    string `json:"category_name"`
		X           string `json:"x"`
		Y           string `json:"y"`
	} `json:"documents"`
}

// SearchKeyword resolves free-text place names into location candidates,
// best match first.
func (c *Client) SearchKeyword(ctx context.Context, keyword string, limit int) ([]models.Location, error) {
	if keyword == "" {
		return nil, fmt.Errorf("search keyword is required")
	}
	if limit < 1 || limit > 15 {
		limit = 10
	}

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("size", strconv.Itoa(limit))

	var resp keywordResponse
	if err := c.get(ctx, "/v2/local/search/keyword.json", q, &resp); err != nil {
		return nil, err
	}

	locations := make([]models.Location, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		lat, latErr := strconv.ParseFloat(doc.Y, 64)
		lng, lngErr := strconv.ParseFloat(doc.X, 64)
		if latErr != nil || lngErr != nil {
			continue
		}

		address := doc.RoadAddress
		if address == "" {
			address = doc.AddressName
		}

		locations = append(locations, models.Location{
			Address:   address,
			Latitude:  lat,
			Longitude: lng,
			PlaceID:   doc.ID,
			PlaceName: doc.PlaceName,
		})
	}

	return locations, nil
}

type coordResponse struct {
	Documents []struct {
		RoadAddress *struct {
			AddressName string `json:"address_name"`
		} `json:"road_address"`
		Address *struct {
			AddressName string `json:"address_name"`
		} `json:"address"`
	} `json:"documents"`
}

// ReverseGeocode resolves coordinates into a street address.
func (c *Client) ReverseGeocode(ctx context.Context, latitude, longitude float64) (models.Location, error) {
	q := url.Values{}
	q.Set("x", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("y", strconv.FormatFloat(latitude, 'f', -1, 64))

	var resp coordResponse
	if err := c.get(ctx, "/v2/local/geo/coord2address.json", q, &resp); err != nil {
		return models.Location{}, err
	}

	if len(resp.Documents) == 0 {
		return models.Location{}, fmt.Errorf("no address found for %g, %g", latitude, longitude)
	}

	doc := resp.Documents[0]
	address := ""
	if doc.RoadAddress != nil {
		address = doc.RoadAddress.AddressName
	}
	if address == "" && doc.Address != nil {
		address = doc.Address.AddressName
	}

	return models.Location{
		Address:   address,
		Latitude:  latitude,
		Longitude: longitude,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("place search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("place search rejected the API key (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("place search returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode place search response: %w", err)
	}
	return nil
}
