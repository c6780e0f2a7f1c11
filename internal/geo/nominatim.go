// Package geo resolves place names to coordinates using a Nominatim-style
// search endpoint. Resolution is strictly best-effort: every failure mode
// (HTTP error, bad status, empty result, bad payload) comes back as
// (nil, nil) so callers leave the location unresolved instead of failing.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

const (
	cacheTTL       = 24 * time.Hour
	cleanupEvery   = time.Hour
	requestTimeout = 5 * time.Second
)

// Client is a caching geocoder. Place names repeat constantly in generated
// itineraries, so successful lookups are cached for a day.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
	log     *slog.Logger
}

// NewClient constructs a geocoder against the given Nominatim-compatible
// base URL (e.g. "https://nominatim.openstreetmap.org").
func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		cache:   cache.New(cacheTTL, cleanupEvery),
		log:     log,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a place name. A nil result with a nil error means the
// place could not be resolved.
func (c *Client) Geocode(ctx context.Context, place string) (*domain.Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, nil
	}

	key := strings.ToLower(place)
	if hit, ok := c.cache.Get(key); ok {
		coords := hit.(domain.Coordinates)
		return &coords, nil
	}

	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(place))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil
	}
	req.Header.Set("User-Agent", "moodtrip/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("geocode request failed", "place", place, "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("geocode request failed", "place", place, "status", resp.StatusCode)
		return nil, nil
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, nil
	}

	coords := domain.Coordinates{Lat: lat, Lng: lng}
	if coords.Unresolved() {
		return nil, nil
	}
	c.cache.Set(key, coords, cache.DefaultExpiration)
	return &coords, nil
}
