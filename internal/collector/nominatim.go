package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// NominatimGeocoder implements Geocoder against a Nominatim instance.
type NominatimGeocoder struct {
	BaseURL string
	Client  *http.Client
}

// NewNominatimGeocoder creates a geocoder with optional proxy support.
func NewNominatimGeocoder(baseURL, proxyURL string) *NominatimGeocoder {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NominatimGeocoder{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// nominatimResult carries coordinates as strings on the wire.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a free-text query to the first match. No matches
// reports ok = false with a nil error so the caller leaves its current
// location untouched.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (lat, lon float64, ok bool, err error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, 0, false, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocode read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, 0, false, fmt.Errorf("geocode: status %d, body: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return 0, 0, false, fmt.Errorf("geocode decode: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, false, nil
	}

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocode: parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocode: parse longitude %q: %w", results[0].Lon, err)
	}
	return lat, lon, true, nil
}
