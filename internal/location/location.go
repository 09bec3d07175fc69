// Package location resolves the observer's coordinates via IP
// geolocation, with a fixed fallback so the app can always start.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const (
	geolocateURL   = "http://ip-api.com/json/"
	requestTimeout = 5 * time.Second
)

// Fallback coordinates (San Francisco) used when geolocation fails.
const (
	FallbackLatitude  = 37.7749
	FallbackLongitude = -122.4194
)

// ipAPIResponse is the subset of the ip-api.com JSON payload we read.
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Region  string  `json:"regionName"`
	Message string  `json:"message"`
}

// Locate returns the observer's approximate latitude and longitude via IP
// geolocation. Any failure logs and returns the fallback coordinates;
// Locate never errors.
func Locate(ctx context.Context) (lat, lon float64) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, geolocateURL, nil)
	if err != nil {
		log.Error("geolocation request build failed", "error", err)
		return FallbackLatitude, FallbackLongitude
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Error("geolocation service unreachable", "error", err)
		return FallbackLatitude, FallbackLongitude
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Error("geolocation request failed", "status", resp.Status)
		return FallbackLatitude, FallbackLongitude
	}

	var payload ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Error("geolocation decode failed", "error", err)
		return FallbackLatitude, FallbackLongitude
	}
	if payload.Status != "success" {
		log.Error("geolocation lookup rejected", "message", payload.Message)
		return FallbackLatitude, FallbackLongitude
	}

	log.Info("geolocation resolved",
		"lat", payload.Lat, "lon", payload.Lon,
		"place", fmt.Sprintf("%s, %s", payload.City, payload.Region))
	return payload.Lat, payload.Lon
}
