// Package opensky fetches live aircraft state vectors from the OpenSky
// Network within a bounding box around the observer.
package opensky

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

const (
	defaultBaseURL   = "https://opensky-network.org/api"
	defaultUserAgent = "skywatch/0.1"
	requestTimeout   = 10 * time.Second

	// kmPerDegree approximates one degree of latitude; used to turn the
	// detection radius into bounding-box padding.
	kmPerDegree = 111.0
)

// Client talks to the OpenSky states API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

// NewClient builds a Client. An empty baseURL uses the public OpenSky API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
}

// FetchOverhead retrieves flights within radiusKM of the given point.
// An empty response is valid and returns an empty slice, not an error.
func (c *Client) FetchOverhead(ctx context.Context, lat, lon, radiusKM float64) ([]Flight, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}

	padding := radiusKM / kmPerDegree
	values := url.Values{}
	values.Set("lamin", formatCoord(lat-padding))
	values.Set("lomin", formatCoord(lon-padding))
	values.Set("lamax", formatCoord(lat+padding))
	values.Set("lomax", formatCoord(lon+padding))

	endpoint := c.baseURL + "/states/all?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch states: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("states request failed: %s", resp.Status)
	}

	var payload statesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode states: %w", err)
	}

	flights := make([]Flight, 0, len(payload.States))
	for _, state := range payload.States {
		if f, ok := flightFromState(state); ok {
			flights = append(flights, f)
		}
	}
	return flights, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
