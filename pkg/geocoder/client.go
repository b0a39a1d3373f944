package geocoder

// YANDEX GEOCODER CLIENT

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nfanikita31-bit/woodshop-sushko/internal/geo"
)

// ErrNotFound is returned when the service has no candidate for the address.
var ErrNotFound = errors.New("geocoder: address not found")

const DefaultBaseURL = "https://geocode-maps.yandex.ru/1.x/"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type response struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Resolve geocodes a free-text address into coordinates using the first
// candidate the service returns. A single call, no retries.
func (c *Client) Resolve(ctx context.Context, address string) (geo.Point, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("geocode", address)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"?"+params.Encode(),
		nil,
	)
	if err != nil {
		return geo.Point{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geo.Point{}, fmt.Errorf("decode response: %w", err)
	}

	members := body.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		c.logger.Debug("No geocoding candidates", zap.String("address", address))
		return geo.Point{}, ErrNotFound
	}

	point, err := parsePos(members[0].GeoObject.Point.Pos)
	if err != nil {
		return geo.Point{}, fmt.Errorf("parse position: %w", err)
	}
	return point, nil
}

// parsePos parses the service's "longitude latitude" position string.
func parsePos(pos string) (geo.Point, error) {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return geo.Point{}, fmt.Errorf("malformed pos %q", pos)
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("malformed longitude %q: %w", fields[0], err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("malformed latitude %q: %w", fields[1], err)
	}

	return geo.Point{Lat: lat, Lon: lon}, nil
}
