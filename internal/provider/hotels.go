// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/trip-engine/internal/httputil"
	"github.com/pdiddy/trip-engine/pkg/types"
)

// HotelCriteria is one hotel search request.
type HotelCriteria struct {
	City    string
	CheckIn string
	Nights  int
	Guests  int
}

// HotelClient queries a hotel aggregator over plain HTTP. The upstream
// response shape is not guaranteed; records pass through untyped for the
// normalizer to sort out.
type HotelClient struct {
	cfg    types.HotelSearchConfig
	client *http.Client
}

// NewHotels builds a hotel provider from config.
func NewHotels(cfg types.HotelSearchConfig) *HotelClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HotelClient{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

// SearchHotels returns raw hotel records for the criteria. It reports
// ErrUnavailable when live search is disabled or no base URL is
// configured.
func (c *HotelClient) SearchHotels(ctx context.Context, criteria HotelCriteria) ([]RawRecord, error) {
	if !c.cfg.EnableLive || c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("hotels: %w", ErrUnavailable)
	}

	q := url.Values{}
	q.Set("city", criteria.City)
	q.Set("checkin", criteria.CheckIn)
	q.Set("nights", strconv.Itoa(max(criteria.Nights, 1)))
	q.Set("guests", strconv.Itoa(max(criteria.Guests, 1)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/search?%s", c.cfg.BaseURL, q.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("hotel search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hotel search returned HTTP %d", resp.StatusCode)
	}

	return decodeHotelBody(resp)
}

// decodeHotelBody accepts either a bare JSON array of records or an
// object wrapping the array under hotels, results, or data.
func decodeHotelBody(resp *http.Response) ([]RawRecord, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing hotel response: %w", err)
	}

	var records []RawRecord
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing hotel response: unrecognized shape")
	}
	for _, key := range []string{"hotels", "results", "data"} {
		inner, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &records); err != nil {
			return nil, fmt.Errorf("parsing hotel response %q list: %w", key, err)
		}
		return records, nil
	}
	return nil, fmt.Errorf("parsing hotel response: no hotel list found")
}
