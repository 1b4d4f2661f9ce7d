// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/trip-engine/internal/httputil"
	"github.com/pdiddy/trip-engine/pkg/types"
)

// Amadeus API bases. Declared as vars so tests can substitute an
// httptest server.
var (
	amadeusTestAPIBase       = "https://test.api.amadeus.com"
	amadeusProductionAPIBase = "https://api.amadeus.com"
)

// FlightCriteria is one flight search request.
type FlightCriteria struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
}

// AmadeusClient queries the Amadeus flight-offers API. It manages its
// OAuth2 client-credentials token internally and refreshes it on expiry.
type AmadeusClient struct {
	cfg     types.FlightSearchConfig
	client  *http.Client
	baseURL string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewAmadeus builds a flight provider from config. The test environment
// is the default; production must be selected explicitly.
func NewAmadeus(cfg types.FlightSearchConfig) *AmadeusClient {
	base := amadeusTestAPIBase
	if cfg.Environment == "production" {
		base = amadeusProductionAPIBase
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AmadeusClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		baseURL: base,
	}
}

// SearchFlights returns raw flight offers for the criteria. It reports
// ErrUnavailable when live search is disabled or credentials are
// missing, so the caller can fall back without treating it as a fault.
func (c *AmadeusClient) SearchFlights(ctx context.Context, criteria FlightCriteria) ([]RawRecord, error) {
	if !c.cfg.EnableLive || c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return nil, fmt.Errorf("amadeus: %w", ErrUnavailable)
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("amadeus auth: %w", err)
	}

	maxOffers := c.cfg.MaxOffers
	if maxOffers <= 0 {
		maxOffers = 5
	}
	adults := criteria.Adults
	if adults <= 0 {
		adults = 1
	}

	q := url.Values{}
	q.Set("originLocationCode", AirportCode(criteria.Origin))
	q.Set("destinationLocationCode", AirportCode(criteria.Destination))
	q.Set("departureDate", criteria.DepartureDate)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("max", strconv.Itoa(maxOffers))
	if criteria.ReturnDate != "" {
		q.Set("returnDate", criteria.ReturnDate)
	}

	searchURL := fmt.Sprintf("%s/v2/shopping/flight-offers?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("amadeus flight-offers request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amadeus flight-offers returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Data []RawRecord `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing flight-offers response: %w", err)
	}
	return body.Data, nil
}

// accessToken returns a valid bearer token, fetching a fresh one when
// the cached token is absent or within 30 seconds of expiry.
func (c *AmadeusClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-30*time.Second)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.APIKey)
	form.Set("client_secret", c.cfg.APISecret)

	tokenURL := c.baseURL + "/v1/security/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}

	c.token = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	return c.token, nil
}
