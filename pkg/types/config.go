// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests
	// (e.g. "trip-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FlightSearchConfig holds settings for the live flight provider.
// Per prd005-providers R1.
type FlightSearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// EnableLive controls whether the Amadeus backend is queried at all.
	// When false the pipeline goes straight to synthesis.
	EnableLive bool `json:"enable_live" yaml:"enable_live"`

	// APIKey and APISecret are the Amadeus client credentials.
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty" yaml:"api_secret,omitempty"`

	// Environment selects the Amadeus host: "test" or "production".
	Environment string `json:"environment" yaml:"environment"`

	// MaxOffers is the maximum number of raw offers requested (default 5).
	MaxOffers int `json:"max_offers" yaml:"max_offers"`
}

// HotelSearchConfig holds settings for the live hotel provider.
// Per prd005-providers R2.
type HotelSearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// EnableLive controls whether the HTTP hotel backend is queried.
	EnableLive bool `json:"enable_live" yaml:"enable_live"`

	// BaseURL is the hotel search endpoint root (expects /search).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// FallbackConfig holds settings for the synthetic result generator.
// Per prd002-fallback R1, R5.
type FallbackConfig struct {
	// MinOptions and MaxOptions bound the generated batch size
	// (defaults 5 and 15). A batch is never empty.
	MinOptions int `json:"min_options" yaml:"min_options"`
	MaxOptions int `json:"max_options" yaml:"max_options"`

	// Seed fixes the random source for reproducible output. Zero means
	// derive a seed from the clock at startup.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// LLMConfig holds settings for the itinerary narrative model.
type LLMConfig struct {
	// Model is the chat model identifier (default "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the OpenAI-compatible API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint for proxies and tests.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the session store.
// Per prd007-persistence R1.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// PlanTimeout bounds one end-to-end planning request (default 90s).
	PlanTimeout time.Duration `json:"plan_timeout" yaml:"plan_timeout"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Flights  FlightSearchConfig `json:"flights" yaml:"flights"`
	Hotels   HotelSearchConfig  `json:"hotels" yaml:"hotels"`
	Fallback FallbackConfig     `json:"fallback" yaml:"fallback"`
	LLM      LLMConfig          `json:"llm" yaml:"llm"`
	Store    StoreConfig        `json:"store" yaml:"store"`
	Server   ServerConfig       `json:"server" yaml:"server"`
}
