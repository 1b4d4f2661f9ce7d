package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/trip-engine/internal/itinerary"
	"github.com/pdiddy/trip-engine/internal/llm"
	"github.com/pdiddy/trip-engine/internal/provider"
	"github.com/pdiddy/trip-engine/pkg/types"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "trip-engine/0.1"
)

// newLogger builds the process-wide structured logger. Level comes from
// the "log_level" config key ("debug", "info", "warn", "error").
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch viper.GetString("log_level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadPipelineConfig assembles the full pipeline configuration from viper
// keys, with API credentials falling back to the loaded secrets.
func loadPipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Flights: types.FlightSearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultHTTPTimeout,
				UserAgent: defaultUserAgent,
			},
			EnableLive:  viper.GetBool("flights.enable_live"),
			APIKey:      secretDefault("amadeus-api-key", viper.GetString("flights.api_key")),
			APISecret:   secretDefault("amadeus-api-secret", viper.GetString("flights.api_secret")),
			Environment: viper.GetString("flights.environment"),
			MaxOffers:   viper.GetInt("flights.max_offers"),
		},
		Hotels: types.HotelSearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultHTTPTimeout,
				UserAgent: defaultUserAgent,
			},
			EnableLive: viper.GetBool("hotels.enable_live"),
			BaseURL:    viper.GetString("hotels.base_url"),
		},
		Fallback: types.FallbackConfig{
			MinOptions: viper.GetInt("fallback.min_options"),
			MaxOptions: viper.GetInt("fallback.max_options"),
			Seed:       viper.GetInt64("fallback.seed"),
		},
		LLM: types.LLMConfig{
			Model:      viper.GetString("llm.model"),
			APIKey:     secretDefault("openai-api-key", viper.GetString("llm.api_key")),
			BaseURL:    viper.GetString("llm.base_url"),
			MaxRetries: viper.GetInt("llm.max_retries"),
		},
		Store: types.StoreConfig{
			DataDir: viper.GetString("store.data_dir"),
		},
		Server: types.ServerConfig{
			Addr:        viper.GetString("server.addr"),
			PlanTimeout: viper.GetDuration("server.plan_timeout"),
		},
	}

	if t := viper.GetDuration("http.timeout"); t > 0 {
		cfg.Flights.Timeout = t
		cfg.Hotels.Timeout = t
	}
	return cfg
}

// buildPlanner wires the itinerary builder from configuration. Live
// providers and the narrative model attach only when configured; the
// builder degrades to sample synthesis without them.
func buildPlanner(cfg types.PipelineConfig, logger *slog.Logger) *itinerary.Builder {
	b := &itinerary.Builder{
		Cfg:    cfg,
		Logger: logger,
	}

	if cfg.Flights.EnableLive {
		b.Flights = provider.NewAmadeus(cfg.Flights)
	}
	if cfg.Hotels.EnableLive {
		b.Hotels = provider.NewHotels(cfg.Hotels)
	}
	if cfg.LLM.APIKey != "" {
		b.Text = llm.NewOpenAI(cfg.LLM)
	}

	logger.Info("planner configured",
		"live_flights", b.Flights != nil,
		"live_hotels", b.Hotels != nil,
		"narrative_model", b.Text != nil)
	return b
}
