// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package itinerary merges flight and hotel envelopes, the extras
// sections, and a model-written day-by-day plan into one trip document.
// The narrative model is optional and best-effort: when it is absent or
// fails, a scaffold plan built from the gathered results takes its
// place, so planning never fails on the model's account.
//
// Implements: prd006-itinerary (R1-R5); docs/ARCHITECTURE § Itinerary.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/pdiddy/trip-engine/internal/assemble"
	"github.com/pdiddy/trip-engine/internal/extras"
	"github.com/pdiddy/trip-engine/internal/fallback"
	"github.com/pdiddy/trip-engine/internal/llm"
	"github.com/pdiddy/trip-engine/internal/normalize"
	"github.com/pdiddy/trip-engine/internal/provider"
	"github.com/pdiddy/trip-engine/internal/rank"
	"github.com/pdiddy/trip-engine/pkg/types"
)

// accommodationBudgetShare is the share of the total budget assumed
// available for lodging; divided by nights it yields the per-night
// ceiling the hotel normalizer filters against.
const accommodationBudgetShare = 0.4

// jsonObjectPattern grabs the outermost JSON object from model output
// that may be wrapped in prose or code fences.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// FlightSearcher is the live flight capability, usually *provider.AmadeusClient.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, criteria provider.FlightCriteria) ([]provider.RawRecord, error)
}

// HotelSearcher is the live hotel capability, usually *provider.HotelClient.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, criteria provider.HotelCriteria) ([]provider.RawRecord, error)
}

// Builder assembles complete trip itineraries. A nil Flights or Hotels
// searcher disables that domain's live attempt; a nil Text service
// skips the narrative model entirely.
type Builder struct {
	Flights FlightSearcher
	Hotels  HotelSearcher
	Text    llm.TextService
	Cfg     types.PipelineConfig
	Logger  *slog.Logger
}

// llmItinerary is the structured portion we accept from model output.
// Unknown fields are ignored; missing fields fall back to the scaffold.
type llmItinerary struct {
	TotalCost       float64            `json:"total_cost"`
	DailyItinerary  []types.DayPlan    `json:"daily_itinerary"`
	CostBreakdown   map[string]float64 `json:"cost_breakdown"`
	Recommendations []string           `json:"recommendations"`
}

// Build plans one trip. The two search domains run concurrently; both
// always produce a populated envelope, so the returned itinerary is
// complete even when every upstream is down.
func (b *Builder) Build(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trip request: %w", err)
	}

	seed := b.Cfg.Fallback.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	flightSet, hotelSet := b.searchBoth(ctx, req, seed)

	xg := extras.New(seed + 2)
	attractions := xg.Attractions(req.Interests, req.Budget*0.05)
	restaurants := xg.Restaurants("local")
	weather := xg.Weather(req.Destination, req.StartDate, req.DurationDays)
	currency := extras.Currency(req.Budget)

	it := &types.Itinerary{
		Destination:   req.Destination,
		TotalDays:     req.DurationDays,
		Currency:      "INR",
		Flights:       flightSet,
		Hotels:        hotelSet,
		Attractions:   attractions,
		Restaurants:   restaurants,
		Weather:       weather,
		CurrencyNotes: currency,
	}

	plan := b.narrativePlan(ctx, req, it)
	it.TotalCost = plan.TotalCost
	it.DailyItinerary = plan.DailyItinerary
	it.CostBreakdown = plan.CostBreakdown
	it.Recommendations = plan.Recommendations
	return it, nil
}

// searchBoth runs the flight and hotel pipelines concurrently. Each
// pipeline owns its own fallback generator; the shared seed keeps the
// whole document reproducible for a fixed configuration.
func (b *Builder) searchBoth(ctx context.Context, req types.TripRequest, seed int64) (types.ResultSet[types.FlightOption], types.ResultSet[types.HotelOption]) {
	nights := req.Nights()
	perNightCeiling := req.Budget * accommodationBudgetShare / float64(nights)
	city := fallback.New(seed, b.Cfg.Fallback).ResolveCity(req.Destination)

	flightPipe := assemble.Pipeline[types.FlightOption]{
		Timeout: b.Cfg.Flights.Timeout,
		Normalize: func(rec provider.RawRecord) (*types.FlightOption, error) {
			return normalize.Flight(rec, normalize.FlightContext{BudgetCeiling: req.Budget})
		},
		Synthesize: func() []types.FlightOption {
			return fallback.New(seed, b.Cfg.Fallback).Flights(fallback.FlightQuery{
				Origin:        req.Origin,
				Destination:   req.Destination,
				Travelers:     req.Travelers,
				BudgetCeiling: req.Budget * normalize.FlightBudgetShare,
			})
		},
		Score:  rank.Flights,
		Logger: b.Logger,
	}
	if b.Flights != nil {
		flightPipe.Live = func(ctx context.Context) ([]provider.RawRecord, error) {
			return b.Flights.SearchFlights(ctx, provider.FlightCriteria{
				Origin:        req.Origin,
				Destination:   req.Destination,
				DepartureDate: req.StartDate,
				Adults:        req.Travelers,
			})
		}
	}

	hotelPipe := assemble.Pipeline[types.HotelOption]{
		Timeout: b.Cfg.Hotels.Timeout,
		Normalize: func(rec provider.RawRecord) (*types.HotelOption, error) {
			return normalize.Hotel(rec, normalize.HotelContext{
				BudgetCeiling: perNightCeiling,
				Nights:        nights,
			})
		},
		Synthesize: func() []types.HotelOption {
			return fallback.New(seed+1, b.Cfg.Fallback).Hotels(fallback.HotelQuery{
				Destination:   req.Destination,
				Category:      req.AccommodationType,
				Nights:        nights,
				BudgetCeiling: perNightCeiling,
			})
		},
		Score:  rank.Hotels,
		Logger: b.Logger,
	}
	if b.Hotels != nil {
		hotelPipe.Live = func(ctx context.Context) ([]provider.RawRecord, error) {
			return b.Hotels.SearchHotels(ctx, provider.HotelCriteria{
				City:    city,
				CheckIn: req.StartDate,
				Nights:  nights,
				Guests:  req.Travelers,
			})
		}
	}

	var (
		wg        sync.WaitGroup
		flightSet types.ResultSet[types.FlightOption]
		hotelSet  types.ResultSet[types.HotelOption]
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		flightSet = flightPipe.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		hotelSet = hotelPipe.Run(ctx)
	}()
	wg.Wait()
	return flightSet, hotelSet
}

// narrativePlan asks the model for the day-by-day plan, falling back to
// the scaffold on any failure. Model trouble is logged, never returned.
func (b *Builder) narrativePlan(ctx context.Context, req types.TripRequest, it *types.Itinerary) llmItinerary {
	scaffold := b.scaffoldPlan(req, it)
	if b.Text == nil {
		return scaffold
	}

	planningPrompt, err := renderPrompt(planningPromptTmpl, req, "")
	if err != nil {
		b.Logger.Error("planning prompt failed", "err", err)
		return scaffold
	}
	notes, err := llm.CompleteWithRetry(ctx, b.Text, planningPrompt, b.Cfg.LLM.MaxRetries)
	if err != nil {
		b.Logger.Warn("planning completion failed, using scaffold plan", "err", err)
		return scaffold
	}

	toolResults, err := json.MarshalIndent(map[string]any{
		"planning_notes": notes,
		"flights":        it.Flights,
		"hotels":         it.Hotels,
		"attractions":    it.Attractions,
		"restaurants":    it.Restaurants,
		"weather":        it.Weather,
		"currency":       it.CurrencyNotes,
	}, "", "  ")
	if err != nil {
		b.Logger.Error("marshaling tool results", "err", err)
		return scaffold
	}

	finalPrompt, err := renderPrompt(finalPromptTmpl, req, string(toolResults))
	if err != nil {
		b.Logger.Error("final prompt failed", "err", err)
		return scaffold
	}
	answer, err := llm.CompleteWithRetry(ctx, b.Text, finalPrompt, b.Cfg.LLM.MaxRetries)
	if err != nil {
		b.Logger.Warn("final completion failed, using scaffold plan", "err", err)
		return scaffold
	}

	raw := jsonObjectPattern.FindString(answer)
	if raw == "" {
		b.Logger.Warn("model answer carried no JSON object, using scaffold plan")
		return scaffold
	}
	var parsed llmItinerary
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		b.Logger.Warn("model JSON did not parse, using scaffold plan", "err", err)
		return scaffold
	}
	if parsed.TotalCost <= 0 {
		parsed.TotalCost = scaffold.TotalCost
	}
	if len(parsed.DailyItinerary) == 0 {
		parsed.DailyItinerary = scaffold.DailyItinerary
	}
	if len(parsed.CostBreakdown) == 0 {
		parsed.CostBreakdown = scaffold.CostBreakdown
	}
	if len(parsed.Recommendations) == 0 {
		parsed.Recommendations = scaffold.Recommendations
	}
	return parsed
}

// scaffoldPlan builds a conservative plan straight from the gathered
// results: budget shares for the cost breakdown and one attraction plus
// one restaurant per day.
func (b *Builder) scaffoldPlan(req types.TripRequest, it *types.Itinerary) llmItinerary {
	days := make([]types.DayPlan, 0, req.DurationDays)
	perDay := req.Budget * 0.8 / float64(req.DurationDays)
	for day := 1; day <= req.DurationDays; day++ {
		plan := types.DayPlan{
			Day:           day,
			Date:          dayLabel(req.StartDate, day),
			EstimatedCost: round2(perDay),
		}
		if len(it.Attractions) > 0 {
			a := it.Attractions[(day-1)%len(it.Attractions)]
			plan.Activities = []map[string]any{{
				"time": "10:00",
				"name": a.Name,
				"cost": a.EntryFee,
			}}
		}
		if len(it.Restaurants) > 0 {
			r := it.Restaurants[(day-1)%len(it.Restaurants)]
			plan.Meals = []map[string]any{{
				"type":  "dinner",
				"venue": r.Name,
				"cost":  r.AvgCostForTwo,
			}}
		}
		days = append(days, plan)
	}

	return llmItinerary{
		TotalCost:      round2(req.Budget * 0.8),
		DailyItinerary: days,
		CostBreakdown: map[string]float64{
			"flights":       round2(req.Budget * 0.3),
			"accommodation": round2(req.Budget * 0.4),
			"activities":    round2(req.Budget * 0.2),
			"meals":         round2(req.Budget * 0.1),
		},
		Recommendations: []string{
			"Book flights and hotels early to lock in the listed prices.",
			"Keep a 10-15% buffer over the planned costs for local transport.",
			"Re-check the weather outlook a few days before departure.",
		},
	}
}

func dayLabel(startDate string, day int) string {
	if startDate == "" {
		return fmt.Sprintf("Day %d", day)
	}
	start, err := time.Parse(types.DateFormat, startDate)
	if err != nil {
		return fmt.Sprintf("Day %d", day)
	}
	return start.AddDate(0, 0, day-1).Format(types.DateFormat)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
