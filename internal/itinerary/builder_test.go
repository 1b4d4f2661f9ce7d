// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package itinerary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/pdiddy/trip-engine/internal/provider"
	"github.com/pdiddy/trip-engine/pkg/types"
)

func testBuilder() *Builder {
	return &Builder{
		Cfg:    types.PipelineConfig{Fallback: types.FallbackConfig{Seed: 42}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func baseRequest() types.TripRequest {
	return types.TripRequest{
		Destination:  "Japan",
		Budget:       150000,
		DurationDays: 5,
		StartDate:    "2026-09-10",
		Travelers:    2,
		Interests:    []string{"culture", "food"},
	}
}

type scriptedText struct {
	answers []string
	calls   int
}

func (s *scriptedText) Complete(_ context.Context, _ string) (string, error) {
	if s.calls >= len(s.answers) {
		return "", errors.New("no more answers")
	}
	s.calls++
	return s.answers[s.calls-1], nil
}

type stubFlights struct {
	recs []provider.RawRecord
	err  error
}

func (s *stubFlights) SearchFlights(_ context.Context, _ provider.FlightCriteria) ([]provider.RawRecord, error) {
	return s.recs, s.err
}

func TestBuildWithoutProvidersOrModel(t *testing.T) {
	it, err := testBuilder().Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if it.Flights.Status != types.StatusSample {
		t.Errorf("flights status = %q, want sample", it.Flights.Status)
	}
	if it.Hotels.Status != types.StatusSample {
		t.Errorf("hotels status = %q, want sample", it.Hotels.Status)
	}
	if len(it.Flights.Options) == 0 || len(it.Hotels.Options) == 0 {
		t.Fatal("both envelopes must be populated")
	}
	if len(it.DailyItinerary) != 5 {
		t.Errorf("daily plans = %d, want 5", len(it.DailyItinerary))
	}
	if it.DailyItinerary[0].Date != "2026-09-10" {
		t.Errorf("day 1 date = %q", it.DailyItinerary[0].Date)
	}
	if it.TotalCost != 150000*0.8 {
		t.Errorf("scaffold total = %g, want %g", it.TotalCost, 150000*0.8)
	}
	if it.CostBreakdown["accommodation"] != 150000*0.4 {
		t.Errorf("accommodation share = %g", it.CostBreakdown["accommodation"])
	}
	if len(it.Attractions) == 0 || len(it.Restaurants) == 0 || len(it.Weather.Forecast) == 0 {
		t.Error("extras sections must be populated")
	}
}

func TestBuildDeterministicWithSeed(t *testing.T) {
	b := testBuilder()
	a, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}
	c, err := testBuilder().Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Flights.Options) != len(c.Flights.Options) {
		t.Fatal("seeded builds must match")
	}
	if a.Flights.Options[0].ID != c.Flights.Options[0].ID ||
		a.Hotels.Options[0].Name != c.Hotels.Options[0].Name {
		t.Error("seeded builds must produce identical top options")
	}
}

func TestBuildUsesModelPlan(t *testing.T) {
	b := testBuilder()
	b.Text = &scriptedText{answers: []string{
		"Flights first, then hotels near the center.",
		"Here is the plan:\n" + `{"total_cost": 120000, "daily_itinerary": [{"day":1,"date":"2026-09-10","estimated_cost":24000}], "cost_breakdown": {"flights": 40000}, "recommendations": ["Carry cash"]}`,
	}}

	it, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if it.TotalCost != 120000 {
		t.Errorf("TotalCost = %g, want the model's 120000", it.TotalCost)
	}
	if len(it.Recommendations) != 1 || it.Recommendations[0] != "Carry cash" {
		t.Errorf("Recommendations = %v", it.Recommendations)
	}
}

func TestBuildModelGarbageFallsBackToScaffold(t *testing.T) {
	b := testBuilder()
	b.Text = &scriptedText{answers: []string{"notes", "I cannot produce JSON today."}}

	it, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if it.TotalCost != 150000*0.8 {
		t.Errorf("TotalCost = %g, want the scaffold estimate", it.TotalCost)
	}
	if len(it.DailyItinerary) != 5 {
		t.Errorf("scaffold must fill all %d days, got %d", 5, len(it.DailyItinerary))
	}
}

func TestBuildModelErrorIsNotFatal(t *testing.T) {
	b := testBuilder()
	b.Text = &scriptedText{} // errors on every call

	it, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(it.DailyItinerary) == 0 {
		t.Error("scaffold plan expected when the model is down")
	}
}

func TestBuildLiveFlights(t *testing.T) {
	b := testBuilder()
	b.Flights = &stubFlights{recs: []provider.RawRecord{
		{"id": "offer-1", "price": map[string]any{"total": "400.00", "currency": "USD"}},
	}}

	it, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if it.Flights.Status != types.StatusLive {
		t.Errorf("flights status = %q, want live", it.Flights.Status)
	}
	if it.Flights.Options[0].Price != 400*83 {
		t.Errorf("price = %g, want USD converted to INR", it.Flights.Options[0].Price)
	}
	if it.Hotels.Status != types.StatusSample {
		t.Errorf("hotels status = %q, want sample (no hotel provider)", it.Hotels.Status)
	}
}

func TestBuildFlightProviderErrorDowngradesStatus(t *testing.T) {
	b := testBuilder()
	b.Flights = &stubFlights{err: provider.ErrUnavailable}

	it, err := b.Build(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if it.Flights.Status != types.StatusFallback {
		t.Errorf("flights status = %q, want fallback", it.Flights.Status)
	}
}

func TestBuildInvalidRequest(t *testing.T) {
	_, err := testBuilder().Build(context.Background(), types.TripRequest{Destination: "Japan"})
	if err == nil {
		t.Fatal("want validation error for zero budget")
	}
}
