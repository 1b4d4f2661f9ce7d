// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"
	"testing"

	"github.com/pdiddy/trip-engine/pkg/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestHotelScoreFormula(t *testing.T) {
	options := []types.HotelOption{
		{
			ID:                "h1",
			PricePerNight:     5000,
			Rating:            4.0,
			Amenities:         []string{"WiFi", "Pool", "Gym", "Spa"},
			BreakfastIncluded: true,
			Refundable:        true,
		},
		{ID: "h2", PricePerNight: 10000, Rating: 5.0},
	}
	Hotels(options)

	// h1: 0.5*(4/5) + 0.3*(1-5000/10000) + 0.15*(4/8) + 0.10 + 0.05
	wantH1 := 0.5*0.8 + 0.3*0.5 + 0.15*0.5 + 0.10 + 0.05
	// h2: 0.5*(5/5) + 0.3*0 + 0
	wantH2 := 0.5

	var byID = map[string]float64{}
	for _, o := range options {
		byID[o.ID] = o.ValueScore
	}
	if !almostEqual(byID["h1"], wantH1) {
		t.Errorf("h1 score = %g, want %g", byID["h1"], wantH1)
	}
	if !almostEqual(byID["h2"], wantH2) {
		t.Errorf("h2 score = %g, want %g", byID["h2"], wantH2)
	}
	if options[0].ID != "h1" {
		t.Errorf("highest score first, got %q", options[0].ID)
	}
}

func TestHotelTieBreaking(t *testing.T) {
	// first and second are fully identical, so a score tie plus a price
	// tie falls through to insertion order. cheapest carries a strictly
	// higher price factor and wins outright.
	options := []types.HotelOption{
		{ID: "first", PricePerNight: 2000, Rating: 4.0},
		{ID: "second", PricePerNight: 2000, Rating: 4.0},
		{ID: "cheapest", PricePerNight: 1000, Rating: 4.0},
	}
	Hotels(options)

	if options[0].ID != "cheapest" {
		t.Errorf("order[0] = %q, want cheapest (higher price factor)", options[0].ID)
	}
	if options[1].ID != "first" || options[2].ID != "second" {
		t.Errorf("tied options must keep insertion order, got %q then %q",
			options[1].ID, options[2].ID)
	}
}

func TestFlightScoreFormula(t *testing.T) {
	options := []types.FlightOption{
		{ID: "f1", Price: 8000, Rating: 4.0},
		{ID: "f2", Price: 16000, Rating: 5.0},
	}
	Flights(options)

	wantF1 := 0.6*0.5 + 0.4*0.8
	wantF2 := 0.6*0 + 0.4*1.0

	var byID = map[string]float64{}
	for _, o := range options {
		byID[o.ID] = o.ValueScore
	}
	if !almostEqual(byID["f1"], wantF1) {
		t.Errorf("f1 score = %g, want %g", byID["f1"], wantF1)
	}
	if !almostEqual(byID["f2"], wantF2) {
		t.Errorf("f2 score = %g, want %g", byID["f2"], wantF2)
	}
	if options[0].ID != "f1" {
		t.Errorf("cheaper f1 should rank first, got %q", options[0].ID)
	}
}

func TestFlightTieBrokenByPrice(t *testing.T) {
	options := []types.FlightOption{
		{ID: "a", Price: 5000, Rating: 4.0},
		{ID: "b", Price: 5000, Rating: 4.0},
	}
	Flights(options)
	if options[0].ID != "a" || options[1].ID != "b" {
		t.Errorf("tied flights must keep insertion order, got %q, %q",
			options[0].ID, options[1].ID)
	}
}

func TestSingleItemBatch(t *testing.T) {
	hotels := []types.HotelOption{{ID: "only", PricePerNight: 4000, Rating: 4.0}}
	Hotels(hotels)
	// Sole item is its own batch maximum: price factor 0.
	want := 0.5 * 0.8
	if !almostEqual(hotels[0].ValueScore, want) {
		t.Errorf("score = %g, want %g", hotels[0].ValueScore, want)
	}

	flights := []types.FlightOption{{ID: "only", Price: 9000, Rating: 4.0}}
	Flights(flights)
	if !almostEqual(flights[0].ValueScore, 0.4*0.8) {
		t.Errorf("flight score = %g, want %g", flights[0].ValueScore, 0.4*0.8)
	}
}

func TestZeroPriceBatch(t *testing.T) {
	options := []types.FlightOption{
		{ID: "a", Price: 0, Rating: 3.0},
		{ID: "b", Price: 0, Rating: 5.0},
	}
	Flights(options)
	if options[0].ID != "b" {
		t.Errorf("with a zero-price batch rating decides, got %q first", options[0].ID)
	}
	if !almostEqual(options[0].ValueScore, 0.6+0.4) {
		t.Errorf("zero max price should yield full price factor, score = %g",
			options[0].ValueScore)
	}
}

func TestEmptyBatchNoPanic(t *testing.T) {
	Hotels(nil)
	Flights([]types.FlightOption{})
}
