// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// amadeusOffer builds a well-formed raw offer in the provider's shape.
func amadeusOffer(id string, total string, currency string) map[string]any {
	return map[string]any{
		"id": id,
		"price": map[string]any{
			"total":    total,
			"currency": currency,
		},
		"itineraries": []any{
			map[string]any{
				"duration": "PT5H30M",
				"segments": []any{
					map[string]any{
						"carrierCode": "AI",
						"number":      "401",
						"departure":   map[string]any{"iataCode": "DEL", "at": "2026-09-10T06:30:00"},
						"arrival":     map[string]any{"iataCode": "NRT", "at": "2026-09-10T17:45:00"},
						"duration":    "PT5H30M",
						"cabin":       "ECONOMY",
					},
				},
			},
		},
	}
}

func TestFlightWellFormed(t *testing.T) {
	opt, err := Flight(amadeusOffer("1", "12500", "INR"), FlightContext{BudgetCeiling: 40000})
	if err != nil {
		t.Fatalf("Flight() error: %v", err)
	}
	if opt == nil {
		t.Fatal("Flight() = nil, want option")
	}
	if opt.Price != 12500 {
		t.Errorf("Price = %g, want 12500", opt.Price)
	}
	if opt.Currency != "INR" {
		t.Errorf("Currency = %q, want INR", opt.Currency)
	}
	if opt.TotalStops != 0 {
		t.Errorf("TotalStops = %d, want 0", opt.TotalStops)
	}
	if opt.TotalDuration != "PT5H30M" {
		t.Errorf("TotalDuration = %q", opt.TotalDuration)
	}
	if len(opt.Airlines) != 1 || opt.Airlines[0] != "AI" {
		t.Errorf("Airlines = %v, want [AI]", opt.Airlines)
	}
	if got := opt.Segments[0].FlightNumber; got != "AI401" {
		t.Errorf("FlightNumber = %q, want AI401", got)
	}
	if opt.Source != "live" {
		t.Errorf("Source = %q, want live", opt.Source)
	}
}

func TestFlightCurrencyConversion(t *testing.T) {
	opt, err := Flight(amadeusOffer("1", "100", "USD"), FlightContext{})
	if err != nil {
		t.Fatalf("Flight() error: %v", err)
	}
	if opt.Price != 8300 {
		t.Errorf("Price = %g, want 8300 (100 USD at fixed rate)", opt.Price)
	}
	if opt.Currency != "INR" {
		t.Errorf("Currency = %q, want INR after conversion", opt.Currency)
	}
}

func TestFlightBudgetShareFilter(t *testing.T) {
	// 40% of 40000 is 16000: an offer at 16001 must be filtered, one at
	// 16000 must pass.
	over, err := Flight(amadeusOffer("1", "16001", "INR"), FlightContext{BudgetCeiling: 40000})
	if err != nil {
		t.Fatalf("Flight() error: %v", err)
	}
	if over != nil {
		t.Error("offer above 40% budget share should be filtered, not returned")
	}

	at, err := Flight(amadeusOffer("2", "16000", "INR"), FlightContext{BudgetCeiling: 40000})
	if err != nil {
		t.Fatalf("Flight() error: %v", err)
	}
	if at == nil {
		t.Error("offer at exactly the cap should pass")
	}
}

func TestFlightMalformedPrice(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
	}{
		{"missing price", map[string]any{"id": "1"}},
		{"unparsable price", map[string]any{"price": "call us"}},
		{"nested without known keys", map[string]any{"price": map[string]any{"display": "cheap"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flight(tt.rec, FlightContext{})
			var malformedErr *MalformedRecordError
			if !errors.As(err, &malformedErr) {
				t.Errorf("Flight() error = %v, want MalformedRecordError", err)
			}
		})
	}
}

func TestFlightMissingSegmentsSubstituted(t *testing.T) {
	rec := map[string]any{
		"price":   9500.0,
		"airline": "6E",
	}
	opt, err := Flight(rec, FlightContext{})
	if err != nil {
		t.Fatalf("Flight() error: %v", err)
	}
	if len(opt.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want substituted single leg", len(opt.Segments))
	}
	if opt.Segments[0].Airline != "6E" {
		t.Errorf("substituted Airline = %q, want 6E", opt.Segments[0].Airline)
	}
	if opt.Segments[0].Cabin != "ECONOMY" {
		t.Errorf("substituted Cabin = %q, want ECONOMY", opt.Segments[0].Cabin)
	}
	if opt.TotalStops != 0 {
		t.Errorf("TotalStops = %d, want 0", opt.TotalStops)
	}
}

func TestFlightsBatchSkipsMalformed(t *testing.T) {
	recs := []map[string]any{
		amadeusOffer("1", "12000", "INR"),
		{"price": "unparsable"},
		amadeusOffer("2", "14000", "INR"),
		{"id": "no-price"},
		amadeusOffer("3", "99000", "INR"), // above 40% of 40000
	}
	got := Flights(recs, FlightContext{BudgetCeiling: 40000}, discardLogger())
	if len(got) != 2 {
		t.Fatalf("len(Flights) = %d, want 2 (two malformed dropped, one over budget)", len(got))
	}
	for _, opt := range got {
		if opt.Price <= 0 {
			t.Errorf("option %s has non-positive price %g", opt.ID, opt.Price)
		}
	}
}
