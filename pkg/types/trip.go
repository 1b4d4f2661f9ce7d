// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format for all trip dates. Dates are plain strings
// end to end so every document stays JSON serializable without custom
// marshaling.
const DateFormat = "2006-01-02"

// TripRequest is a trip planning request. Budget is the total trip budget
// in INR.
type TripRequest struct {
	Destination         string   `json:"destination" yaml:"destination"`
	Origin              string   `json:"origin,omitempty" yaml:"origin,omitempty"`
	Budget              float64  `json:"budget" yaml:"budget"`
	DurationDays        int      `json:"duration_days" yaml:"duration_days"`
	StartDate           string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Travelers           int      `json:"travelers" yaml:"travelers"`
	Interests           []string `json:"interests,omitempty" yaml:"interests,omitempty"`
	AccommodationType   string   `json:"accommodation_type,omitempty" yaml:"accommodation_type,omitempty"`
	TransportMode       string   `json:"transport_mode,omitempty" yaml:"transport_mode,omitempty"`
	SpecialRequirements string   `json:"special_requirements,omitempty" yaml:"special_requirements,omitempty"`
}

// Validate checks the request and fills defaults for optional fields.
func (r *TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("destination is required")
	}
	if r.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %g", r.Budget)
	}
	if r.DurationDays <= 0 {
		return fmt.Errorf("duration_days must be positive, got %d", r.DurationDays)
	}
	if r.StartDate != "" {
		if _, err := time.Parse(DateFormat, r.StartDate); err != nil {
			return fmt.Errorf("start_date must be %s: %w", DateFormat, err)
		}
	}
	if r.Travelers <= 0 {
		r.Travelers = 1
	}
	if r.Origin == "" {
		r.Origin = "Delhi"
	}
	if r.AccommodationType == "" {
		r.AccommodationType = "hotel"
	}
	if r.TransportMode == "" {
		r.TransportMode = "flight"
	}
	return nil
}

// Nights returns the number of hotel nights implied by the trip length.
func (r *TripRequest) Nights() int {
	if r.DurationDays <= 1 {
		return 1
	}
	return r.DurationDays - 1
}

// DayPlan is one day of the generated itinerary. Activities and meals stay
// loosely typed: the narrative model decides their inner shape.
type DayPlan struct {
	Day           int              `json:"day"`
	Date          string           `json:"date"`
	Activities    []map[string]any `json:"activities"`
	Meals         []map[string]any `json:"meals"`
	EstimatedCost float64          `json:"estimated_cost"`
}

// Itinerary is the merged trip document persisted per session. The flight
// and hotel envelopes are embedded verbatim; the presentation layer keys
// off flights.options and hotels.options directly.
type Itinerary struct {
	Destination     string                  `json:"destination"`
	TotalDays       int                     `json:"total_days"`
	TotalCost       float64                 `json:"total_cost"`
	Currency        string                  `json:"currency"`
	DailyItinerary  []DayPlan               `json:"daily_itinerary"`
	Flights         ResultSet[FlightOption] `json:"flights"`
	Hotels          ResultSet[HotelOption]  `json:"hotels"`
	Attractions     []Attraction            `json:"attractions"`
	Restaurants     []Restaurant            `json:"restaurants"`
	Weather         WeatherReport           `json:"weather"`
	CurrencyNotes   CurrencySummary         `json:"currency_notes"`
	CostBreakdown   map[string]float64      `json:"cost_breakdown"`
	Recommendations []string                `json:"recommendations"`
}

// Session lifecycle states stored alongside each request.
const (
	SessionProcessing = "processing"
	SessionCompleted  = "completed"
	SessionFailed     = "failed"
)

// TripResponse is the HTTP response for a completed planning request.
type TripResponse struct {
	SessionID    string     `json:"session_id"`
	Status       string     `json:"status"`
	Itinerary    *Itinerary `json:"itinerary,omitempty"`
	TotalCost    float64    `json:"total_cost,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    string     `json:"created_at"`
}

// Session is a stored planning session.
type Session struct {
	SessionID    string      `json:"session_id"`
	Status       string      `json:"status"`
	Request      TripRequest `json:"request"`
	Itinerary    *Itinerary  `json:"itinerary,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
