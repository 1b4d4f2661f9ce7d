// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the trip-engine pipeline.
// Implements: prd001-normalization (ResultSet, FlightOption, HotelOption);
//
//	prd004-assembly (Status, provenance);
//	docs/ARCHITECTURE § Data Structures.
package types

// Status records the provenance of a result envelope. It must truthfully
// reflect whether any option came from a real upstream call: a live batch
// and a synthesized batch are never mixed under one status.
type Status string

const (
	// StatusLive marks options normalized from a real provider response.
	StatusLive Status = "live"

	// StatusSample marks synthesized options used because the provider
	// returned no usable records.
	StatusSample Status = "sample"

	// StatusFallback marks synthesized options used because the provider
	// call itself failed or timed out.
	StatusFallback Status = "fallback"

	// StatusError marks an envelope produced after an internal invariant
	// violation. Options may be empty.
	StatusError Status = "error"
)

// Option provenance tags carried on individual result items.
const (
	SourceLive   = "live"
	SourceSample = "sample"
)

// ResultSet is the stable envelope returned for one domain regardless of
// upstream success or failure. Options are ordered by descending value
// score; insertion order is rank order. Options is never nil.
type ResultSet[O any] struct {
	Options    []O    `json:"options"`
	Status     Status `json:"status"`
	Disclaimer string `json:"disclaimer"`
}

// Segment is one leg of a flight option.
type Segment struct {
	Airline          string `json:"airline"`
	FlightNumber     string `json:"flight_number"`
	DepartureAirport string `json:"departure_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalAirport   string `json:"arrival_airport"`
	ArrivalTime      string `json:"arrival_time"`
	Duration         string `json:"duration"`
	Cabin            string `json:"cabin"`
	Stops            int    `json:"stops"`
}

// FlightOption is a normalized flight result. Every numeric field holds a
// concrete number before the option enters an envelope; price is always in
// INR after normalization.
type FlightOption struct {
	ID            string    `json:"id"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	Rating        float64   `json:"rating"`
	ValueScore    float64   `json:"value_score"`
	Source        string    `json:"source"`
	Airlines      []string  `json:"airlines"`
	Segments      []Segment `json:"segments"`
	TotalStops    int       `json:"total_stops"`
	TotalDuration string    `json:"total_duration"`
}

// HotelOption is a normalized accommodation result.
type HotelOption struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Location           string   `json:"location"`
	PricePerNight      float64  `json:"price_per_night"`
	TotalPrice         float64  `json:"total_price"`
	Currency           string   `json:"currency"`
	Rating             float64  `json:"rating"`
	StarLevel          int      `json:"star_level"`
	Amenities          []string `json:"amenities"`
	BreakfastIncluded  bool     `json:"breakfast_included"`
	Refundable         bool     `json:"refundable"`
	CancellationPolicy string   `json:"cancellation_policy"`
	DistanceToCenterKm float64  `json:"distance_to_center_km"`
	ValueScore         float64  `json:"value_score"`
	Source             string   `json:"source"`
}

// MaxAmenities caps the amenity list on a hotel option. The value-score
// amenity factor divides by this cap.
const MaxAmenities = 8
