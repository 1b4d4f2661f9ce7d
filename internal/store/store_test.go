// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pdiddy/trip-engine/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRequest() types.TripRequest {
	return types.TripRequest{
		Destination:  "Japan",
		Budget:       150000,
		DurationDays: 5,
		Travelers:    2,
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := openTestStore(t)

	id, err := s.CreateSession(sampleRequest())
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if id == "" {
		t.Fatal("empty session id")
	}

	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if sess.Status != types.SessionProcessing {
		t.Errorf("Status = %q, want processing", sess.Status)
	}
	if sess.Request.Destination != "Japan" {
		t.Errorf("stored request destination = %q", sess.Request.Destination)
	}
	if sess.Itinerary != nil {
		t.Error("new session should have no itinerary")
	}
	if sess.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestUpdateItinerary(t *testing.T) {
	s := openTestStore(t)
	id, err := s.CreateSession(sampleRequest())
	if err != nil {
		t.Fatal(err)
	}

	it := &types.Itinerary{
		Destination: "Japan",
		TotalDays:   5,
		TotalCost:   120000,
		Currency:    "INR",
		Flights: types.ResultSet[types.FlightOption]{
			Options: []types.FlightOption{{ID: "sample-flight-01", Price: 22000}},
			Status:  types.StatusSample,
		},
	}
	if err := s.UpdateItinerary(id, it); err != nil {
		t.Fatalf("UpdateItinerary() error: %v", err)
	}

	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Status != types.SessionCompleted {
		t.Errorf("Status = %q, want completed", sess.Status)
	}
	if sess.Itinerary == nil || sess.Itinerary.TotalCost != 120000 {
		t.Errorf("itinerary round-trip failed: %+v", sess.Itinerary)
	}
	if sess.Itinerary.Flights.Status != types.StatusSample {
		t.Errorf("flight envelope status lost: %q", sess.Itinerary.Flights.Status)
	}
}

func TestItineraryRoundTripsUnchanged(t *testing.T) {
	s := openTestStore(t)
	id, err := s.CreateSession(sampleRequest())
	if err != nil {
		t.Fatal(err)
	}

	it := &types.Itinerary{
		Destination: "Japan",
		TotalDays:   2,
		TotalCost:   119999.37,
		Currency:    "INR",
		DailyItinerary: []types.DayPlan{{
			Day:           1,
			Date:          "2026-09-10",
			Activities:    []map[string]any{{"time": "10:00", "name": "Senso-ji Temple", "cost": 290.0}},
			Meals:         []map[string]any{{"type": "dinner", "venue": "Sakura House", "cost": 2400.0}},
			EstimatedCost: 24000.5,
		}},
		Flights: types.ResultSet[types.FlightOption]{
			Options: []types.FlightOption{{
				ID:         "sample-flight-01",
				Price:      21846.33,
				Currency:   "INR",
				Rating:     4.2,
				ValueScore: 0.7183,
				Source:     types.SourceSample,
				Airlines:   []string{"Air India"},
				Segments: []types.Segment{{
					Airline:          "Air India",
					FlightNumber:     "AI306",
					DepartureAirport: "DEL",
					DepartureTime:    "08:30",
					ArrivalAirport:   "NRT",
					ArrivalTime:      "16:00",
					Duration:         "PT7H30M",
					Cabin:            "ECONOMY",
				}},
				TotalDuration: "PT7H30M",
			}},
			Status:     types.StatusSample,
			Disclaimer: "Showing sample options.",
		},
		Hotels: types.ResultSet[types.HotelOption]{
			Options: []types.HotelOption{{
				ID:                 "sample-hotel-01",
				Name:               "Grand Palace Hotel",
				Location:           "Tokyo - Shinjuku",
				PricePerNight:      5421.75,
				TotalPrice:         10843.5,
				Currency:           "INR",
				Rating:             4.4,
				StarLevel:          4,
				Amenities:          []string{"WiFi", "Breakfast", "Pool"},
				BreakfastIncluded:  true,
				Refundable:         true,
				CancellationPolicy: "Free cancellation",
				DistanceToCenterKm: 1.3,
				ValueScore:         0.8125,
				Source:             types.SourceSample,
			}},
			Status:     types.StatusSample,
			Disclaimer: "Showing sample options.",
		},
		CostBreakdown:   map[string]float64{"flights": 45000, "accommodation": 60000.37},
		Recommendations: []string{"Carry cash for smaller restaurants."},
	}
	if err := s.UpdateItinerary(id, it); err != nil {
		t.Fatalf("UpdateItinerary() error: %v", err)
	}

	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sess.Itinerary, it) {
		t.Errorf("stored itinerary differs from original:\ngot  %+v\nwant %+v", sess.Itinerary, it)
	}
}

func TestUpdateError(t *testing.T) {
	s := openTestStore(t)
	id, err := s.CreateSession(sampleRequest())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateError(id, "planning timed out"); err != nil {
		t.Fatalf("UpdateError() error: %v", err)
	}
	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Status != types.SessionFailed || sess.ErrorMessage != "planning timed out" {
		t.Errorf("session = %q / %q", sess.Status, sess.ErrorMessage)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetSession("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateUnknownSession(t *testing.T) {
	s := openTestStore(t)
	err := s.UpdateError("nope", "x")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRecent(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 3; i++ {
		if _, err := s.CreateSession(sampleRequest()); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len = %d, want 2", len(sessions))
	}
}
