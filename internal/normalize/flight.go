// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/pdiddy/trip-engine/pkg/types"
)

// FlightBudgetShare caps a single flight at this fraction of the total
// trip budget. Flights are assumed to consume a minority share; hotels
// are filtered against their own per-night ceiling instead.
const FlightBudgetShare = 0.4

// inrRates converts foreign offer prices into INR. Fixed planning rates,
// not a live feed.
var inrRates = map[string]float64{
	"INR": 1,
	"USD": 83,
	"EUR": 90,
	"GBP": 105,
}

// flightPricePaths are the candidate locations for an offer price, in
// priority order. Amadeus puts it under price.total; other upstreams use
// flat keys.
var flightPricePaths = []string{
	"price.total",
	"price.grandTotal",
	"price",
	"price_inr",
	"total_price",
}

// FlightContext carries the per-request domain context for flight
// normalization.
type FlightContext struct {
	// BudgetCeiling is the total trip budget in INR. Zero disables the
	// budget filter.
	BudgetCeiling float64
}

// Flight maps one raw provider record to a FlightOption. It returns
// (nil, nil) when the offer is valid but priced above the budget share,
// and a MalformedRecordError when no price candidate resolves.
func Flight(rec map[string]any, ctx FlightContext) (*types.FlightOption, error) {
	price, ok := NumberAt(rec, flightPricePaths...)
	if !ok {
		return nil, malformed("price", "no usable candidate among %v", flightPricePaths)
	}
	if price < 0 {
		return nil, malformed("price", "negative value %g", price)
	}

	currency, _ := StringAt(rec, "price.currency", "currency")
	priceINR := toINR(price, currency)

	if ctx.BudgetCeiling > 0 && priceINR > ctx.BudgetCeiling*FlightBudgetShare {
		return nil, nil
	}

	rating := Rating(rec["rating"], 4.0, 5)

	segments := flightSegments(rec)
	airlines := lo.Uniq(lo.Map(segments, func(s types.Segment, _ int) string {
		return s.Airline
	}))

	duration, ok := StringAt(rec, "itineraries.0.duration", "total_duration", "duration")
	if !ok {
		duration = sumSegmentDurations(segments)
	}

	id, ok := StringAt(rec, "id", "offer_id")
	if !ok {
		id = fmt.Sprintf("offer-%s-%d", firstOr(airlines, "XX"), int(priceINR))
	}

	return &types.FlightOption{
		ID:            id,
		Price:         round2(priceINR),
		Currency:      "INR",
		Rating:        rating,
		Source:        types.SourceLive,
		Airlines:      airlines,
		Segments:      segments,
		TotalStops:    len(segments) - 1,
		TotalDuration: duration,
	}, nil
}

// Flights normalizes a whole raw batch, skipping malformed and
// over-budget records. It never fails for one bad record.
func Flights(recs []map[string]any, ctx FlightContext, logger *slog.Logger) []types.FlightOption {
	options := make([]types.FlightOption, 0, len(recs))
	for i, rec := range recs {
		opt, err := Flight(rec, ctx)
		if err != nil {
			logger.Warn("dropping malformed flight record", "index", i, "err", err)
			continue
		}
		if opt == nil {
			logger.Debug("dropping flight over budget share", "index", i)
			continue
		}
		options = append(options, *opt)
	}
	return options
}

// flightSegments walks the nested itinerary list. When the
// upstream record carries no segment list at all, a single direct economy
// leg is substituted so the option shape stays complete.
func flightSegments(rec map[string]any) []types.Segment {
	raw, ok := ListAt(rec, "itineraries.0.segments", "segments")
	if !ok || len(raw) == 0 {
		return []types.Segment{defaultSegment(rec)}
	}

	segments := make([]types.Segment, 0, len(raw))
	for _, item := range raw {
		seg, ok := item.(map[string]any)
		if !ok {
			continue
		}
		carrier, _ := StringAt(seg, "carrierCode", "airline")
		number, _ := StringAt(seg, "number", "flight_number")
		if carrier == "" {
			carrier = "XX"
		}
		flightNumber := number
		if _, hasCarrier := StringAt(seg, "carrierCode"); hasCarrier && number != "" {
			flightNumber = carrier + number
		}
		dep, _ := StringAt(seg, "departure.iataCode", "departure_airport")
		depAt, _ := StringAt(seg, "departure.at", "departure_time")
		arr, _ := StringAt(seg, "arrival.iataCode", "arrival_airport")
		arrAt, _ := StringAt(seg, "arrival.at", "arrival_time")
		dur, _ := StringAt(seg, "duration")
		cabin, ok := StringAt(seg, "cabin")
		if !ok {
			cabin = "ECONOMY"
		}
		stops := 0
		if n, ok := NumberAt(seg, "numberOfStops", "stops"); ok {
			stops = int(n)
		}
		segments = append(segments, types.Segment{
			Airline:          carrier,
			FlightNumber:     flightNumber,
			DepartureAirport: dep,
			DepartureTime:    depAt,
			ArrivalAirport:   arr,
			ArrivalTime:      arrAt,
			Duration:         dur,
			Cabin:            cabin,
			Stops:            stops,
		})
	}
	if len(segments) == 0 {
		return []types.Segment{defaultSegment(rec)}
	}
	return segments
}

// defaultSegment builds the substitute leg for records without a segment
// list. Carrier and route come from flat keys when present.
func defaultSegment(rec map[string]any) types.Segment {
	carrier, ok := StringAt(rec, "airline", "carrier", "airlines.0")
	if !ok {
		carrier = "XX"
	}
	number, _ := StringAt(rec, "flight_number")
	dep, _ := StringAt(rec, "origin", "departure_airport")
	arr, _ := StringAt(rec, "destination", "arrival_airport")
	depAt, _ := StringAt(rec, "departure_time")
	arrAt, _ := StringAt(rec, "arrival_time")
	return types.Segment{
		Airline:          carrier,
		FlightNumber:     number,
		DepartureAirport: dep,
		DepartureTime:    depAt,
		ArrivalAirport:   arr,
		ArrivalTime:      arrAt,
		Duration:         "PT2H30M",
		Cabin:            "ECONOMY",
		Stops:            0,
	}
}

// sumSegmentDurations is a coarse total when the record has per-segment
// durations but no itinerary total. Segment durations are opaque strings,
// so the first one stands in rather than being parsed and added.
func sumSegmentDurations(segments []types.Segment) string {
	for _, s := range segments {
		if s.Duration != "" {
			return s.Duration
		}
	}
	return "PT2H30M"
}

func toINR(price float64, currency string) float64 {
	if rate, ok := inrRates[currency]; ok {
		return price * rate
	}
	return price
}

func round2(n float64) float64 {
	return float64(int64(n*100+0.5)) / 100
}

func firstOr(list []string, def string) string {
	if len(list) > 0 {
		return list[0]
	}
	return def
}
