// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fallback

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pdiddy/trip-engine/internal/provider"
	"github.com/pdiddy/trip-engine/pkg/types"
)

// Default batch size bounds, used when the config leaves them unset.
const (
	defaultMinOptions = 5
	defaultMaxOptions = 15
)

// HotelQuery carries the request context for a synthesized hotel batch.
type HotelQuery struct {
	Destination string

	// Category selects the rate band: budget, hotel, resort, or luxury.
	Category string

	Nights int
	Rooms  int

	// BudgetCeiling is the per-night cap in INR. Zero means uncapped.
	BudgetCeiling float64
}

// FlightQuery carries the request context for a synthesized flight batch.
type FlightQuery struct {
	Origin      string
	Destination string
	Travelers   int

	// BudgetCeiling is the flight-share cap in INR. Zero means uncapped.
	BudgetCeiling float64
}

// Generator synthesizes sample travel options from the embedded catalog.
// All randomness flows through the injected source, so two generators
// built from the same seed produce identical batches for identical
// queries.
type Generator struct {
	rng      *rand.Rand
	min, max int
}

// New returns a Generator seeded with the given value. The config's
// MinOptions/MaxOptions bound the batch size; zero values fall back to
// the defaults of 5 and 15, and an inverted range collapses to MinOptions.
func New(seed int64, cfg types.FallbackConfig) *Generator {
	min := cfg.MinOptions
	if min <= 0 {
		min = defaultMinOptions
	}
	max := cfg.MaxOptions
	if max <= 0 {
		max = defaultMaxOptions
	}
	if max < min {
		max = min
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), min: min, max: max}
}

// batchSize draws a size inside the configured bounds.
func (g *Generator) batchSize() int {
	return g.min + g.rng.Intn(g.max-g.min+1)
}

// ResolveCity maps a country-name destination to one of its catalog
// cities. Destinations that are not a known country pass through
// verbatim, so a city input never gets rewritten.
func (g *Generator) ResolveCity(destination string) string {
	cities, ok := catalog.Countries[strings.ToLower(strings.TrimSpace(destination))]
	if !ok || len(cities) == 0 {
		return destination
	}
	return cities[g.rng.Intn(len(cities))]
}

// Hotels synthesizes a sample hotel batch. Names are unique within the
// batch and every rate honors the query's per-night ceiling.
func (g *Generator) Hotels(q HotelQuery) []types.HotelOption {
	city := g.ResolveCity(q.Destination)
	band := catalog.band(q.Category)

	nights := q.Nights
	if nights <= 0 {
		nights = 1
	}
	rooms := q.Rooms
	if rooms <= 0 {
		rooms = 1
	}

	n := g.batchSize()
	used := make(map[string]int, n)
	options := make([]types.HotelOption, 0, n)
	for i := 0; i < n; i++ {
		name := g.uniqueName(catalog.HotelNames[g.rng.Intn(len(catalog.HotelNames))], used)

		perNight := float64(band.Min + g.rng.Intn(band.Max-band.Min+1))
		perNight = g.capPrice(perNight, q.BudgetCeiling)

		stars := band.StarsMin + g.rng.Intn(band.StarsMax-band.StarsMin+1)
		policy := catalog.CancellationPolicies[g.rng.Intn(len(catalog.CancellationPolicies))]

		options = append(options, types.HotelOption{
			ID:                 fmt.Sprintf("sample-hotel-%02d", i+1),
			Name:               name,
			Location:           fmt.Sprintf("%s - %s", city, catalog.Districts[g.rng.Intn(len(catalog.Districts))]),
			PricePerNight:      perNight,
			TotalPrice:         perNight * float64(nights) * float64(rooms),
			Currency:           "INR",
			Rating:             g.rating(),
			StarLevel:          stars,
			Amenities:          append([]string(nil), catalog.AmenitySets[g.rng.Intn(len(catalog.AmenitySets))]...),
			BreakfastIncluded:  g.rng.Intn(2) == 0,
			Refundable:         !strings.EqualFold(policy, "Non-refundable"),
			CancellationPolicy: policy,
			DistanceToCenterKm: roundTenth(0.5 + g.rng.Float64()*4.5),
			Source:             types.SourceSample,
		})
	}
	return options
}

// Flights synthesizes a sample flight batch between the query's
// endpoints. All itineraries are single-carrier economy, matching the
// budget bias of the catalog band.
func (g *Generator) Flights(q FlightQuery) []types.FlightOption {
	origin := provider.AirportCode(q.Origin)
	dest := provider.AirportCode(g.ResolveCity(q.Destination))
	band := catalog.FlightPriceBand

	n := g.batchSize()
	options := make([]types.FlightOption, 0, n)
	for i := 0; i < n; i++ {
		airline := catalog.Airlines[g.rng.Intn(len(catalog.Airlines))]

		price := float64(band.Min + g.rng.Intn(band.Max-band.Min+1))
		price = g.capPrice(price, q.BudgetCeiling)

		depHour := 6 + g.rng.Intn(17)
		depMin := 30 * g.rng.Intn(2)
		durHours := 2 + g.rng.Intn(8)
		durMin := 30 * g.rng.Intn(2)
		arrHour := (depHour + durHours + (depMin+durMin)/60) % 24
		arrMin := (depMin + durMin) % 60
		duration := fmt.Sprintf("PT%dH%dM", durHours, durMin)

		options = append(options, types.FlightOption{
			ID:       fmt.Sprintf("sample-flight-%02d", i+1),
			Price:    price,
			Currency: "INR",
			Rating:   g.rating(),
			Source:   types.SourceSample,
			Airlines: []string{airline.Name},
			Segments: []types.Segment{{
				Airline:          airline.Name,
				FlightNumber:     fmt.Sprintf("%s%d", airline.Code, 100+g.rng.Intn(900)),
				DepartureAirport: origin,
				DepartureTime:    fmt.Sprintf("%02d:%02d", depHour, depMin),
				ArrivalAirport:   dest,
				ArrivalTime:      fmt.Sprintf("%02d:%02d", arrHour, arrMin),
				Duration:         duration,
				Cabin:            "ECONOMY",
				Stops:            0,
			}},
			TotalStops:    0,
			TotalDuration: duration,
		})
	}
	return options
}

// capPrice pulls an over-ceiling draw back under the ceiling, landing in
// the 90-100% band so capped options still look market-priced.
func (g *Generator) capPrice(price, ceiling float64) float64 {
	if ceiling <= 0 || price <= ceiling {
		return price
	}
	return float64(int(ceiling * (0.90 + 0.10*g.rng.Float64())))
}

// uniqueName de-duplicates a catalog name within one batch by appending
// a letter suffix on collision: "Heritage Hotel", then "Heritage Hotel
// B", "Heritage Hotel C".
func (g *Generator) uniqueName(base string, used map[string]int) string {
	used[base]++
	if used[base] == 1 {
		return base
	}
	return fmt.Sprintf("%s %c", base, 'A'+rune(used[base]-1))
}

func (g *Generator) rating() float64 {
	return roundTenth(3.5 + g.rng.Float64()*1.3)
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
