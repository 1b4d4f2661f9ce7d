// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank computes value scores for normalized travel options and
// produces the total order carried by result envelopes. Scores are
// batch-relative: the price factor compares each option against the most
// expensive option in the same batch, so live and sample batches rank
// consistently without any global price reference.
//
// Implements: prd003-ranking (R1-R3); docs/ARCHITECTURE § Ranking.
package rank

import (
	"sort"

	"github.com/samber/lo"

	"github.com/pdiddy/trip-engine/pkg/types"
)

// Weight contracts. Hotel weights sum to 1.10 so a refundable,
// breakfast-included hotel can outrank a marginally cheaper one; flight
// scoring is price-dominant.
const (
	hotelRatingWeight     = 0.5
	hotelPriceWeight      = 0.3
	hotelAmenityWeight    = 0.15
	hotelBreakfastWeight  = 0.10
	hotelRefundableWeight = 0.05

	flightPriceWeight  = 0.6
	flightRatingWeight = 0.4
)

// Hotels scores every option in place and sorts the batch by descending
// value score. Ties resolve by ascending price, then by original insertion
// order.
func Hotels(options []types.HotelOption) {
	maxPrice := lo.MaxBy(options, func(a, b types.HotelOption) bool {
		return a.PricePerNight > b.PricePerNight
	}).PricePerNight

	for i := range options {
		o := &options[i]
		score := hotelRatingWeight * (o.Rating / 5)
		score += hotelPriceWeight * priceFactor(o.PricePerNight, maxPrice)
		score += hotelAmenityWeight * (float64(len(o.Amenities)) / types.MaxAmenities)
		if o.BreakfastIncluded {
			score += hotelBreakfastWeight
		}
		if o.Refundable {
			score += hotelRefundableWeight
		}
		o.ValueScore = score
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].ValueScore != options[j].ValueScore {
			return options[i].ValueScore > options[j].ValueScore
		}
		return options[i].PricePerNight < options[j].PricePerNight
	})
}

// Flights scores and sorts a flight batch. Same ordering contract as
// Hotels.
func Flights(options []types.FlightOption) {
	maxPrice := lo.MaxBy(options, func(a, b types.FlightOption) bool {
		return a.Price > b.Price
	}).Price

	for i := range options {
		o := &options[i]
		score := flightPriceWeight * priceFactor(o.Price, maxPrice)
		score += flightRatingWeight * (o.Rating / 5)
		o.ValueScore = score
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].ValueScore != options[j].ValueScore {
			return options[i].ValueScore > options[j].ValueScore
		}
		return options[i].Price < options[j].Price
	})
}

// priceFactor maps a price onto [0,1] relative to the batch maximum. The
// cheapest option approaches 1. A zero maximum (degenerate free batch)
// yields the full factor for everyone.
func priceFactor(price, maxPrice float64) float64 {
	if maxPrice <= 0 {
		return 1
	}
	f := 1 - price/maxPrice
	if f < 0 {
		return 0
	}
	return f
}
