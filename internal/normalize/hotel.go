// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/trip-engine/pkg/types"
)

// hotelPricePaths are the candidate locations for a per-night rate, in
// priority order. Scraped sources nest the rate under rate_per_night with
// extracted_lowest/lowest sub-keys; the extractor table absorbs that.
var hotelPricePaths = []string{
	"price_per_night",
	"pricePerNight",
	"rate_per_night",
	"price",
	"rate",
	"total_rate",
}

// defaultAmenitiesStandard and defaultAmenitiesPremium are substituted when
// a record carries no amenity list. The premium set applies from four
// stars up.
var (
	defaultAmenitiesStandard = []string{"WiFi", "Breakfast", "Parking", "Room Service"}
	defaultAmenitiesPremium  = []string{"WiFi", "Pool", "Gym", "Spa", "Restaurant", "Concierge"}
)

// HotelContext carries the per-request domain context for hotel
// normalization.
type HotelContext struct {
	// BudgetCeiling is the per-night budget in INR. Zero disables the
	// budget filter.
	BudgetCeiling float64

	// Nights and Rooms scale the per-night rate into a total price.
	// Zero values are treated as 1.
	Nights int
	Rooms  int
}

// Hotel maps one raw provider record to a HotelOption. It returns
// (nil, nil) when the rate exceeds the per-night ceiling and a
// MalformedRecordError when no price candidate resolves.
func Hotel(rec map[string]any, ctx HotelContext) (*types.HotelOption, error) {
	perNight, ok := NumberAt(rec, hotelPricePaths...)
	if !ok {
		return nil, malformed("price_per_night", "no usable candidate among %v", hotelPricePaths)
	}
	if perNight < 0 {
		return nil, malformed("price_per_night", "negative value %g", perNight)
	}

	currency, _ := StringAt(rec, "currency")
	perNight = toINR(perNight, currency)

	if ctx.BudgetCeiling > 0 && perNight > ctx.BudgetCeiling {
		return nil, nil
	}

	name, ok := StringAt(rec, "name", "hotel_name", "title")
	if !ok {
		return nil, malformed("name", "missing")
	}

	rating := Rating(rec["rating"], 4.0, 5)
	star := starLevel(rec)

	nights := ctx.Nights
	if nights <= 0 {
		nights = 1
	}
	rooms := ctx.Rooms
	if rooms <= 0 {
		rooms = 1
	}

	location, _ := StringAt(rec, "location", "address", "area")
	policy, hasPolicy := StringAt(rec, "cancellation_policy", "cancellation")
	if !hasPolicy {
		policy = "Free cancellation"
	}

	refundable, ok := BoolAt(rec, "refundable")
	if !ok {
		refundable = !strings.Contains(strings.ToLower(policy), "non-refundable")
	}

	breakfast, _ := BoolAt(rec, "breakfast_included", "breakfast")

	distance, ok := NumberAt(rec, "distance_to_center_km", "distance_km", "distance_to_center", "distance")
	if !ok || distance < 0 {
		distance = 2.5
	}

	id, ok := StringAt(rec, "id", "hotel_id")
	if !ok {
		id = fmt.Sprintf("hotel-%s", slug(name))
	}

	return &types.HotelOption{
		ID:                 id,
		Name:               name,
		Location:           location,
		PricePerNight:      round2(perNight),
		TotalPrice:         round2(perNight * float64(nights) * float64(rooms)),
		Currency:           "INR",
		Rating:             rating,
		StarLevel:          star,
		Amenities:          amenities(rec, star),
		BreakfastIncluded:  breakfast,
		Refundable:         refundable,
		CancellationPolicy: policy,
		DistanceToCenterKm: distance,
		Source:             types.SourceLive,
	}, nil
}

// Hotels normalizes a whole raw batch, skipping malformed and over-budget
// records.
func Hotels(recs []map[string]any, ctx HotelContext, logger *slog.Logger) []types.HotelOption {
	options := make([]types.HotelOption, 0, len(recs))
	for i, rec := range recs {
		opt, err := Hotel(rec, ctx)
		if err != nil {
			logger.Warn("dropping malformed hotel record", "index", i, "err", err)
			continue
		}
		if opt == nil {
			logger.Debug("dropping hotel over per-night ceiling", "index", i)
			continue
		}
		options = append(options, *opt)
	}
	return options
}

// starLevel resolves the hotel class from numeric, string, or nested
// forms, defaulting to the neutral 3. Class never fails a record.
func starLevel(rec map[string]any) int {
	n, ok := NumberAt(rec, "star_level", "stars", "class", "hotel_class")
	if !ok {
		return 3
	}
	star := int(n)
	if star < 1 {
		return 1
	}
	if star > 5 {
		return 5
	}
	return star
}

// amenities extracts the amenity list, capping at MaxAmenities. An absent
// list is substituted with a tier default conditioned on the resolved
// star level.
func amenities(rec map[string]any, star int) []string {
	raw, ok := ListAt(rec, "amenities", "facilities")
	if !ok || len(raw) == 0 {
		if star >= 4 {
			return append([]string(nil), defaultAmenitiesPremium...)
		}
		return append([]string(nil), defaultAmenitiesStandard...)
	}
	out := make([]string, 0, types.MaxAmenities)
	for _, item := range raw {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(s))
		if len(out) == types.MaxAmenities {
			break
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultAmenitiesStandard...)
	}
	return out
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-")
}
