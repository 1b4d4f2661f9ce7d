// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extras generates the supplementary itinerary sections:
// attractions, restaurants, a weather outlook, and a currency summary.
// Like the fallback generator, all randomness flows through an injected
// seed so output is reproducible in tests.
package extras

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pdiddy/trip-engine/pkg/types"
)

const maxAttractions = 6

// attractionsByInterest pools candidate activities per interest keyword.
// Unknown interests draw from the general pool.
var attractionsByInterest = map[string][]types.Attraction{
	"culture": {
		{Name: "Historic Palace", Category: "Historical Site", EntryFee: 500, SuggestedDuration: "3 hours"},
		{Name: "Art Museum", Category: "Museum", EntryFee: 300, SuggestedDuration: "2 hours"},
		{Name: "Traditional Market", Category: "Cultural Experience", EntryFee: 200, SuggestedDuration: "2 hours"},
		{Name: "Heritage Walk", Category: "Guided Tour", EntryFee: 800, SuggestedDuration: "4 hours"},
	},
	"adventure": {
		{Name: "River Rafting", Category: "Water Sports", EntryFee: 2500, SuggestedDuration: "6 hours"},
		{Name: "Trekking Trail", Category: "Nature Adventure", EntryFee: 1200, SuggestedDuration: "8 hours"},
		{Name: "Zip Lining", Category: "Adventure Sports", EntryFee: 1500, SuggestedDuration: "3 hours"},
		{Name: "Rock Climbing", Category: "Adventure Sports", EntryFee: 2000, SuggestedDuration: "5 hours"},
	},
	"nature": {
		{Name: "Botanical Garden", Category: "Nature Park", EntryFee: 150, SuggestedDuration: "3 hours"},
		{Name: "Wildlife Safari", Category: "Nature Experience", EntryFee: 3000, SuggestedDuration: "6 hours"},
		{Name: "Scenic Viewpoint", Category: "Sightseeing", EntryFee: 100, SuggestedDuration: "2 hours"},
		{Name: "Lake Boating", Category: "Water Activity", EntryFee: 400, SuggestedDuration: "2 hours"},
	},
	"food": {
		{Name: "Street Food Tour", Category: "Food Experience", EntryFee: 800, SuggestedDuration: "3 hours"},
		{Name: "Cooking Class", Category: "Cultural Activity", EntryFee: 1500, SuggestedDuration: "4 hours"},
		{Name: "Local Market Visit", Category: "Food Shopping", EntryFee: 300, SuggestedDuration: "2 hours"},
		{Name: "Fine Dining Experience", Category: "Restaurant", EntryFee: 2500, SuggestedDuration: "2 hours"},
	},
	"general": {
		{Name: "City Tour", Category: "Sightseeing", EntryFee: 1000, SuggestedDuration: "6 hours"},
		{Name: "Local Temple", Category: "Religious Site", EntryFee: 50, SuggestedDuration: "1 hour"},
		{Name: "Shopping District", Category: "Shopping", EntryFee: 500, SuggestedDuration: "4 hours"},
		{Name: "Sunset Point", Category: "Scenic Spot", EntryFee: 0, SuggestedDuration: "2 hours"},
	},
}

var restaurantsByCuisine = map[string][]types.Restaurant{
	"local": {
		{Name: "Traditional Spice Kitchen", Cuisine: "Local Traditional", PriceRange: "₹₹"},
		{Name: "Heritage Restaurant", Cuisine: "Regional Specialties", PriceRange: "₹₹₹"},
		{Name: "Street Food Corner", Cuisine: "Local Street Food", PriceRange: "₹"},
		{Name: "Authentic Local Diner", Cuisine: "Home-style Cooking", PriceRange: "₹₹"},
	},
	"international": {
		{Name: "Italian Bistro", Cuisine: "Italian", PriceRange: "₹₹₹"},
		{Name: "Asian Fusion", Cuisine: "Pan-Asian", PriceRange: "₹₹₹"},
		{Name: "Mediterranean Grill", Cuisine: "Mediterranean", PriceRange: "₹₹"},
		{Name: "Continental Cafe", Cuisine: "Continental", PriceRange: "₹₹"},
	},
	"vegetarian": {
		{Name: "Pure Veg Paradise", Cuisine: "Vegetarian", PriceRange: "₹₹"},
		{Name: "Green Garden Restaurant", Cuisine: "Vegan & Vegetarian", PriceRange: "₹₹"},
		{Name: "Satvik Dining", Cuisine: "Traditional Vegetarian", PriceRange: "₹"},
		{Name: "Organic Farm Kitchen", Cuisine: "Organic Vegetarian", PriceRange: "₹₹₹"},
	},
}

// costForTwoByRange maps the price-range glyphs to a typical dinner cost.
var costForTwoByRange = map[string]float64{"₹": 600, "₹₹": 1600, "₹₹₹": 3000}

// exchangeRates is the fixed planning table against INR.
var exchangeRates = map[string]float64{
	"USD": 83.0,
	"EUR": 90.0,
	"GBP": 105.0,
	"JPY": 0.56,
	"SGD": 62.0,
	"AUD": 55.0,
	"THB": 2.35,
}

type climate struct {
	tempLow, tempHigh   int
	humidLow, humidHigh int
	conditions          []string
	packing             []string
}

var climates = map[string]climate{
	"tropical": {25, 35, 60, 85,
		[]string{"Sunny", "Partly Cloudy", "Light Rain", "Thunderstorms"},
		[]string{"Light cotton clothing", "Umbrella", "Sunscreen"}},
	"cold": {5, 20, 40, 70,
		[]string{"Clear", "Cloudy", "Light Rain", "Overcast"},
		[]string{"Warm layers", "Jacket", "Comfortable boots"}},
	"moderate": {18, 30, 45, 75,
		[]string{"Clear", "Partly Cloudy", "Sunny", "Cloudy"},
		[]string{"Light layers", "Comfortable walking shoes", "Sunglasses"}},
}

var tropicalPlaces = []string{"goa", "kerala", "mumbai", "chennai", "bangkok", "phuket", "singapore", "bali"}
var coldPlaces = []string{"kashmir", "himachal", "uttarakhand", "ladakh", "zurich", "sapporo", "reykjavik"}

// Generator produces the extras sections from a seeded random source.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded with the given value.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Attractions suggests up to six activities matching the traveler's
// interests, filtered by the per-activity budget when one is given.
func (g *Generator) Attractions(interests []string, budgetPerActivity float64) []types.Attraction {
	if len(interests) == 0 {
		interests = []string{"general"}
	}

	seen := make(map[string]bool)
	var out []types.Attraction
	for _, interest := range interests {
		pool, ok := attractionsByInterest[strings.ToLower(strings.TrimSpace(interest))]
		if !ok {
			pool = attractionsByInterest["general"]
		}
		for _, a := range pool {
			if seen[a.Name] || (budgetPerActivity > 0 && a.EntryFee > budgetPerActivity) {
				continue
			}
			seen[a.Name] = true
			a.Currency = "INR"
			a.Rating = g.rating()
			out = append(out, a)
			if len(out) == maxAttractions {
				return out
			}
		}
	}
	return out
}

// Restaurants suggests dining options for a cuisine preference, padded
// with picks from the other pools for variety.
func (g *Generator) Restaurants(cuisine string) []types.Restaurant {
	key := strings.ToLower(strings.TrimSpace(cuisine))
	pool, ok := restaurantsByCuisine[key]
	if !ok {
		pool = restaurantsByCuisine["local"]
	}

	out := make([]types.Restaurant, 0, len(pool)+2)
	seen := make(map[string]bool)
	for _, r := range pool {
		seen[r.Name] = true
		out = append(out, g.finishRestaurant(r))
	}

	var others []types.Restaurant
	for _, k := range []string{"local", "international", "vegetarian"} {
		for _, r := range restaurantsByCuisine[k] {
			if !seen[r.Name] {
				others = append(others, r)
			}
		}
	}
	for i := 0; i < 2 && len(others) > 0; i++ {
		pick := g.rng.Intn(len(others))
		out = append(out, g.finishRestaurant(others[pick]))
		others = append(others[:pick], others[pick+1:]...)
	}
	return out
}

func (g *Generator) finishRestaurant(r types.Restaurant) types.Restaurant {
	r.Rating = g.rating()
	r.AvgCostForTwo = costForTwoByRange[r.PriceRange]
	return r
}

// Weather builds the trip-window outlook. The climate tier is keyed off
// the destination name; unknown destinations get the moderate tier.
func (g *Generator) Weather(destination, startDate string, days int) types.WeatherReport {
	c := climateFor(destination)
	if days <= 0 {
		days = 1
	}
	if days > 5 {
		days = 5
	}

	start, err := time.Parse(types.DateFormat, startDate)
	if err != nil {
		start = time.Now()
	}

	forecast := make([]types.DailyForecast, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		forecast = append(forecast, types.DailyForecast{
			Date:          day.Format(types.DateFormat),
			Day:           day.Weekday().String(),
			Condition:     c.conditions[g.rng.Intn(len(c.conditions))],
			HighC:         c.tempHigh - g.rng.Intn(4),
			LowC:          c.tempLow + g.rng.Intn(4),
			RainChancePct: g.rng.Intn(81),
		})
	}

	return types.WeatherReport{
		Location:    destination,
		Condition:   c.conditions[g.rng.Intn(len(c.conditions))],
		TempLowC:    c.tempLow,
		TempHighC:   c.tempHigh,
		HumidityPct: c.humidLow + g.rng.Intn(c.humidHigh-c.humidLow+1),
		Forecast:    forecast,
		Packing:     append([]string(nil), c.packing...),
	}
}

// Currency converts the trip budget into the reference currencies using
// the fixed planning rates.
func Currency(budgetINR float64) types.CurrencySummary {
	converted := make(map[string]float64, len(exchangeRates))
	rates := make(map[string]float64, len(exchangeRates))
	for code, rate := range exchangeRates {
		rates[code] = rate
		converted[code] = round2(budgetINR / rate)
	}
	return types.CurrencySummary{
		Base:      "INR",
		BudgetINR: budgetINR,
		Rates:     rates,
		Converted: converted,
	}
}

func climateFor(destination string) climate {
	d := strings.ToLower(destination)
	for _, place := range tropicalPlaces {
		if strings.Contains(d, place) {
			return climates["tropical"]
		}
	}
	for _, place := range coldPlaces {
		if strings.Contains(d, place) {
			return climates["cold"]
		}
	}
	return climates["moderate"]
}

func (g *Generator) rating() float64 {
	return float64(int((3.8+g.rng.Float64()*1.0)*10+0.5)) / 10
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
