// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Attraction is a suggested sight or activity at the destination.
type Attraction struct {
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	EntryFee          float64 `json:"entry_fee"`
	Currency          string  `json:"currency"`
	Rating            float64 `json:"rating"`
	SuggestedDuration string  `json:"suggested_duration"`
}

// Restaurant is a suggested dining option at the destination.
type Restaurant struct {
	Name           string  `json:"name"`
	Cuisine        string  `json:"cuisine"`
	PriceRange     string  `json:"price_range"`
	Rating         float64 `json:"rating"`
	AvgCostForTwo  float64 `json:"avg_cost_for_two"`
	Specialty      string  `json:"specialty,omitempty"`
}

// DailyForecast is one day of the destination forecast.
type DailyForecast struct {
	Date          string `json:"date"`
	Day           string `json:"day"`
	Condition     string `json:"condition"`
	HighC         int    `json:"high_c"`
	LowC          int    `json:"low_c"`
	RainChancePct int    `json:"rain_chance_pct"`
}

// WeatherReport summarizes expected conditions for the trip window.
type WeatherReport struct {
	Location    string          `json:"location"`
	Condition   string          `json:"condition"`
	TempLowC    int             `json:"temp_low_c"`
	TempHighC   int             `json:"temp_high_c"`
	HumidityPct int             `json:"humidity_pct"`
	Forecast    []DailyForecast `json:"forecast"`
	Packing     []string        `json:"packing"`
}

// CurrencySummary converts the trip budget into common currencies for
// reference. Rates are the fixed planning table, not a live feed.
type CurrencySummary struct {
	Base      string             `json:"base"`
	BudgetINR float64            `json:"budget_inr"`
	Rates     map[string]float64 `json:"rates"`
	Converted map[string]float64 `json:"converted"`
}
