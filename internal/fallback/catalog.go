// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fallback synthesizes plausible travel options when no live
// provider yields usable results. Generated batches share the schema of
// normalized live options but are tagged as sample data and never mixed
// with live records.
//
// Implements: prd002-fallback (R1-R5); docs/ARCHITECTURE § Fallback.
package fallback

import (
	_ "embed"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// catalog is the static content pool the generator draws from. It is
// parsed once at init; a malformed embedded catalog is a build defect,
// not a runtime condition.
var catalog = mustLoadCatalog()

type priceBand struct {
	Min      int `yaml:"min"`
	Max      int `yaml:"max"`
	StarsMin int `yaml:"stars_min"`
	StarsMax int `yaml:"stars_max"`
}

type airlineEntry struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

type catalogData struct {
	Countries            map[string][]string  `yaml:"countries"`
	Airlines             []airlineEntry       `yaml:"airlines"`
	HotelNames           []string             `yaml:"hotel_names"`
	Districts            []string             `yaml:"districts"`
	AmenitySets          [][]string           `yaml:"amenity_sets"`
	CancellationPolicies []string             `yaml:"cancellation_policies"`
	PriceBands           map[string]priceBand `yaml:"price_bands"`
	FlightPriceBand      priceBand            `yaml:"flight_price_band"`
}

func mustLoadCatalog() catalogData {
	var c catalogData
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic(fmt.Sprintf("fallback: embedded catalog: %v", err))
	}
	if len(c.HotelNames) == 0 || len(c.Airlines) == 0 {
		panic("fallback: embedded catalog is incomplete")
	}
	return c
}

// band returns the rate band for an accommodation category, defaulting
// to the mid-tier hotel band for unknown categories.
func (c catalogData) band(category string) priceBand {
	if b, ok := c.PriceBands[strings.ToLower(strings.TrimSpace(category))]; ok {
		return b
	}
	return c.PriceBands["hotel"]
}
