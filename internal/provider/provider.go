// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider fetches raw flight and hotel records from upstream
// services. Providers return loosely typed records; shaping them into
// option structs is the normalizer's job, so a provider never fails a
// whole search over one odd record.
//
// Implements: prd005-providers (R1-R4); docs/ARCHITECTURE § Providers.
package provider

import (
	"errors"
	"strings"
)

// RawRecord is one untyped upstream result. Keys and nesting vary per
// source.
type RawRecord = map[string]any

// ErrUnavailable reports that an upstream could not serve the search at
// all (disabled, unreachable, or rejected credentials). Callers treat it
// as "no live data", not as a fatal error.
var ErrUnavailable = errors.New("provider unavailable")

// airportCodes maps lowercase city and country names to IATA codes.
// Unknown locations fall through to the first three letters uppercased,
// which is what most airline search forms do with free text.
var airportCodes = map[string]string{
	"delhi": "DEL", "new delhi": "DEL",
	"mumbai": "BOM", "bombay": "BOM",
	"bangalore": "BLR", "bengaluru": "BLR",
	"chennai": "MAA", "madras": "MAA",
	"hyderabad": "HYD",
	"kolkata":   "CCU", "calcutta": "CCU",
	"pune":      "PNQ",
	"ahmedabad": "AMD",
	"kochi":     "COK", "cochin": "COK",
	"goa":       "GOI",

	"tokyo": "NRT", "japan": "NRT",
	"london": "LHR", "uk": "LHR",
	"paris": "CDG", "france": "CDG",
	"new york": "JFK", "nyc": "JFK",
	"dubai": "DXB", "uae": "DXB",
	"singapore": "SIN",
	"bangkok":   "BKK", "thailand": "BKK",
	"sydney": "SYD", "australia": "SYD",
	"los angeles": "LAX", "la": "LAX",
	"amsterdam": "AMS", "netherlands": "AMS",
	"frankfurt": "FRA", "germany": "FRA",
	"zurich": "ZUR", "switzerland": "ZUR",
}

// AirportCode converts a city or country name to an IATA airport code.
func AirportCode(location string) string {
	key := strings.ToLower(strings.TrimSpace(location))
	if code, ok := airportCodes[key]; ok {
		return code
	}
	upper := strings.ToUpper(strings.TrimSpace(location))
	if len(upper) > 3 {
		upper = upper[:3]
	}
	return upper
}
