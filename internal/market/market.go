// Package market defines the supported search markets and their
// provider-facing parameters.
package market

import "strings"

// Code identifies a search market.
type Code string

// Supported markets.
const (
	SE Code = "SE"
	NO Code = "NO"
	DK Code = "DK"
	US Code = "US"
)

// Default is used whenever a request carries an unknown or empty market.
const Default = SE

// Params are the provider query parameters for a market.
type Params struct {
	GL           string
	HL           string
	GoogleDomain string
	Location     string
}

var paramsByCode = map[Code]Params{
	SE: {GL: "se", HL: "sv", GoogleDomain: "google.se", Location: "Stockholm,Stockholm,Sweden"},
	NO: {GL: "no", HL: "no", GoogleDomain: "google.no", Location: "Oslo,Oslo,Norway"},
	DK: {GL: "dk", HL: "da", GoogleDomain: "google.dk", Location: "Copenhagen,Capital Region of Denmark,Denmark"},
	US: {GL: "us", HL: "en", GoogleDomain: "google.com", Location: "United States"},
}

// Localized commercial-intent modifiers appended to keywords when probing
// for ad inventory.
var intentSuffixesByCode = map[Code][]string{
	SE: {"pris", "erbjudande", "boka demo", "gratis test"},
	NO: {"pris", "tilbud", "book demo", "gratis prøve"},
	DK: {"pris", "tilbud", "book demo", "gratis prøve"},
	US: {"price", "pricing", "demo", "free trial"},
}

// Parse normalizes a raw market string. Unknown values fall back to Default.
func Parse(raw string) Code {
	c := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := paramsByCode[c]; !ok {
		return Default
	}
	return c
}

// Config returns the provider parameters for a market, falling back to the
// default market when the code is unknown.
func Config(c Code) Params {
	if p, ok := paramsByCode[c]; ok {
		return p
	}
	return paramsByCode[Default]
}

// IntentSuffixes returns the commercial-intent modifiers for a market.
// Unknown markets use the US list.
func IntentSuffixes(c Code) []string {
	if s, ok := intentSuffixesByCode[c]; ok {
		return s
	}
	return intentSuffixesByCode[US]
}
