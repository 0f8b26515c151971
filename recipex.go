// Package recipex extracts structured recipe records from saved HTML pages
// of many recipe websites and validates the results against reference
// fixtures or the page text itself.
//
// This package contains domain types, interfaces and the pure text
// algorithms (normalizer, duration presets, ingredient engine) following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// yaml/, gemini/).
package recipex
