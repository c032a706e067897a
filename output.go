package jexpand

import "github.com/goccy/go-json"

// ToJSON re-serializes a value returned by Expand back into bytes, using
// the same encoder the schema loaders use to parse schema documents
// (github.com/goccy/go-json) rather than the standard library's encoder.
// Expand itself never needs this — it returns a Go value — but callers
// that forward a refined snapshot to a downstream consumer as bytes are
// common enough that it belongs alongside Expand.
func ToJSON(value any) ([]byte, error) {
	return json.Marshal(value)
}
