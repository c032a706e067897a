package complete

import (
	"github.com/relvacode/jexpand/internal/schema"
)

// DefaultFor implements spec §4.3 "Default resolution": an explicit schema
// default wins outright; otherwise, when the caller permits type defaults,
// the first listed type's canonical zero value is used; otherwise nil.
func DefaultFor(eff *schema.Effective, useTypeDefaults bool) any {
	if eff == nil {
		return nil
	}
	if eff.HasDefault {
		return eff.DefaultValue
	}
	if !useTypeDefaults || len(eff.Types) == 0 {
		return nil
	}
	return typeZero(eff.Types.First())
}

// typeZero returns the canonical zero value for one JSON-Schema type name.
func typeZero(t string) any {
	switch t {
	case "object":
		return map[string]any{}
	case "array":
		return []any{}
	case "string":
		return ""
	case "number", "integer":
		return float64(0)
	case "boolean":
		return false
	case "null":
		return nil
	default:
		return nil
	}
}
