package jexpand

import (
	"bytes"

	"github.com/relvacode/jexpand/internal/complete"
	"github.com/relvacode/jexpand/internal/parser"
	"github.com/relvacode/jexpand/internal/schema"
	js "github.com/relvacode/jexpand/jsonschema"
)

// Expand implements the primary operation of spec §6: given a schema and a
// (possibly empty, possibly incomplete) JSON prefix, it returns a
// schema-conformant value with defaults filled in, or nil.
//
// nil is overloaded by design: for a non-empty prefix it signals an
// unrecoverable parse, while for an empty prefix it is simply what the
// schema's own default resolves to. Callers cannot distinguish these from
// the return value alone; the distinction is only in whether prefix was
// empty.
func Expand(rawSchema *js.Schema, prefix []byte) any {
	eff := schema.Resolve(rawSchema)

	node, ok := parser.Parse(prefix, eff)
	if !ok {
		if len(bytes.TrimSpace(prefix)) == 0 {
			return complete.Complete(nil, rawSchema)
		}
		return nil
	}
	return complete.Complete(node, rawSchema)
}
