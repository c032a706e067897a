// Package jexpand completes partial JSON text — byte prefixes of a valid
// JSON document, as they arrive from a streaming producer — into a
// fully-formed value conforming to a JSON Schema. It never validates: the
// schema supplies structure, defaults, required sets, and pattern rules,
// never a reason to reject a value.
package jexpand
