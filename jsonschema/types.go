package jsonschema

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Types holds a JSON Schema "type" value, which may be a single string
// ("object") or a list of strings (["string","null"]). The first entry
// governs type defaults (spec §6).
type Types []string

func (t *Types) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*t = Types{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*t = Types(list)
	return nil
}

func (t Types) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

func (t *Types) UnmarshalYAML(value *yaml.Node) error {
	var single string
	if err := value.Decode(&single); err == nil {
		*t = Types{single}
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*t = Types(list)
	return nil
}

// First returns the governing type, or "" if none is declared.
func (t Types) First() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Has reports whether the type list permits the given type name. An empty
// list permits anything (an untyped schema).
func (t Types) Has(name string) bool {
	if len(t) == 0 {
		return true
	}
	for _, v := range t {
		if v == name {
			return true
		}
	}
	return false
}

// AdditionalProps represents "additionalProperties", which in JSON Schema
// is either a boolean or a sub-schema. The core only needs the boolean
// "allowed" decision (spec §4.3's additional-properties policy); a
// sub-schema value is treated as "allowed" since the core never validates
// additional values against it.
type AdditionalProps struct {
	Allowed bool
	Schema  *Schema
}

func (a *AdditionalProps) UnmarshalJSON(b []byte) error {
	var asBool bool
	if err := json.Unmarshal(b, &asBool); err == nil {
		a.Allowed = asBool
		return nil
	}
	var s Schema
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	a.Allowed = true
	a.Schema = &s
	return nil
}

func (a *AdditionalProps) UnmarshalYAML(value *yaml.Node) error {
	var asBool bool
	if err := value.Decode(&asBool); err == nil {
		a.Allowed = asBool
		return nil
	}
	var s Schema
	if err := value.Decode(&s); err != nil {
		return err
	}
	a.Allowed = true
	a.Schema = &s
	return nil
}

// ItemsSchema represents "items", which is either a single schema
// (applied to every element) or a tuple of schemas (applied positionally).
type ItemsSchema struct {
	Single *Schema
	Tuple  []*Schema
}

func (it *ItemsSchema) UnmarshalJSON(b []byte) error {
	var single Schema
	if err := json.Unmarshal(b, &single); err == nil {
		it.Single = &single
		return nil
	}
	var tuple []*Schema
	if err := json.Unmarshal(b, &tuple); err != nil {
		return err
	}
	it.Tuple = tuple
	return nil
}

func (it *ItemsSchema) UnmarshalYAML(value *yaml.Node) error {
	var single Schema
	if err := value.Decode(&single); err == nil {
		it.Single = &single
		return nil
	}
	var tuple []*Schema
	if err := value.Decode(&tuple); err != nil {
		return err
	}
	it.Tuple = tuple
	return nil
}
