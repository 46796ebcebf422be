package javatype

import "encoding/json"

// JSON serialization support for Java types.
// Every variant carries a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for Basic.
func (b *Basic) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}{
		Kind: "basic",
		Name: b.name,
	})
}

// MarshalJSON implements json.Marshaler for Array.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Element Type   `json:"element"`
	}{
		Kind:    "array",
		Element: a.element,
	})
}

// MarshalJSON implements json.Marshaler for Variable.
func (v *Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind      string `json:"kind"`
		Name      string `json:"name"`
		Scope     string `json:"scope,omitempty"`
		Recursive bool   `json:"recursive,omitempty"`
	}{
		Kind:      "typeVariable",
		Name:      v.name,
		Scope:     string(v.scope),
		Recursive: v.recursive,
	})
}

// MarshalJSON implements json.Marshaler for Parameterized.
func (p *Parameterized) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind      string `json:"kind"`
		Base      string `json:"base"`
		Arguments []Type `json:"arguments"`
	}{
		Kind:      "parameterized",
		Base:      p.base.name,
		Arguments: p.args,
	})
}
