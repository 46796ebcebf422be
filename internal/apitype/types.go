// Package apitype is the language-neutral type model handed to client
// emitters, and the translation of resolved Java types into it.
package apitype

import "encoding/json"

// Type is a language-neutral type. The variants are *Primitive, *Array,
// *Dictionary and *Class.
type Type interface {
	// String renders the type, e.g. "number", "User[]", "Dictionary<string>".
	String() string

	apiType()
}

// Primitive is a built-in scalar type.
type Primitive struct {
	name string
}

// Primitive types.
var (
	Any     = &Primitive{name: "any"}
	Boolean = &Primitive{name: "boolean"}
	Number  = &Primitive{name: "number"}
	String  = &Primitive{name: "string"}
	Void    = &Primitive{name: "void"}
)

var primitives = map[string]*Primitive{
	"any": Any, "boolean": Boolean, "number": Number, "string": String, "void": Void,
}

// PrimitiveByName returns the primitive with the given name.
func PrimitiveByName(name string) (*Primitive, bool) {
	p, ok := primitives[name]
	return p, ok
}

// Name returns the primitive name.
func (p *Primitive) Name() string { return p.name }

func (p *Primitive) String() string { return p.name }

func (*Primitive) apiType() {}

// Array is a list of elements.
type Array struct {
	Element Type
}

func (a *Array) String() string { return a.Element.String() + "[]" }

func (*Array) apiType() {}

// Dictionary is an object keyed by strings.
type Dictionary struct {
	Value Type
}

func (d *Dictionary) String() string { return "Dictionary<" + d.Value.String() + ">" }

func (*Dictionary) apiType() {}

// Class is a named structured type, referenced by simple name.
type Class struct {
	Name      string
	Qualified string // source class, e.g. "com.acme.User"
}

func (c *Class) String() string { return c.Name }

func (*Class) apiType() {}

// MarshalJSON implements json.Marshaler for Primitive.
func (p *Primitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}{Kind: "primitive", Name: p.name})
}

// MarshalJSON implements json.Marshaler for Array.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Element Type   `json:"element"`
	}{Kind: "array", Element: a.Element})
}

// MarshalJSON implements json.Marshaler for Dictionary.
func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string `json:"kind"`
		Value Type   `json:"value"`
	}{Kind: "dictionary", Value: d.Value})
}

// MarshalJSON implements json.Marshaler for Class.
func (c *Class) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind      string `json:"kind"`
		Name      string `json:"name"`
		Qualified string `json:"qualified,omitempty"`
	}{Kind: "class", Name: c.Name, Qualified: c.Qualified})
}
