package apitype

import (
	"api-recon/internal/javatype"
)

var builtin = map[string]Type{
	"void":                                    Void,
	"java.lang.Void":                          Void,
	"java.lang.Object":                        Any,
	"com.fasterxml.jackson.databind.JsonNode": Any,

	"boolean":           Boolean,
	"java.lang.Boolean": Boolean,

	"char":                     String,
	"java.lang.String":         String,
	"java.lang.Character":      String,
	"java.lang.CharSequence":   String,
	"java.util.UUID":           String,
	"java.util.Date":           String,
	"java.time.Instant":        String,
	"java.time.LocalDate":      String,
	"java.time.LocalDateTime":  String,
	"java.time.LocalTime":      String,
	"java.time.OffsetDateTime": String,
	"java.time.ZonedDateTime":  String,
	"java.time.Duration":       String,
	"java.net.URI":             String,
	"java.net.URL":             String,

	"byte":                 Number,
	"short":                Number,
	"int":                  Number,
	"long":                 Number,
	"float":                Number,
	"double":               Number,
	"java.lang.Byte":       Number,
	"java.lang.Short":      Number,
	"java.lang.Integer":    Number,
	"java.lang.Long":       Number,
	"java.lang.Float":      Number,
	"java.lang.Double":     Number,
	"java.lang.Number":     Number,
	"java.math.BigDecimal": Number,
	"java.math.BigInteger": Number,
}

var collections = map[string]bool{
	"java.lang.Iterable":      true,
	"java.util.Collection":    true,
	"java.util.List":          true,
	"java.util.ArrayList":     true,
	"java.util.LinkedList":    true,
	"java.util.Set":           true,
	"java.util.HashSet":       true,
	"java.util.LinkedHashSet": true,
	"java.util.SortedSet":     true,
	"java.util.TreeSet":       true,
	"java.util.stream.Stream": true,
	"java.util.Queue":         true,
	"java.util.Deque":         true,
}

var dictionaries = map[string]bool{
	"java.util.Map":           true,
	"java.util.HashMap":       true,
	"java.util.LinkedHashMap": true,
	"java.util.SortedMap":     true,
	"java.util.TreeMap":       true,
}

var optionals = map[string]bool{
	"java.util.Optional": true,
}

// Translator maps resolved Java types to API types.
type Translator struct {
	mappings map[string]Type
}

// NewTranslator returns a translator. mappings overrides built-in mappings by
// fully qualified Java name; a value naming a primitive ("string", "number",
// ...) maps to it, anything else to a class of that name.
func NewTranslator(mappings map[string]string) *Translator {
	m := make(map[string]Type, len(mappings))
	for from, to := range mappings {
		if p, ok := PrimitiveByName(to); ok {
			m[from] = p
		} else {
			m[from] = &Class{Name: to, Qualified: from}
		}
	}
	return &Translator{mappings: m}
}

// Translate returns the API type of t. Type variables that survived
// resolution become any.
func (tr *Translator) Translate(t javatype.Type) Type {
	return javatype.Visit[Type](t, tr)
}

// VisitBasic implements javatype.Visitor.
func (tr *Translator) VisitBasic(b *javatype.Basic) Type {
	return tr.named(b.Name())
}

// VisitArray implements javatype.Visitor. byte[] is a base64 string.
func (tr *Translator) VisitArray(a *javatype.Array) Type {
	if b, ok := a.Element().(*javatype.Basic); ok && b.Name() == "byte" {
		return String
	}
	return &Array{Element: tr.Translate(a.Element())}
}

// VisitVariable implements javatype.Visitor.
func (tr *Translator) VisitVariable(*javatype.Variable) Type { return Any }

// VisitParameterized implements javatype.Visitor.
func (tr *Translator) VisitParameterized(p *javatype.Parameterized) Type {
	base := p.Base().Name()
	if m, ok := tr.mappings[base]; ok {
		return m
	}
	switch {
	case collections[base] && p.NumArguments() == 1:
		return &Array{Element: tr.Translate(p.Argument(0))}
	case dictionaries[base] && p.NumArguments() == 2:
		return &Dictionary{Value: tr.Translate(p.Argument(1))}
	case optionals[base] && p.NumArguments() == 1:
		return tr.Translate(p.Argument(0))
	}
	return tr.named(base)
}

func (tr *Translator) named(name string) Type {
	if m, ok := tr.mappings[name]; ok {
		return m
	}
	if b, ok := builtin[name]; ok {
		return b
	}
	switch {
	case collections[name]:
		return &Array{Element: Any}
	case dictionaries[name]:
		return &Dictionary{Value: Any}
	case optionals[name]:
		return Any
	}
	return &Class{Name: javatype.SimpleName(name), Qualified: name}
}

// Classes returns the classes referenced by t in first-occurrence order.
func Classes(t Type) []*Class {
	var out []*Class
	seen := make(map[string]bool)
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case *Class:
			if !seen[t.Qualified] {
				seen[t.Qualified] = true
				out = append(out, t)
			}
		case *Array:
			walk(t.Element)
		case *Dictionary:
			walk(t.Value)
		}
	}
	walk(t)
	return out
}
