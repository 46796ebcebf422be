package javaparser

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"api-recon/internal/javatype"
)

// DefaultCacheSize is the number of parsed type expressions kept per TypeParser.
const DefaultCacheSize = 4096

// TypeParseError reports a malformed type expression.
type TypeParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *TypeParseError) Error() string {
	return fmt.Sprintf("cannot parse type %q at offset %d: %s", e.Expr, e.Pos, e.Msg)
}

// VarScope is one level of declared type variables, e.g. a class or a method.
type VarScope struct {
	Scope javatype.Scope
	Names []string
}

// Names resolves simple names appearing in one declaration context.
type Names struct {
	Package string
	Imports []string
	// Known reports whether a fully qualified class exists in the analyzed
	// sources. It may be nil.
	Known func(fqn string) bool
	// Vars is the type variable scopes, innermost first.
	Vars []VarScope

	key string
}

// NewNames returns the naming context of a declaration. Contexts with the same
// package, imports and variable scopes share cached parses, so known must
// answer the same way for all of them.
func NewNames(pkg string, imports []string, known func(string) bool, vars ...VarScope) *Names {
	n := &Names{Package: pkg, Imports: imports, Known: known, Vars: vars}
	var sb strings.Builder
	sb.WriteString(pkg)
	sb.WriteByte('[')
	sb.WriteString(strings.Join(imports, ";"))
	sb.WriteByte(']')
	for _, vs := range vars {
		sb.WriteByte('|')
		sb.WriteString(string(vs.Scope))
		sb.WriteByte('<')
		sb.WriteString(strings.Join(vs.Names, ","))
		sb.WriteByte('>')
	}
	n.key = sb.String()
	return n
}

// With returns a context with an additional innermost variable scope.
func (n *Names) With(vs VarScope) *Names {
	vars := append([]VarScope{vs}, n.Vars...)
	return NewNames(n.Package, n.Imports, n.Known, vars...)
}

var primitiveNames = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

var javaLang = map[string]bool{
	"Object": true, "String": true, "Boolean": true, "Byte": true, "Character": true,
	"Short": true, "Integer": true, "Long": true, "Float": true, "Double": true,
	"Number": true, "Void": true, "Comparable": true, "Iterable": true,
	"CharSequence": true, "Enum": true, "Class": true, "Exception": true,
	"RuntimeException": true, "Throwable": true, "Runnable": true, "Record": true,
}

// Well-known classes of packages commonly imported on demand.
var wellKnown = map[string]map[string]bool{
	"java.util": {
		"List": true, "ArrayList": true, "LinkedList": true, "Map": true, "HashMap": true,
		"LinkedHashMap": true, "TreeMap": true, "SortedMap": true, "Set": true, "HashSet": true,
		"LinkedHashSet": true, "TreeSet": true, "SortedSet": true, "Collection": true,
		"Optional": true, "UUID": true, "Date": true, "Queue": true, "Deque": true,
	},
	"java.util.concurrent": {"Callable": true, "CompletableFuture": true, "Future": true},
	"java.time": {
		"Instant": true, "LocalDate": true, "LocalDateTime": true, "LocalTime": true,
		"OffsetDateTime": true, "ZonedDateTime": true, "Duration": true,
	},
	"java.math": {"BigDecimal": true, "BigInteger": true},
}

// Resolve returns the fully qualified name of a simple or partially
// qualified class name.
func (n *Names) Resolve(name string) string {
	if primitiveNames[name] {
		return name
	}
	head, tail, qualified := strings.Cut(name, ".")
	if qualified {
		// Outer.Inner where Outer is imported; otherwise already qualified
		if resolved, ok := n.resolveSimple(head); ok && head[0] >= 'A' && head[0] <= 'Z' {
			return resolved + "." + tail
		}
		return name
	}
	if resolved, ok := n.resolveSimple(name); ok {
		return resolved
	}
	if n.Package != "" {
		return n.Package + "." + name
	}
	return name
}

func (n *Names) resolveSimple(name string) (string, bool) {
	for _, imp := range n.Imports {
		if strings.HasSuffix(imp, "."+name) {
			return imp, true
		}
	}
	if n.Package != "" && n.known(n.Package+"."+name) {
		return n.Package + "." + name, true
	}
	for _, imp := range n.Imports {
		pkg, ok := strings.CutSuffix(imp, ".*")
		if !ok {
			continue
		}
		if n.known(pkg+"."+name) || wellKnown[pkg][name] {
			return pkg + "." + name, true
		}
	}
	if javaLang[name] {
		return "java.lang." + name, true
	}
	return "", false
}

func (n *Names) known(fqn string) bool {
	return n.Known != nil && n.Known(fqn)
}

func (n *Names) variable(name string) (*javatype.Variable, bool) {
	for _, vs := range n.Vars {
		for _, v := range vs.Names {
			if v == name {
				tv, err := javatype.NewVariable(name, vs.Scope)
				return tv, err == nil
			}
		}
	}
	return nil, false
}

// TypeParser turns type expressions into javatype values, caching results
// per naming context.
type TypeParser struct {
	cache *lru.Cache[string, javatype.Type]
}

// NewTypeParser returns a parser with an LRU cache of the given size. A size
// below one uses DefaultCacheSize.
func NewTypeParser(cacheSize int) (*TypeParser, error) {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, javatype.Type](cacheSize)
	if err != nil {
		return nil, err
	}
	return &TypeParser{cache: cache}, nil
}

// Parse parses expr in the naming context n. Wildcards erase to their upper
// bound and varargs become arrays.
func (p *TypeParser) Parse(expr string, n *Names) (javatype.Type, error) {
	if n == nil {
		n = NewNames("", nil, nil)
	}
	key := n.key + "|" + expr
	if t, ok := p.cache.Get(key); ok {
		return t, nil
	}
	t, err := ParseType(expr, n)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, t)
	return t, nil
}

// CacheLen returns the number of cached expressions.
func (p *TypeParser) CacheLen() int { return p.cache.Len() }

// ParseType parses expr without caching.
func ParseType(expr string, n *Names) (javatype.Type, error) {
	if n == nil {
		n = NewNames("", nil, nil)
	}
	tp := &typeExprParser{expr: expr, toks: tokenizeType(expr), names: n}
	t, err := tp.parseType()
	if err != nil {
		return nil, err
	}
	if tp.peek().text == "..." {
		tp.next()
		t = javatype.NewArray(t)
	}
	if tok := tp.peek(); tok.text != "" {
		return nil, tp.errorf(tok, "unexpected %q", tok.text)
	}
	return t, nil
}

type typeToken struct {
	text string
	pos  int
}

func tokenizeType(expr string) []typeToken {
	var toks []typeToken
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '@':
			// type-use annotation, e.g. List<@Valid User>
			j := i + 1
			for j < len(expr) && (isIdentChar(expr[j]) || expr[j] == '.') {
				j++
			}
			if j < len(expr) && expr[j] == '(' {
				j = findClosing(expr, j, '(', ')')
			}
			i = j
		case strings.HasPrefix(expr[i:], "..."):
			toks = append(toks, typeToken{text: "...", pos: i})
			i += 3
		case isIdentChar(c):
			j := i
			for j < len(expr) && (isIdentChar(expr[j]) || expr[j] == '.' && j+1 < len(expr) && expr[j+1] != '.') {
				j++
			}
			toks = append(toks, typeToken{text: expr[i:j], pos: i})
			i = j
		default:
			toks = append(toks, typeToken{text: string(c), pos: i})
			i++
		}
	}
	return toks
}

type typeExprParser struct {
	expr  string
	toks  []typeToken
	pos   int
	names *Names
}

func (p *typeExprParser) peek() typeToken {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return typeToken{pos: len(p.expr)}
}

func (p *typeExprParser) next() typeToken {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *typeExprParser) errorf(tok typeToken, format string, args ...any) error {
	return &TypeParseError{Expr: p.expr, Pos: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *typeExprParser) expect(text string) error {
	if tok := p.next(); tok.text != text {
		if tok.text == "" {
			return p.errorf(tok, "expected %q, got end of input", text)
		}
		return p.errorf(tok, "expected %q, got %q", text, tok.text)
	}
	return nil
}

// type := name typeArgs? ('.' name typeArgs?)* ('[' ']')*
func (p *typeExprParser) parseType() (javatype.Type, error) {
	tok := p.next()
	if tok.text == "" || !isIdentChar(tok.text[0]) || isDigit(tok.text[0]) {
		if tok.text == "" {
			return nil, p.errorf(tok, "expected type, got end of input")
		}
		return nil, p.errorf(tok, "expected type, got %q", tok.text)
	}
	name := strings.TrimSuffix(tok.text, ".")

	var t javatype.Type
	if v, ok := p.names.variableRef(name); ok && p.peek().text != "<" {
		t = v
	} else {
		args, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
		// Owner<A>.Inner<B>: owner arguments are dropped
		for p.peek().text == "." {
			p.next()
			inner := p.next()
			if inner.text == "" || !isIdentChar(inner.text[0]) {
				return nil, p.errorf(inner, "expected nested type name")
			}
			name += "." + inner.text
			if args, err = p.parseTypeArgs(); err != nil {
				return nil, err
			}
		}
		base, err := javatype.NewBasic(p.names.Resolve(name))
		if err != nil {
			return nil, p.errorf(tok, "%v", err)
		}
		if len(args) == 0 {
			t = base
		} else if t, err = javatype.NewParameterized(base, args...); err != nil {
			return nil, p.errorf(tok, "%v", err)
		}
	}

	for p.peek().text == "[" {
		p.next()
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		t = javatype.NewArray(t)
	}
	return t, nil
}

// typeArgs := '<' arg (',' arg)* '>'
func (p *typeExprParser) parseTypeArgs() ([]javatype.Type, error) {
	if p.peek().text != "<" {
		return nil, nil
	}
	open := p.next()
	var args []javatype.Type
	for {
		if p.peek().text == ">" && len(args) == 0 {
			return nil, p.errorf(open, "diamond is not a type")
		}
		arg, err := p.parseTypeArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch tok := p.next(); tok.text {
		case ",":
			continue
		case ">":
			return args, nil
		default:
			return nil, p.errorf(tok, "expected ',' or '>' in type arguments")
		}
	}
}

// arg := '?' (('extends' | 'super') type)? | type
func (p *typeExprParser) parseTypeArg() (javatype.Type, error) {
	if p.peek().text != "?" {
		return p.parseType()
	}
	p.next()
	switch p.peek().text {
	case "extends":
		p.next()
		return p.parseType()
	case "super":
		p.next()
		if _, err := p.parseType(); err != nil {
			return nil, err
		}
	}
	return javatype.Object, nil
}

func (n *Names) variableRef(name string) (*javatype.Variable, bool) {
	if n == nil || strings.Contains(name, ".") {
		return nil, false
	}
	return n.variable(name)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
