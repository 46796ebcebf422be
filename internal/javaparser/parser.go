package javaparser

import (
	"regexp"
	"strings"

	"api-recon/internal/logger"
)

// Annotation represents a Java annotation with its attributes
type Annotation struct {
	Name       string            // e.g., "RequestMapping", "PathVariable"
	Attributes map[string]string // e.g., {"value": "/users", "method": "RequestMethod.GET"}
	Raw        string            // Original annotation text
}

// TypeParam is a declared type variable with its raw bound expressions
type TypeParam struct {
	Name   string   // e.g., "T"
	Bounds []string // e.g., ["Comparable<T>"]; empty when unbounded
}

// Param is a method parameter
type Param struct {
	Name        string       // e.g., "id"
	Type        string       // e.g., "List<Long>", "String..."
	Annotations []Annotation // e.g., @PathVariable("id")
}

// Method represents a Java method
type Method struct {
	Name        string       // e.g., "findAll"
	TypeParams  []TypeParam  // generic method type parameters
	ReturnType  string       // e.g., "ResponseEntity<Page<T>>"
	Params      []Param      // declared parameters
	Annotations []Annotation // e.g., @GetMapping("/{id}")
	JavaDoc     string       // Method documentation, without comment markers
	Abstract    bool         // no body (interface or abstract method)
}

// JavaClass represents a parsed Java class or interface
type JavaClass struct {
	Package     string       // e.g., "com.acme.api"
	Name        string       // e.g., "UserController"
	Kind        string       // "class", "interface", "enum" or "record"
	TypeParams  []TypeParam  // class type parameters
	Extends     []string     // raw supertypes after extends
	Implements  []string     // raw supertypes after implements
	Imports     []string     // Import statements, on-demand imports end in ".*"
	Annotations []Annotation // Class-level annotations
	Methods     []Method     // Class methods
}

var (
	packageRegex = regexp.MustCompile(`package\s+([\w.]+)\s*;`)
	importRegex  = regexp.MustCompile(`import\s+(?:static\s+)?([\w.]+(?:\.\*)?)\s*;`)
	classRegex   = regexp.MustCompile(`\b(class|interface|enum|record)\s+([A-Za-z_$][\w$]*)`)

	// Method head: modifiers, optional type parameters, return type, name, open paren.
	// The parameter list and body are scanned by hand.
	methodRegex = regexp.MustCompile(`(?s)(?:/\*\*((?:[^*]|\*+[^*/])*)\*+/\s*)?((?:@[\w.]+(?:\s*\((?:[^()]|\([^()]*\))*\))?\s+)*)((?:(?:public|private|protected|static|final|abstract|default|synchronized|native|strictfp)\s+)*)(<[^;{}()=]*>\s*)?([A-Za-z_$][\w$.]*(?:\s*<[^;{}()=]*>)?(?:\s*\[\s*\])*)\s+([A-Za-z_$][\w$]*)\s*\(`)

	throwsRegex = regexp.MustCompile(`^\s*throws\s+[\w$.,\s<>]+`)
)

// Words that can precede "name(" without being a return type.
var notReturnTypes = map[string]bool{
	"new": true, "return": true, "throw": true, "else": true, "case": true,
	"yield": true, "await": true, "assert": true, "public": true, "private": true,
	"protected": true, "static": true, "final": true, "abstract": true,
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"synchronized": true, "class": true, "interface": true, "enum": true,
	"record": true, "extends": true, "implements": true, "instanceof": true,
}

// ParseJavaFile parses a Java source file and extracts metadata
func ParseJavaFile(content string) (*JavaClass, error) {
	content = StripComments(content, true)

	javaClass := &JavaClass{
		Imports:     []string{},
		Annotations: []Annotation{},
		Methods:     []Method{},
	}

	// Extract package
	javaClass.Package = extractPackage(content)

	// Extract imports
	javaClass.Imports = extractImports(content)

	// Extract the primary type declaration; its body holds the methods
	bodyStart := extractDeclaration(content, javaClass)
	if bodyStart < 0 {
		return javaClass, nil
	}

	// Extract methods
	javaClass.Methods = extractMethods(content, bodyStart, javaClass.Name)

	return javaClass, nil
}

// extractPackage extracts the package declaration
func extractPackage(content string) string {
	matches := packageRegex.FindStringSubmatch(content)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// extractImports extracts all import statements
func extractImports(content string) []string {
	imports := []string{}
	matches := importRegex.FindAllStringSubmatch(content, -1)
	for _, match := range matches {
		if len(match) > 1 {
			imports = append(imports, match[1])
		}
	}
	return imports
}

// extractDeclaration fills the name, kind, type parameters, supertypes and
// annotations of the first top-level type and returns the offset just after
// its opening brace, or -1.
func extractDeclaration(content string, jc *JavaClass) int {
	loc := classRegex.FindStringSubmatchIndex(stripJavadoc(content))
	if loc == nil {
		return -1
	}
	jc.Kind = content[loc[2]:loc[3]]
	jc.Name = content[loc[4]:loc[5]]

	jc.Annotations = ParseAnnotations(declarationPrefix(content[:loc[0]]))

	pos := loc[5]
	pos = skipSpace(content, pos)
	if pos < len(content) && content[pos] == '<' {
		end := findClosing(content, pos, '<', '>')
		jc.TypeParams = ParseTypeParams(content[pos+1 : end-1])
		pos = end
	}

	open := strings.IndexByte(content[pos:], '{')
	if open < 0 {
		return -1
	}
	header := content[pos : pos+open]
	if jc.Kind == "record" {
		header = skipRecordComponents(header)
	}
	jc.Extends, jc.Implements = parseSupertypes(header)

	return pos + open + 1
}

// declarationPrefix returns the annotations text directly before a type
// declaration, after the last statement terminator.
func declarationPrefix(before string) string {
	if i := strings.LastIndexAny(before, ";}"); i >= 0 {
		return before[i+1:]
	}
	return before
}

func skipRecordComponents(header string) string {
	start := strings.IndexByte(header, '(')
	if start < 0 {
		return header
	}
	end := findClosing(header, start, '(', ')')
	return header[end:]
}

// parseSupertypes splits "extends A<B> implements C, D" into its clauses
func parseSupertypes(header string) (extends, implements []string) {
	header = strings.TrimSpace(header)
	var current *[]string
	for _, tok := range tokenizeClauses(header) {
		switch tok {
		case "extends":
			current = &extends
		case "implements":
			current = &implements
		case "permits":
			current = nil
		default:
			if current != nil {
				*current = append(*current, SplitTopLevel(tok, ',')...)
			}
		}
	}
	return extends, implements
}

// tokenizeClauses splits a declaration header into keywords and the text
// between them, ignoring keywords nested inside angle brackets.
func tokenizeClauses(header string) []string {
	var (
		out   []string
		depth int
		start int
	)
	keywords := []string{"extends", "implements", "permits"}
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '<':
			depth++
			continue
		case '>':
			depth--
			continue
		}
		if depth != 0 || (i > 0 && isIdentChar(header[i-1])) {
			continue
		}
		for _, kw := range keywords {
			if strings.HasPrefix(header[i:], kw) && (i+len(kw) == len(header) || !isIdentChar(header[i+len(kw)])) {
				if text := strings.TrimSpace(header[start:i]); text != "" {
					out = append(out, text)
				}
				out = append(out, kw)
				i += len(kw) - 1
				start = i + 1
				break
			}
		}
	}
	if text := strings.TrimSpace(header[start:]); text != "" {
		out = append(out, text)
	}
	return out
}

// extractMethods extracts all methods declared after offset start. Method
// bodies are skipped so calls inside them are never taken for declarations.
func extractMethods(content string, start int, className string) []Method {
	methods := []Method{}

	pos := start
	for pos < len(content) {
		matchIdx := methodRegex.FindStringSubmatchIndex(content[pos:])
		if matchIdx == nil {
			break
		}
		for i := range matchIdx {
			if matchIdx[i] >= 0 {
				matchIdx[i] += pos
			}
		}
		matchEnd := matchIdx[1]

		returnType := strings.TrimSpace(content[matchIdx[10]:matchIdx[11]])
		methodName := content[matchIdx[12]:matchIdx[13]]

		paramsEnd := findClosing(content, matchEnd-1, '(', ')')
		params := content[matchEnd : paramsEnd-1]

		rest := content[paramsEnd:]
		if loc := throwsRegex.FindStringIndex(rest); loc != nil {
			rest = rest[loc[1]:]
		}
		trimmed := strings.TrimLeft(rest, " \t\r\n")
		afterSig := len(content) - len(trimmed)

		if notReturnTypes[returnType] || notReturnTypes[methodName] || methodName == className {
			if isConstructor(returnType, methodName, className) && strings.HasPrefix(trimmed, "{") {
				pos = findClosingBrace(content, afterSig+1)
			} else {
				pos = matchEnd
			}
			continue
		}

		method := Method{
			Name:        methodName,
			ReturnType:  NormalizeSpace(returnType),
			Params:      parseMethodParams(params),
			Annotations: []Annotation{},
		}

		switch {
		case strings.HasPrefix(trimmed, "{"):
			bodyEnd := findClosingBrace(content, afterSig+1)
			logger.Debug("[PARSER] Skipped body of %s: %d chars", methodName, bodyEnd-afterSig)
			pos = bodyEnd
		case strings.HasPrefix(trimmed, ";"), strings.HasPrefix(trimmed, "default"):
			method.Abstract = true
			if semi := strings.IndexByte(trimmed, ';'); semi >= 0 {
				pos = afterSig + semi + 1
			} else {
				pos = len(content)
			}
		default:
			// Not a declaration, e.g. an expression in a field initializer
			pos = matchEnd
			continue
		}

		if matchIdx[2] >= 0 {
			method.JavaDoc = cleanJavadoc(content[matchIdx[2]:matchIdx[3]])
		}
		if matchIdx[4] >= 0 {
			method.Annotations = ParseAnnotations(content[matchIdx[4]:matchIdx[5]])
		}
		if matchIdx[8] >= 0 {
			tp := strings.TrimSpace(content[matchIdx[8]:matchIdx[9]])
			method.TypeParams = ParseTypeParams(tp[1 : len(tp)-1])
		}

		methods = append(methods, method)
	}

	return methods
}

func isConstructor(returnType, methodName, className string) bool {
	switch returnType {
	case "public", "protected", "private":
		return true
	}
	return methodName == className
}

// ParseTypeParams parses the inside of a type parameter list, e.g.
// "K, V extends Comparable<V> & Serializable".
func ParseTypeParams(text string) []TypeParam {
	var params []TypeParam
	for _, part := range SplitTopLevel(text, ',') {
		part = strings.Join(strings.Fields(part), " ")
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		// Type-use annotations on the variable itself are dropped
		for len(fields) > 1 && strings.HasPrefix(fields[0], "@") {
			fields = fields[1:]
		}
		tp := TypeParam{Name: fields[0]}
		if idx := strings.Index(part, " extends "); idx >= 0 {
			tp.Bounds = SplitTopLevel(part[idx+len(" extends "):], '&')
		}
		params = append(params, tp)
	}
	return params
}

// parseMethodParams splits a parameter list and separates the annotations,
// type and name of each parameter.
func parseMethodParams(params string) []Param {
	result := []Param{}
	for _, raw := range SplitTopLevel(params, ',') {
		annText, rest := splitLeadingAnnotations(raw)
		fields := strings.Fields(rest)
		for len(fields) > 0 && fields[0] == "final" {
			fields = fields[1:]
		}
		if len(fields) < 2 {
			continue
		}
		name := fields[len(fields)-1]
		typ := strings.Join(fields[:len(fields)-1], " ")
		if strings.HasSuffix(name, "[]") {
			// C-style "String args[]"
			typ += "[]"
			name = strings.TrimSuffix(name, "[]")
		}
		result = append(result, Param{
			Name:        name,
			Type:        NormalizeSpace(typ),
			Annotations: ParseAnnotations(annText),
		})
	}
	return result
}

// splitLeadingAnnotations returns the annotation prefix of a parameter and
// the remaining text.
func splitLeadingAnnotations(s string) (annotations, rest string) {
	pos := skipSpace(s, 0)
	for pos < len(s) && s[pos] == '@' {
		end := pos + 1
		for end < len(s) && (isIdentChar(s[end]) || s[end] == '.') {
			end++
		}
		next := skipSpace(s, end)
		if next < len(s) && s[next] == '(' {
			end = findClosing(s, next, '(', ')')
		}
		pos = skipSpace(s, end)
	}
	return s[:pos], s[pos:]
}

// ParseAnnotations parses every annotation in text
func ParseAnnotations(text string) []Annotation {
	annotations := []Annotation{}
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		end := i + 1
		for end < len(text) && (isIdentChar(text[end]) || text[end] == '.') {
			end++
		}
		name := text[i+1 : end]
		if name == "" || name == "interface" {
			continue
		}
		if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
			name = name[dot+1:]
		}
		annotation := Annotation{
			Name:       name,
			Attributes: make(map[string]string),
		}

		next := skipSpace(text, end)
		if next < len(text) && text[next] == '(' {
			close := findClosing(text, next, '(', ')')
			parseAnnotationAttributes(&annotation, text[next+1:close-1])
			end = close
		}
		annotation.Raw = text[i:end]
		annotations = append(annotations, annotation)
		i = end - 1
	}
	return annotations
}

// parseAnnotationAttributes parses annotation attributes into a map
func parseAnnotationAttributes(annotation *Annotation, attributesText string) {
	attributesText = strings.TrimSpace(attributesText)
	if attributesText == "" {
		return
	}

	for _, part := range SplitTopLevel(attributesText, ',') {
		key, value, ok := strings.Cut(part, "=")
		if !ok || !isIdentifier(strings.TrimSpace(key)) {
			// Single element: @Annotation("value") or @Annotation({"a", "b"})
			annotation.Attributes["value"] = trimQuotes(attributesText)
			return
		}
		annotation.Attributes[strings.TrimSpace(key)] = trimQuotes(value)
	}
}

// Values returns the attribute as a list, expanding array syntax {"a", "b"}
func (a Annotation) Values(key string) []string {
	raw, ok := a.Attributes[key]
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return []string{trimQuotes(raw)}
	}
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")
	var out []string
	for _, v := range SplitTopLevel(raw, ',') {
		out = append(out, trimQuotes(v))
	}
	return out
}

// Value returns the first value of key, or "".
func (a Annotation) Value(key string) string {
	if vs := a.Values(key); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Helper functions

func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isIdentifier(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
		pos++
	}
	return pos
}

// NormalizeSpace collapses whitespace runs to one space and drops spaces
// next to type punctuation, so "Map< String , T >" becomes "Map<String,T>".
func NormalizeSpace(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for _, p := range []string{"<", ">", ",", "[", "]", "&"} {
		s = strings.ReplaceAll(s, " "+p, p)
		s = strings.ReplaceAll(s, p+" ", p)
	}
	s = strings.ReplaceAll(s, "&", " & ")
	return s
}

// SplitTopLevel splits s on sep outside brackets, braces, parentheses and quotes
func SplitTopLevel(s string, sep byte) []string {
	var (
		result  []string
		depth   int
		start   int
		inQuote byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == '\\' {
				i++
			} else if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = c
		case '<', '(', '{', '[':
			depth++
		case '>', ')', '}', ']':
			depth--
		case sep:
			if depth == 0 {
				if part := strings.TrimSpace(s[start:i]); part != "" {
					result = append(result, part)
				}
				start = i + 1
			}
		}
	}
	if part := strings.TrimSpace(s[start:]); part != "" {
		result = append(result, part)
	}
	return result
}

// GetClassLevelURL returns the class-level URL from @RequestMapping
func (jc *JavaClass) GetClassLevelURL() string {
	for _, ann := range jc.Annotations {
		if ann.Name == "RequestMapping" {
			if v := ann.Value("value"); v != "" {
				return v
			}
			return ann.Value("path")
		}
	}
	return ""
}

// IsController checks if the class is a Spring Controller
func (jc *JavaClass) IsController() bool {
	return jc.HasAnnotation("Controller") || jc.HasAnnotation("RestController")
}

// IsRestController checks if every method of the class writes its response body
func (jc *JavaClass) IsRestController() bool {
	return jc.HasAnnotation("RestController") || jc.HasAnnotation("ResponseBody")
}

// HasAnnotation checks for a class-level annotation by simple name
func (jc *JavaClass) HasAnnotation(name string) bool {
	for _, ann := range jc.Annotations {
		if ann.Name == name {
			return true
		}
	}
	return false
}

// FullName returns the fully qualified class name
func (jc *JavaClass) FullName() string {
	if jc.Package == "" {
		return jc.Name
	}
	return jc.Package + "." + jc.Name
}

// Supertypes returns the extends and implements clauses in declaration order
func (jc *JavaClass) Supertypes() []string {
	out := make([]string, 0, len(jc.Extends)+len(jc.Implements))
	out = append(out, jc.Extends...)
	return append(out, jc.Implements...)
}

// GetMethodPaths returns the method-level paths of the mapping annotation,
// or [""] when the annotation names no path.
func (m *Method) GetMethodPaths() []string {
	for _, ann := range m.Annotations {
		if !isMappingAnnotation(ann.Name) {
			continue
		}
		if vs := ann.Values("value"); len(vs) > 0 {
			return vs
		}
		if vs := ann.Values("path"); len(vs) > 0 {
			return vs
		}
		return []string{""}
	}
	return nil
}

// GetHTTPMethod returns the HTTP method for this method
func (m *Method) GetHTTPMethod() string {
	for _, ann := range m.Annotations {
		switch ann.Name {
		case "GetMapping":
			return "GET"
		case "PostMapping":
			return "POST"
		case "PutMapping":
			return "PUT"
		case "DeleteMapping":
			return "DELETE"
		case "PatchMapping":
			return "PATCH"
		case "RequestMapping":
			// Check method attribute: "RequestMethod.POST" or {RequestMethod.GET, ...}
			if method := ann.Value("method"); method != "" {
				if strings.Contains(method, ".") {
					parts := strings.Split(method, ".")
					method = parts[len(parts)-1]
				}
				return strings.ToUpper(method)
			}
			return "GET" // Default
		}
	}
	return ""
}

// IsEndpoint checks if this method is an HTTP endpoint
func (m *Method) IsEndpoint() bool {
	for _, ann := range m.Annotations {
		if isMappingAnnotation(ann.Name) {
			return true
		}
	}
	return false
}

// HasAnnotation checks for a method-level annotation by simple name
func (m *Method) HasAnnotation(name string) bool {
	for _, ann := range m.Annotations {
		if ann.Name == name {
			return true
		}
	}
	return false
}

func isMappingAnnotation(name string) bool {
	switch name {
	case "RequestMapping", "GetMapping", "PostMapping", "PutMapping", "DeleteMapping", "PatchMapping":
		return true
	}
	return false
}

// Annotation returns the parameter annotation with the given simple name
func (p *Param) Annotation(name string) (Annotation, bool) {
	for _, ann := range p.Annotations {
		if ann.Name == name {
			return ann, true
		}
	}
	return Annotation{}, false
}
