package analyzer

import (
	"errors"
	"strings"

	"api-recon/internal/javaparser"
	"api-recon/internal/javatype"
	"api-recon/internal/logger"
	"api-recon/internal/model"
	"api-recon/internal/typeschema"
)

// Return types whose first type argument is the response body.
var wrapperTypes = map[string]bool{
	"ResponseEntity":    true,
	"HttpEntity":        true,
	"Callable":          true,
	"CompletableFuture": true,
	"CompletionStage":   true,
	"Future":            true,
	"ListenableFuture":  true,
	"DeferredResult":    true,
	"WebAsyncTask":      true,
	"Mono":              true,
}

// Return types streaming many bodies of their type argument.
var streamTypes = map[string]bool{
	"Flux": true,
}

// View types returned by methods that render a page (not REST APIs).
var viewTypes = map[string]bool{
	"ModelAndView": true,
	"Model":        true,
	"View":         true,
	"RedirectView": true,
	"ModelMap":     true,
}

// Parameter types supplied by the framework rather than the request.
var frameworkTypes = map[string]bool{
	"HttpServletRequest":   true,
	"HttpServletResponse":  true,
	"ServletRequest":       true,
	"ServletResponse":      true,
	"HttpSession":          true,
	"Principal":            true,
	"Authentication":       true,
	"Locale":               true,
	"TimeZone":             true,
	"Model":                true,
	"ModelMap":             true,
	"RedirectAttributes":   true,
	"BindingResult":        true,
	"Errors":               true,
	"SessionStatus":        true,
	"UriComponentsBuilder": true,
	"WebRequest":           true,
	"NativeWebRequest":     true,
	"ServerWebExchange":    true,
	"HttpHeaders":          true,
	"Pageable":             true,
	"Sort":                 true,
}

// Binding annotations the endpoint model does not describe.
var unmodeledBindings = map[string]bool{
	"RequestHeader":           true,
	"CookieValue":             true,
	"ModelAttribute":          true,
	"RequestPart":             true,
	"MatrixVariable":          true,
	"RequestAttribute":        true,
	"SessionAttribute":        true,
	"AuthenticationPrincipal": true,
}

// Simple value types bound from the query string when not annotated.
var simpleValueTypes = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true, "int": true,
	"long": true, "float": true, "double": true,
	"String": true, "Boolean": true, "Byte": true, "Character": true, "Short": true,
	"Integer": true, "Long": true, "Float": true, "Double": true,
	"BigDecimal": true, "BigInteger": true, "UUID": true,
	"LocalDate": true, "LocalDateTime": true, "LocalTime": true, "Instant": true,
}

// extractEndpoints extracts API endpoint definitions from controller classes
// This focuses ONLY on the public API interface, not internal call chains
func (a *Analyzer) extractEndpoints() {
	for _, c := range a.pool.Classes() {
		if !c.IsController() || c.Kind != "class" {
			continue
		}
		if a.cfg.SkipController != nil && a.cfg.SkipController(c.Name) {
			logger.Debug("[API SKIP] Excluded controller: %s", c.FullName())
			continue
		}

		stat := model.ControllerStat{
			Name:    c.Name,
			Package: c.Package,
			BaseURL: c.GetClassLevelURL(),
		}
		for _, im := range a.collectMethods(c) {
			if !im.method().IsEndpoint() {
				continue
			}
			stat.MethodCount++
			a.extractMethodEndpoints(c, im, &stat)
		}

		a.report.Summary.TotalControllers++
		a.report.Summary.AddControllerStat(stat)
		logger.Debug("[API] %s: %d endpoints, %d views, %d skipped", c.FullName(), stat.ApiCount, stat.ViewCount, stat.Skipped)
	}
}

// extractMethodEndpoints creates one Endpoint per mapping path of a
// controller method
func (a *Analyzer) extractMethodEndpoints(c *Class, im inheritedMethod, stat *model.ControllerStat) {
	m := im.method()

	method, err := model.ParseHTTPMethod(m.GetHTTPMethod())
	if err != nil {
		a.diag(model.SeverityWarning, CodeUnsupportedMethod, c.FullName(), m.Name, c.File, err)
		stat.Skipped++
		return
	}

	response, ok := a.resolve(im, m.ReturnType, m.Name)
	if !ok {
		stat.Skipped++
		return
	}
	response = unwrapResponse(response)
	if isVoid(response) {
		response = nil
	}

	// Filter out View Controllers (web pages, not REST APIs)
	if !a.cfg.IncludeViews && isViewEndpoint(c, m, response) {
		logger.Debug("[API SKIP] Excluded View Endpoint: %s.%s (Type: %v)", c.Name, m.Name, response)
		stat.ViewCount++
		return
	}

	params, ok := a.buildParameters(im)
	if !ok {
		stat.Skipped++
		return
	}

	for _, path := range m.GetMethodPaths() {
		ep, err := buildEndpoint(c, m, method, model.JoinURITemplate(c.GetClassLevelURL(), path), response, params)
		if err != nil {
			a.diag(model.SeverityError, CodeInvalidEndpoint, c.FullName(), m.Name, c.File, err)
			stat.Skipped++
			continue
		}
		for _, verr := range model.ValidateEndpoint(ep) {
			code := CodeInvalidEndpoint
			var ve *model.ValidationError
			if errors.As(verr, &ve) {
				code = ve.Code
			}
			a.diag(model.SeverityWarning, code, c.FullName(), m.Name, c.File, verr)
		}
		a.report.Endpoints = append(a.report.Endpoints, ep)
		stat.ApiCount++
	}
}

func buildEndpoint(c *Class, m *javaparser.Method, method model.HTTPMethod, uri model.URITemplate, response javatype.Type, params []model.Parameter) (*model.Endpoint, error) {
	b, err := model.NewBuilder(m.Name, uri, response)
	if err != nil {
		return nil, err
	}
	if err := b.SetMethod(method); err != nil {
		return nil, err
	}
	b.SetController(c.Name).SetSummary(m.Summary())
	for _, p := range params {
		if err := b.AddParameter(p); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// resolve parses a type expression of an inherited method and substitutes the
// controller's bindings. Unresolved variables are reported but the type is
// still returned; parse failures return false.
func (a *Analyzer) resolve(im inheritedMethod, raw, element string) (javatype.Type, bool) {
	owner := im.owner
	t, err := a.types.Parse(raw, owner.MethodNames(im.index))
	if err != nil {
		logger.LogResolveError(owner.FullName(), element, err)
		a.diag(model.SeverityError, CodeInvalidType, owner.FullName(), element, owner.File, err)
		return nil, false
	}
	resolved, err := typeschema.Substitute(t, im.bindings, a.registry)
	if err != nil {
		logger.LogResolveError(owner.FullName(), element, err)
		a.diag(model.SeverityWarning, CodeUnresolvedVariable, owner.FullName(), element, owner.File, err)
	}
	return resolved, true
}

// buildParameters maps the request-bound parameters of a method. Framework
// parameters and unmodeled bindings are left out.
func (a *Analyzer) buildParameters(im inheritedMethod) ([]model.Parameter, bool) {
	m := im.method()
	params := make([]model.Parameter, 0, len(m.Params))
	for i := range m.Params {
		p := &m.Params[i]
		element := m.Name + "." + p.Name

		kind, ann, bound := bindingOf(p)
		if !bound {
			logger.Debug("[PARAM SKIP] %s.%s (%s)", im.owner.Name, element, p.Type)
			continue
		}
		typ, ok := a.resolve(im, p.Type, element)
		if !ok {
			return nil, false
		}
		param, err := newParameter(kind, ann, p, typ)
		if err != nil {
			a.diag(model.SeverityError, CodeInvalidEndpoint, im.owner.FullName(), element, im.owner.File, err)
			return nil, false
		}
		params = append(params, param)
	}
	return params, true
}

// bindingOf determines how a parameter is bound from the request
func bindingOf(p *javaparser.Param) (model.ParameterKind, javaparser.Annotation, bool) {
	if ann, ok := p.Annotation("PathVariable"); ok {
		return model.KindPath, ann, true
	}
	if ann, ok := p.Annotation("RequestParam"); ok {
		return model.KindQuery, ann, true
	}
	if ann, ok := p.Annotation("RequestBody"); ok {
		return model.KindBody, ann, true
	}
	for _, ann := range p.Annotations {
		if unmodeledBindings[ann.Name] {
			return 0, javaparser.Annotation{}, false
		}
	}
	name := rawSimpleName(p.Type)
	if frameworkTypes[name] || !simpleValueTypes[name] {
		return 0, javaparser.Annotation{}, false
	}
	// Unannotated simple values are optional query parameters
	return model.KindQuery, javaparser.Annotation{}, true
}

func newParameter(kind model.ParameterKind, ann javaparser.Annotation, p *javaparser.Param, typ javatype.Type) (model.Parameter, error) {
	wire := ann.Value("value")
	if wire == "" {
		wire = ann.Value("name")
	}
	if wire == "" {
		wire = p.Name
	}
	required := ann.Value("required") != "false"

	switch kind {
	case model.KindPath:
		pv, err := model.NewPathVariable(p.Name, wire, typ)
		if err != nil {
			return nil, err
		}
		return pv, nil
	case model.KindQuery:
		def := ann.Value("defaultValue")
		if ann.Name == "" || def != "" || isOptional(typ) {
			required = false
		}
		rp, err := model.NewRequestParam(p.Name, wire, typ, required)
		if err != nil {
			return nil, err
		}
		if def != "" {
			rp = rp.WithDefault(def)
		}
		return rp, nil
	default:
		rb, err := model.NewRequestBody(p.Name, typ, required)
		if err != nil {
			return nil, err
		}
		return rb, nil
	}
}

// unwrapResponse strips response wrappers such as ResponseEntity<T> and
// CompletableFuture<T>. A raw wrapper carries java.lang.Object; a stream is an
// array of its elements.
func unwrapResponse(t javatype.Type) javatype.Type {
	for {
		switch v := t.(type) {
		case *javatype.Parameterized:
			name := v.Base().SimpleName()
			if wrapperTypes[name] {
				t = v.Argument(0)
				continue
			}
			if streamTypes[name] {
				return javatype.NewArray(unwrapResponse(v.Argument(0)))
			}
		case *javatype.Basic:
			if wrapperTypes[v.SimpleName()] || streamTypes[v.SimpleName()] {
				return javatype.Object
			}
		}
		return t
	}
}

func isVoid(t javatype.Type) bool {
	b, ok := t.(*javatype.Basic)
	return ok && (b.Name() == "void" || b.Name() == "java.lang.Void")
}

func isOptional(t javatype.Type) bool {
	b, ok := javatype.Erasure(t).(*javatype.Basic)
	return ok && b.SimpleName() == "Optional"
}

// isViewEndpoint checks if an endpoint is a view controller (web page) rather than a REST API
// String without @ResponseBody is a view name (returns HTML page)
func isViewEndpoint(c *Class, m *javaparser.Method, response javatype.Type) bool {
	if response == nil {
		return false
	}
	b, ok := javatype.Erasure(response).(*javatype.Basic)
	if !ok {
		return false
	}
	if viewTypes[b.SimpleName()] {
		return true
	}
	return b.Name() == "java.lang.String" && !c.IsRestController() && !m.HasAnnotation("ResponseBody")
}

// rawSimpleName returns the simple class name of a raw type expression,
// e.g. "java.util.Optional<Long>" -> "Optional"
func rawSimpleName(expr string) string {
	if i := strings.IndexAny(expr, "<["); i >= 0 {
		expr = expr[:i]
	}
	expr = strings.TrimSuffix(strings.TrimSpace(expr), "...")
	return javatype.SimpleName(expr)
}
