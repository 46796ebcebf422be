package analyzer

import (
	"strings"

	"api-recon/internal/javaparser"
	"api-recon/internal/javatype"
	"api-recon/internal/logger"
	"api-recon/internal/model"
	"api-recon/internal/typeschema"
)

// inheritedMethod is a method reachable from a controller, with the bindings
// that express its declaring class's type variables in the controller's terms.
type inheritedMethod struct {
	owner    *Class
	index    int
	bindings typeschema.Bindings
}

func (im inheritedMethod) method() *javaparser.Method { return &im.owner.Methods[im.index] }

// collectMethods returns the methods of c and of its pooled supertypes,
// superclass before interfaces, depth first. A method overridden lower in the
// hierarchy hides the inherited one unless only the inherited one carries a
// mapping annotation. Overloads declared in one class never hide each other.
func (a *Analyzer) collectMethods(c *Class) []inheritedMethod {
	var (
		out     []inheritedMethod
		byKey   = make(map[string]int)
		visited = make(map[string]bool)
		walk    func(cls *Class, b typeschema.Bindings)
	)
	walk = func(cls *Class, b typeschema.Bindings) {
		if visited[cls.FullName()] {
			return
		}
		visited[cls.FullName()] = true

		for i := range cls.Methods {
			m := &cls.Methods[i]
			im := inheritedMethod{owner: cls, index: i, bindings: b}
			key := a.signatureKey(im)
			if j, seen := byKey[key]; seen && out[j].owner != cls {
				if !out[j].method().IsEndpoint() && m.IsEndpoint() {
					out[j] = im
				}
				continue
			}
			if _, seen := byKey[key]; !seen {
				byKey[key] = len(out)
			}
			out = append(out, im)
		}

		for _, raw := range cls.Supertypes() {
			if super, sb, ok := a.bindSupertype(cls, raw, b); ok {
				walk(super, sb)
			}
		}
	}
	walk(c, typeschema.Bindings{})
	return out
}

// signatureKey identifies the method for override matching: its name and the
// erasures of its parameter types expressed in the controller's terms, so an
// inherited find(T) with T bound to Long matches an overriding find(Long).
func (a *Analyzer) signatureKey(im inheritedMethod) string {
	m := im.method()
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.Type
		t, err := a.types.Parse(p.Type, im.owner.MethodNames(im.index))
		if err != nil {
			continue
		}
		if r, _ := typeschema.Substitute(t, im.bindings, a.registry); r != nil {
			parts[i] = javatype.Erasure(r).String()
		}
	}
	return m.Name + "(" + strings.Join(parts, ",") + ")"
}

// bindSupertype resolves one extends/implements clause of cls to a pooled
// class and the bindings of that class's variables. b expresses cls's own
// variables in the controller's terms.
func (a *Analyzer) bindSupertype(cls *Class, raw string, b typeschema.Bindings) (*Class, typeschema.Bindings, bool) {
	t, err := a.types.Parse(raw, cls.Names)
	if err != nil {
		a.diag(model.SeverityWarning, CodeInvalidType, cls.FullName(), raw, cls.File, err)
		return nil, nil, false
	}
	base, ok := javatype.Erasure(t).(*javatype.Basic)
	if !ok {
		return nil, nil, false
	}
	super, ok := a.pool.Get(base.Name())
	if !ok {
		logger.Debug("[HIERARCHY] %s: supertype %s is not in the source tree", cls.FullName(), base.Name())
		return nil, nil, false
	}
	if super.Schema == nil {
		return super, typeschema.Bindings{}, true
	}

	var args []javatype.Type
	if p, ok := t.(*javatype.Parameterized); ok {
		args = p.Arguments()
	}
	for i, arg := range args {
		// Unbound variables of cls stay in place until the final resolution
		args[i], _ = typeschema.Substitute(arg, b, nil)
	}
	sb, err := super.Schema.Apply(args...)
	if err != nil {
		a.diag(model.SeverityWarning, CodeTypeArguments, cls.FullName(), raw, cls.File, err)
		return super, typeschema.Bindings{}, true
	}
	return super, sb, true
}
