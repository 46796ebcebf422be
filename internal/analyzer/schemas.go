package analyzer

import (
	"fmt"
	"slices"

	"api-recon/internal/javaparser"
	"api-recon/internal/javatype"
	"api-recon/internal/logger"
	"api-recon/internal/model"
	"api-recon/internal/typeschema"
)

// buildSchemas records one schema per generic class and per generic method.
// Variables declared without a bound get the implicit java.lang.Object bound.
func (a *Analyzer) buildSchemas() {
	for _, c := range a.pool.Classes() {
		if len(c.TypeParams) > 0 {
			c.Schema = a.bindSchema(c, c.Scope(), c.TypeParams, c.Names, nil)
		}
		for i := range c.Methods {
			m := &c.Methods[i]
			if len(m.TypeParams) == 0 {
				continue
			}
			c.MethodScopes[i] = methodScope(c, m.Name)
			a.bindSchema(c, c.MethodScopes[i], m.TypeParams, c.MethodNames(i), c.Schema)
		}
	}
	logger.Debug("[SCHEMA] %d generic declarations registered", a.registry.Len())
}

// methodScope returns the scope of a generic method. Overloads get a numeric
// suffix so each keeps its own variables.
func methodScope(c *Class, name string) javatype.Scope {
	scope := javatype.MethodScope(c.Scope(), name)
	for n := 2; slices.Contains(c.MethodScopes, scope); n++ {
		scope = javatype.MethodScope(c.Scope(), fmt.Sprintf("%s~%d", name, n))
	}
	return scope
}

func (a *Analyzer) bindSchema(c *Class, scope javatype.Scope, params []javaparser.TypeParam, names *javaparser.Names, enclosing *typeschema.Schema) *typeschema.Schema {
	order := make([]string, len(params))
	bounds := make(map[string][]javatype.Type, len(params))
	for i, tp := range params {
		order[i] = tp.Name
		for _, raw := range tp.Bounds {
			t, err := a.types.Parse(raw, names)
			if err != nil {
				a.diag(model.SeverityWarning, CodeInvalidBound, string(scope), tp.Name, c.File, err)
				continue
			}
			bounds[tp.Name] = append(bounds[tp.Name], t)
		}
		if len(bounds[tp.Name]) == 0 {
			bounds[tp.Name] = []javatype.Type{javatype.Object}
		}
	}

	var (
		s   *typeschema.Schema
		err error
	)
	if enclosing != nil {
		s, err = enclosing.Nest(scope, order, bounds)
	} else {
		s, err = typeschema.Bind(scope, order, bounds)
	}
	if err == nil {
		err = a.registry.Register(s)
	}
	if err != nil {
		logger.LogResolveError(string(scope), "", err)
		a.diag(model.SeverityError, CodeInvalidSchema, string(scope), "", c.File, err)
		return nil
	}
	return s
}
