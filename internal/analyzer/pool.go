package analyzer

import (
	"fmt"
	"sort"

	"api-recon/internal/javaparser"
	"api-recon/internal/javatype"
	"api-recon/internal/typeschema"
)

// Class is a pooled Java type declaration.
type Class struct {
	*javaparser.JavaClass

	// File is the source file the class was read from
	File string

	// Names resolves simple names inside the class body, with the class's own
	// type variables in scope
	Names *javaparser.Names

	// Schema is the class's type variable schema; nil for non-generic classes
	Schema *typeschema.Schema

	// MethodScopes holds the declaring scope of each generic method, indexed
	// like Methods; "" for non-generic methods
	MethodScopes []javatype.Scope
}

// Scope returns the class's declaring scope.
func (c *Class) Scope() javatype.Scope { return javatype.Scope(c.FullName()) }

// MethodNames returns the naming context of the i-th method.
func (c *Class) MethodNames(i int) *javaparser.Names {
	m := &c.Methods[i]
	if len(m.TypeParams) == 0 || c.MethodScopes[i] == "" {
		return c.Names
	}
	names := make([]string, len(m.TypeParams))
	for j, tp := range m.TypeParams {
		names[j] = tp.Name
	}
	return c.Names.With(javaparser.VarScope{Scope: c.MethodScopes[i], Names: names})
}

// ClassPool stores all parsed classes for quick lookup
type ClassPool struct {
	// classes: FullClassName -> Class
	classes map[string]*Class
}

// NewClassPool creates a new empty class pool
func NewClassPool() *ClassPool {
	return &ClassPool{classes: make(map[string]*Class)}
}

// Add adds a parsed Java class to the pool. A second class with the same
// fully qualified name is rejected.
func (pool *ClassPool) Add(file string, jc *javaparser.JavaClass) error {
	fullClassName := jc.FullName()
	if prev, ok := pool.classes[fullClassName]; ok {
		return fmt.Errorf("class %s already read from %s", fullClassName, prev.File)
	}

	names := make([]string, len(jc.TypeParams))
	for i, tp := range jc.TypeParams {
		names[i] = tp.Name
	}
	scope := javatype.Scope(fullClassName)
	pool.classes[fullClassName] = &Class{
		JavaClass:    jc,
		File:         file,
		Names:        javaparser.NewNames(jc.Package, jc.Imports, pool.Known, javaparser.VarScope{Scope: scope, Names: names}),
		MethodScopes: make([]javatype.Scope, len(jc.Methods)),
	}
	return nil
}

// Get returns the class with the given fully qualified name.
func (pool *ClassPool) Get(fqn string) (*Class, bool) {
	c, ok := pool.classes[fqn]
	return c, ok
}

// Known reports whether fqn names a pooled class.
func (pool *ClassPool) Known(fqn string) bool {
	_, ok := pool.classes[fqn]
	return ok
}

// Classes returns every pooled class sorted by fully qualified name.
func (pool *ClassPool) Classes() []*Class {
	out := make([]*Class, 0, len(pool.classes))
	for _, c := range pool.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out
}

// Len returns the number of pooled classes.
func (pool *ClassPool) Len() int { return len(pool.classes) }
