package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"api-recon/internal/apitype"
	"api-recon/internal/javaparser"
	"api-recon/internal/javatype"
)

type TypesCmd struct {
	Expr    string            `arg:"" help:"Java type expression, e.g. 'Map<String, List<T>>'."`
	Package string            `help:"Package the expression is written in." short:"p"`
	Import  []string          `help:"Imports in scope, fully qualified or 'pkg.*'." short:"i"`
	Var     []string          `help:"Type variables in scope." sep:","`
	Map     map[string]string `help:"Java to API type mappings (java.Type=api)."`
	JSON    bool              `help:"Print the resolved type tree as JSON."`
}

func (c *TypesCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *TypesCmd) run(w io.Writer) error {
	var vars []javaparser.VarScope
	if len(c.Var) > 0 {
		vars = append(vars, javaparser.VarScope{Scope: javatype.Scope(c.Package), Names: c.Var})
	}
	names := javaparser.NewNames(c.Package, c.Import, nil, vars...)

	t, err := javaparser.ParseType(c.Expr, names)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}

	api := apitype.NewTranslator(c.Map).Translate(t)
	fmt.Fprintf(w, "Java:    %s\n", t)
	fmt.Fprintf(w, "Kind:    %s\n", t.Kind())
	fmt.Fprintf(w, "Erasure: %s\n", javatype.Erasure(t))
	fmt.Fprintf(w, "API:     %s\n", api)
	return nil
}
