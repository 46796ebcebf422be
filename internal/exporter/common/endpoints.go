// Package common flattens a report into the rows the document exporters
// (excel, html, word) render, so every format lists the same endpoints in the
// same order.
package common

import (
	"fmt"
	"strings"

	"api-recon/internal/apitype"
	"api-recon/internal/javatype"
	"api-recon/internal/model"
)

// EndpointRow is one endpoint flattened for display
type EndpointRow struct {
	Controller  string
	Method      string
	Path        string
	Name        string
	Summary     string
	Signature   string // canonical endpoint render
	Response    string // Java response type, "void" when absent
	APIResponse string // API type of the response
	Params      []ParamRow
}

// ParamRow is one endpoint parameter flattened for display
type ParamRow struct {
	Name     string // wire name: segment, query name or argument name
	In       string // path, query or body
	Type     string // Java type
	APIType  string
	Required bool
	Default  string
}

// ParamSummary renders the parameters on one line,
// e.g. "id(path): Long, page(query): int = 0"
func (r EndpointRow) ParamSummary() string {
	parts := make([]string, len(r.Params))
	for i, p := range r.Params {
		s := fmt.Sprintf("%s(%s): %s", p.Name, p.In, javatype.SimpleName(p.Type))
		if p.Default != "" {
			s += " = " + p.Default
		} else if !p.Required {
			s += "?"
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// Rows flattens the report endpoints, grouped by controller. tr renders the
// API types; a nil tr uses the built-in mappings.
func Rows(report *model.Report, tr *apitype.Translator) []EndpointRow {
	if tr == nil {
		tr = apitype.NewTranslator(nil)
	}
	var rows []EndpointRow
	for _, group := range report.ByController() {
		for _, ep := range group.Endpoints {
			rows = append(rows, NewEndpointRow(ep, tr))
		}
	}
	return rows
}

// NewEndpointRow flattens one endpoint
func NewEndpointRow(ep *model.Endpoint, tr *apitype.Translator) EndpointRow {
	row := EndpointRow{
		Controller:  ep.Controller(),
		Method:      string(ep.Method()),
		Path:        ep.URITemplate().String(),
		Name:        ep.Name(),
		Summary:     ep.Summary(),
		Signature:   ep.String(),
		Response:    "void",
		APIResponse: apitype.Void.String(),
	}
	if t, ok := ep.ResponseBody(); ok {
		row.Response = t.String()
		row.APIResponse = tr.Translate(t).String()
	}

	for _, p := range ep.Parameters() {
		pr := ParamRow{
			Name:     p.Name(),
			In:       p.Kind().String(),
			Type:     p.Type().String(),
			APIType:  tr.Translate(p.Type()).String(),
			Required: true,
		}
		switch v := p.(type) {
		case *model.PathVariable:
			pr.Name = v.Segment()
		case *model.RequestParam:
			pr.Name = v.QueryName()
			pr.Required = v.Required()
			pr.Default = v.DefaultValue()
		case *model.RequestBody:
			pr.Required = v.Required()
		}
		row.Params = append(row.Params, pr)
	}
	return row
}

// CountControllers returns the number of distinct controllers among rows
func CountControllers(rows []EndpointRow) int {
	seen := make(map[string]bool)
	for _, r := range rows {
		seen[r.Controller] = true
	}
	return len(seen)
}
