// Package descriptor writes the endpoint descriptor consumed by client code
// emitters: every endpoint with its canonical render, the resolved Java type
// trees and their API types.
package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"api-recon/internal/apitype"
	"api-recon/internal/config"
	"api-recon/internal/javatype"
	"api-recon/internal/model"
)

// Format is the descriptor encoding
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Document is the descriptor root
type Document struct {
	Generated   string       `json:"generated"`
	Endpoints   []Endpoint   `json:"endpoints"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Endpoint is one described endpoint
type Endpoint struct {
	Name       string      `json:"name"`
	Controller string      `json:"controller,omitempty"`
	Method     string      `json:"method"`
	URI        string      `json:"uri"`
	Summary    string      `json:"summary,omitempty"`
	Signature  string      `json:"signature"`
	Response   *TypeRef    `json:"response,omitempty"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter is one described endpoint parameter
type Parameter struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	WireName string  `json:"wireName,omitempty"`
	Required bool    `json:"required"`
	Default  string  `json:"default,omitempty"`
	Type     TypeRef `json:"type"`
}

// TypeRef carries a resolved Java type with its renders
type TypeRef struct {
	Render string        `json:"render"`
	API    apitype.Type  `json:"api"`
	Java   javatype.Type `json:"java"`
}

// Diagnostic is a problem recorded by the discovery pass
type Diagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Scope    string `json:"scope,omitempty"`
	Element  string `json:"element,omitempty"`
	File     string `json:"file,omitempty"`
	Message  string `json:"message"`
}

// Exporter writes <file>.endpoints.json or <file>.endpoints.yaml
type Exporter struct {
	format Format
}

func NewExporter(format Format) *Exporter {
	return &Exporter{format: format}
}

func (e *Exporter) Export(report *model.Report, cfg *config.Config) error {
	doc := Build(report, apitype.NewTranslator(cfg.TypeMappings()))
	data, err := Encode(doc, e.format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.OutputPath("endpoints."+string(e.format)), data, 0o644); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	return nil
}

// Build describes the report endpoints, grouped by controller
func Build(report *model.Report, tr *apitype.Translator) *Document {
	doc := &Document{Endpoints: []Endpoint{}}
	if report.Summary != nil {
		doc.Generated = report.Summary.AnalysisDate
	}
	for _, group := range report.ByController() {
		for _, ep := range group.Endpoints {
			doc.Endpoints = append(doc.Endpoints, describe(ep, tr))
		}
	}
	for _, d := range report.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
			Severity: string(d.Severity),
			Code:     d.Code,
			Scope:    d.Scope,
			Element:  d.Element,
			File:     d.File,
			Message:  d.Message,
		})
	}
	return doc
}

func describe(ep *model.Endpoint, tr *apitype.Translator) Endpoint {
	out := Endpoint{
		Name:       ep.Name(),
		Controller: ep.Controller(),
		Method:     string(ep.Method()),
		URI:        ep.URITemplate().String(),
		Summary:    ep.Summary(),
		Signature:  ep.String(),
		Parameters: []Parameter{},
	}
	if t, ok := ep.ResponseBody(); ok {
		ref := typeRef(t, tr)
		out.Response = &ref
	}
	for _, p := range ep.Parameters() {
		param := Parameter{
			Name:     p.Name(),
			Kind:     p.Kind().String(),
			Required: true,
			Type:     typeRef(p.Type(), tr),
		}
		switch v := p.(type) {
		case *model.PathVariable:
			param.WireName = v.Segment()
		case *model.RequestParam:
			param.WireName = v.QueryName()
			param.Required = v.Required()
			param.Default = v.DefaultValue()
		case *model.RequestBody:
			param.Required = v.Required()
		}
		out.Parameters = append(out.Parameters, param)
	}
	return out
}

func typeRef(t javatype.Type, tr *apitype.Translator) TypeRef {
	return TypeRef{Render: t.String(), API: tr.Translate(t), Java: t}
}

// Encode renders the document. YAML is produced from the JSON form so both
// encodings share the kind-tagged type trees.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case YAML:
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return nil, err
		}
		blockStyle(&node)

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown descriptor format %q", format)
	}
}

// blockStyle drops the flow and quoting styles decoded from JSON
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
