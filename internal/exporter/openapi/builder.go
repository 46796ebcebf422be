package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"api-recon/internal/apitype"
	"api-recon/internal/config"
	"api-recon/internal/model"
)

// OpenAPI Root Object
type OpenAPI struct {
	OpenAPI    string              `json:"openapi"`
	Info       Info                `json:"info"`
	Paths      map[string]PathItem `json:"paths"`
	Components *Components         `json:"components,omitempty"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type PathItem map[string]Operation // Key is method: "get", "post", etc.

type Operation struct {
	Tags        []string            `json:"tags,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	OperationID string              `json:"operationId,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type Parameter struct {
	Name     string  `json:"name"`
	In       string  `json:"in"` // "query", "path"
	Required bool    `json:"required,omitempty"`
	Schema   *Schema `json:"schema"`
}

type RequestBody struct {
	Content  map[string]MediaType `json:"content"`
	Required bool                 `json:"required,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema"`
}

// Schema is the subset of the OpenAPI schema object the exporter emits.
// The zero Schema accepts any value.
type Schema struct {
	Ref                  string  `json:"$ref,omitempty"`
	Type                 string  `json:"type,omitempty"`
	Items                *Schema `json:"items,omitempty"`
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
	Default              string  `json:"default,omitempty"`
	JavaType             string  `json:"x-java-type,omitempty"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas"`
}

const jsonMedia = "application/json"

// OpenAPIExporter constructs OpenAPI spec
type OpenAPIExporter struct {
	// Stateless
}

func NewOpenAPIExporter() *OpenAPIExporter {
	return &OpenAPIExporter{}
}

// Export writes openapi.json into the output directory
func (b *OpenAPIExporter) Export(report *model.Report, cfg *config.Config) error {
	title := "API Recon"
	if cfg.Project.BasePackage != "" {
		title = cfg.Project.BasePackage + " API"
	}
	spec := Build(report, title, apitype.NewTranslator(cfg.TypeMappings()))

	outputFile := filepath.Join(cfg.Output.Dir, "openapi.json")
	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(spec)
}

// Build assembles the OpenAPI document of a report
func Build(report *model.Report, title string, tr *apitype.Translator) *OpenAPI {
	bld := &builder{
		tr:         tr,
		keys:       make(map[string]string),
		schemas:    make(map[string]*Schema),
		operations: make(map[string]int),
		spec: &OpenAPI{
			OpenAPI: "3.0.3",
			Info:    Info{Title: title, Version: "1.0.0"},
			Paths:   make(map[string]PathItem),
		},
	}
	for _, group := range report.ByController() {
		for _, ep := range group.Endpoints {
			bld.processEndpoint(ep)
		}
	}
	if len(bld.schemas) > 0 {
		bld.spec.Components = &Components{Schemas: bld.schemas}
	}
	return bld.spec
}

type builder struct {
	tr         *apitype.Translator
	spec       *OpenAPI
	keys       map[string]string // qualified class name -> component key
	schemas    map[string]*Schema
	operations map[string]int // operationId use count
}

func (b *builder) processEndpoint(ep *model.Endpoint) {
	fullPath := ep.URITemplate().String()
	method := ep.Method().Lower()

	// Initialize PathItem
	if _, ok := b.spec.Paths[fullPath]; !ok {
		b.spec.Paths[fullPath] = make(PathItem)
	}

	op := Operation{
		Summary:     ep.Summary(),
		OperationID: b.operationID(ep),
		Responses:   make(map[string]Response),
	}
	if ep.Controller() != "" {
		op.Tags = []string{ep.Controller()}
	}
	if op.Summary == "" {
		op.Summary = ep.Name()
	}

	for _, p := range ep.Parameters() {
		switch v := p.(type) {
		case *model.PathVariable:
			op.Parameters = append(op.Parameters, Parameter{
				Name:     v.Segment(),
				In:       "path",
				Required: true,
				Schema:   b.schemaOf(b.tr.Translate(v.Type())),
			})
		case *model.RequestParam:
			schema := b.schemaOf(b.tr.Translate(v.Type()))
			if v.DefaultValue() != "" {
				// Copy so shared component refs are not modified
				withDefault := *schema
				withDefault.Default = v.DefaultValue()
				schema = &withDefault
			}
			op.Parameters = append(op.Parameters, Parameter{
				Name:     v.QueryName(),
				In:       "query",
				Required: v.Required(),
				Schema:   schema,
			})
		case *model.RequestBody:
			op.RequestBody = &RequestBody{
				Content:  map[string]MediaType{jsonMedia: {Schema: b.schemaOf(b.tr.Translate(v.Type()))}},
				Required: v.Required(),
			}
		}
	}

	resp := Response{Description: "Successful response"}
	if t, ok := ep.ResponseBody(); ok {
		if schema := b.schemaOf(b.tr.Translate(t)); schema != nil {
			resp.Content = map[string]MediaType{jsonMedia: {Schema: schema}}
		}
	}
	op.Responses["200"] = resp

	b.spec.Paths[fullPath][method] = op
}

// operationID returns Controller_method, numbered when a method maps to
// several paths.
func (b *builder) operationID(ep *model.Endpoint) string {
	id := ep.Name()
	if ep.Controller() != "" {
		id = ep.Controller() + "_" + id
	}
	b.operations[id]++
	if n := b.operations[id]; n > 1 {
		return fmt.Sprintf("%s_%d", id, n)
	}
	return id
}

// schemaOf maps an API type to a schema. Classes become component refs;
// void has no schema.
func (b *builder) schemaOf(t apitype.Type) *Schema {
	switch v := t.(type) {
	case *apitype.Primitive:
		switch v {
		case apitype.Void:
			return nil
		case apitype.Any:
			return &Schema{}
		}
		return &Schema{Type: v.Name()}
	case *apitype.Array:
		items := b.schemaOf(v.Element)
		if items == nil {
			items = &Schema{}
		}
		return &Schema{Type: "array", Items: items}
	case *apitype.Dictionary:
		values := b.schemaOf(v.Value)
		if values == nil {
			values = &Schema{}
		}
		return &Schema{Type: "object", AdditionalProperties: values}
	case *apitype.Class:
		return &Schema{Ref: "#/components/schemas/" + b.component(v)}
	}
	return &Schema{}
}

// component registers a class schema and returns its key. Simple names are
// used unless two classes share one.
func (b *builder) component(c *apitype.Class) string {
	if key, ok := b.keys[c.Qualified]; ok {
		return key
	}
	key := c.Name
	if _, taken := b.schemas[key]; taken {
		key = strings.ReplaceAll(c.Qualified, ".", "_")
	}
	b.keys[c.Qualified] = key
	b.schemas[key] = &Schema{Type: "object", JavaType: c.Qualified}
	return key
}
