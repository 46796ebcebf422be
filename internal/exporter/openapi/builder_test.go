package openapi

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api-recon/internal/analyzer"
	"api-recon/internal/apitype"
	"api-recon/internal/config"
	"api-recon/internal/javatype"
	"api-recon/internal/model"
)

const testDataDir = "../../analyzer/testdata/shop"

func shopReport(t *testing.T) *model.Report {
	t.Helper()
	report, err := analyzer.Analyze(*analyzer.DefaultConfig(testDataDir))
	require.NoError(t, err)
	return report
}

func TestBuild(t *testing.T) {
	spec := Build(shopReport(t), "Shop API", apitype.NewTranslator(nil))

	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Equal(t, "Shop API", spec.Info.Title)
	assert.ElementsMatch(t, []string{
		"/users", "/users/search", "/users/{id}", "/users/{userId}/avatar", "/pages/status",
	}, keys(spec.Paths))

	users := spec.Paths["/users"]
	require.Contains(t, users, "get")
	require.Contains(t, users, "post")

	list := users["get"]
	assert.Equal(t, "UserController_list", list.OperationID)
	assert.Equal(t, []string{"UserController"}, list.Tags)
	assert.Equal(t, "Lists every entity.", list.Summary)
	require.Len(t, list.Parameters, 1)
	assert.Equal(t, Parameter{
		Name: "page", In: "query", Required: false,
		Schema: &Schema{Type: "number", Default: "0"},
	}, list.Parameters[0])
	assert.Equal(t, &Schema{Type: "array", Items: &Schema{Ref: "#/components/schemas/User"}},
		list.Responses["200"].Content[jsonMedia].Schema)

	create := users["post"]
	require.NotNil(t, create.RequestBody)
	assert.True(t, create.RequestBody.Required)
	assert.Equal(t, "#/components/schemas/User", create.RequestBody.Content[jsonMedia].Schema.Ref)

	byID := spec.Paths["/users/{id}"]
	get := byID["get"]
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, "path", get.Parameters[0].In)
	assert.True(t, get.Parameters[0].Required)
	assert.Nil(t, byID["delete"].Responses["200"].Content, "void operations have no content")

	search := spec.Paths["/users/search"]["get"]
	assert.Equal(t, "Finds users by name.", search.Summary)
	assert.Equal(t, "array", search.Responses["200"].Content[jsonMedia].Schema.Type)

	status := spec.Paths["/pages/status"]["get"]
	assert.Equal(t, &Schema{Type: "string"}, status.Responses["200"].Content[jsonMedia].Schema)

	require.NotNil(t, spec.Components)
	assert.Equal(t, &Schema{Type: "object", JavaType: "com.acme.model.User"}, spec.Components.Schemas["User"])
	assert.Contains(t, spec.Components.Schemas, "Comparable")
}

func TestBuildMappingsAndCollisions(t *testing.T) {
	report := model.NewReport()
	for _, ep := range []struct {
		name, response string
	}{
		{"a", "com.acme.a.Item"},
		{"b", "com.acme.b.Item"},
		{"price", "org.joda.money.Money"},
	} {
		b, err := model.NewBuilder(ep.name, model.NewURITemplate("/"+ep.name), javatype.MustBasic(ep.response))
		require.NoError(t, err)
		b.SetController("ItemController")
		report.Endpoints = append(report.Endpoints, b.Build())
	}

	spec := Build(report, "Items", apitype.NewTranslator(map[string]string{"org.joda.money.Money": "number"}))

	refA := spec.Paths["/a"]["get"].Responses["200"].Content[jsonMedia].Schema.Ref
	refB := spec.Paths["/b"]["get"].Responses["200"].Content[jsonMedia].Schema.Ref
	assert.NotEqual(t, refA, refB)
	assert.Len(t, spec.Components.Schemas, 2)
	assert.Equal(t, &Schema{Type: "number"}, spec.Paths["/price"]["get"].Responses["200"].Content[jsonMedia].Schema)
}

func TestOperationIDsAreUnique(t *testing.T) {
	report := model.NewReport()
	for _, path := range []string{"/", "/search"} {
		b, err := model.NewBuilder("search", model.NewURITemplate(path), nil)
		require.NoError(t, err)
		b.SetController("UserController")
		report.Endpoints = append(report.Endpoints, b.Build())
	}

	spec := Build(report, "Users", apitype.NewTranslator(nil))
	assert.Equal(t, "UserController_search", spec.Paths["/"]["get"].OperationID)
	assert.Equal(t, "UserController_search_2", spec.Paths["/search"]["get"].OperationID)
	assert.Nil(t, spec.Components)
}

func TestOpenAPIExport(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Project: config.ProjectConfig{BasePackage: "com.acme"},
		Output:  config.OutputConfig{Dir: dir, FileName: "report"},
	}

	require.NoError(t, NewOpenAPIExporter().Export(shopReport(t), cfg))

	content, err := os.ReadFile(filepath.Join(dir, "openapi.json"))
	require.NoError(t, err)

	var result OpenAPI
	require.NoError(t, json.Unmarshal(content, &result))
	assert.Equal(t, "com.acme API", result.Info.Title)

	// View endpoints stay out of the document
	assert.NotContains(t, result.Paths, "/pages/home")
	assert.Contains(t, result.Paths["/users/{id}"], "delete")
}

func keys(m map[string]PathItem) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
