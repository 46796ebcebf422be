package descriptor

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"api-recon/internal/apitype"
	"api-recon/internal/config"
	"api-recon/internal/javatype"
	"api-recon/internal/model"
)

func sampleReport(t *testing.T) *model.Report {
	t.Helper()
	user := javatype.MustBasic("com.acme.User")
	list := javatype.MustParameterized(javatype.MustBasic("java.util.List"), user)

	b, err := model.NewBuilder("getUser", model.NewURITemplate("/users/{id}"), user)
	require.NoError(t, err)
	id, err := model.NewPathVariable("userId", "id", javatype.MustBasic("java.lang.Long"))
	require.NoError(t, err)
	require.NoError(t, b.AddParameter(id))
	b.SetController("UserController").SetSummary("Returns one user.")

	l, err := model.NewBuilder("list", model.NewURITemplate("/users"), list)
	require.NoError(t, err)
	page, err := model.NewRequestParam("page", "p", javatype.MustBasic("int"), false)
	require.NoError(t, err)
	require.NoError(t, l.AddParameter(page.WithDefault("0")))
	l.SetController("UserController")

	report := model.NewReport()
	report.Endpoints = append(report.Endpoints, b.Build(), l.Build())
	report.Summary.AnalysisDate = "2026-10-14 09:00:00"
	report.AddDiagnostic(model.Diagnostic{
		Severity: model.SeverityWarning,
		Code:     "unresolved_type_variable",
		Scope:    "com.acme.UserController",
		Message:  "type variable T has no binding",
	})
	return report
}

func TestBuild(t *testing.T) {
	doc := Build(sampleReport(t), apitype.NewTranslator(nil))

	assert.Equal(t, "2026-10-14 09:00:00", doc.Generated)
	require.Len(t, doc.Endpoints, 2)

	// Sorted by URI within the controller
	list, get := doc.Endpoints[0], doc.Endpoints[1]
	assert.Equal(t, "list", list.Name)
	assert.Equal(t, "com.acme.User getUser(userId): GET /users/{id}", get.Signature)
	assert.Equal(t, "Returns one user.", get.Summary)

	require.NotNil(t, get.Response)
	assert.Equal(t, "com.acme.User", get.Response.Render)
	assert.Equal(t, "User", get.Response.API.String())

	require.Len(t, get.Parameters, 1)
	assert.Equal(t, "path", get.Parameters[0].Kind)
	assert.Equal(t, "id", get.Parameters[0].WireName)
	assert.True(t, get.Parameters[0].Required)

	require.Len(t, list.Parameters, 1)
	assert.Equal(t, Parameter{
		Name: "page", Kind: "query", WireName: "p", Required: false, Default: "0",
		Type: TypeRef{Render: "int", API: apitype.Number, Java: javatype.MustBasic("int")},
	}, list.Parameters[0])
	assert.Equal(t, "User[]", list.Response.API.String())

	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "WARNING", doc.Diagnostics[0].Severity)
}

func TestEncodeJSON(t *testing.T) {
	data, err := Encode(Build(sampleReport(t), apitype.NewTranslator(nil)), JSON)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	endpoints := raw["endpoints"].([]any)
	require.Len(t, endpoints, 2)

	response := endpoints[0].(map[string]any)["response"].(map[string]any)
	assert.Equal(t, "java.util.List<com.acme.User>", response["render"])
	java := response["java"].(map[string]any)
	assert.Equal(t, "parameterized", java["kind"])
	assert.Equal(t, "java.util.List", java["base"])

	api := response["api"].(map[string]any)
	assert.Equal(t, "array", api["kind"])
}

func TestEncodeYAML(t *testing.T) {
	data, err := Encode(Build(sampleReport(t), apitype.NewTranslator(nil)), YAML)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"kind"`, "keys are plain block-style scalars")

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	endpoints := raw["endpoints"].([]any)
	require.Len(t, endpoints, 2)

	list := endpoints[0].(map[string]any)
	params := list["parameters"].([]any)
	page := params[0].(map[string]any)
	assert.Equal(t, "0", page["default"], "numeric-looking strings stay strings")
	assert.Equal(t, false, page["required"])

	diags := raw["diagnostics"].([]any)
	assert.Equal(t, "unresolved_type_variable", diags[0].(map[string]any)["code"])
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode(&Document{}, Format("toml"))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Output: config.OutputConfig{Dir: dir, FileName: "shop"}}
	report := sampleReport(t)

	require.NoError(t, NewExporter(JSON).Export(report, cfg))
	require.NoError(t, NewExporter(YAML).Export(report, cfg))

	for _, name := range []string{"shop.endpoints.json", "shop.endpoints.yaml"} {
		info, err := os.Stat(cfg.OutputPath(name[len("shop."):]))
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size())
	}
}
