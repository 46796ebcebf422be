package exporter

import (
	"strings"

	"api-recon/internal/exporter/descriptor"
	"api-recon/internal/exporter/html"
	"api-recon/internal/exporter/openapi"
	"api-recon/internal/exporter/word"
)

// GetExporters returns a list of Exporters based on requested formats.
// Aliases of the same format yield one exporter; unknown formats are ignored.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))

		var (
			key string
			exp Exporter
		)
		switch fmtStr {
		case "openapi", "swagger", "json":
			key, exp = "openapi", openapi.NewOpenAPIExporter()
		case "descriptor":
			key, exp = "descriptor-json", descriptor.NewExporter(descriptor.JSON)
		case "yaml":
			key, exp = "descriptor-yaml", descriptor.NewExporter(descriptor.YAML)
		case "excel", "xlsx":
			key, exp = "excel", NewExcelExporter()
		case "html":
			key, exp = "html", html.NewHTMLExporter()
		case "word", "docx":
			key, exp = "word", word.NewWordExporter()
		default:
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		exporters = append(exporters, exp)
	}

	return exporters
}
