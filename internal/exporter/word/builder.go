package word

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"api-recon/internal/apitype"
	"api-recon/internal/config"
	"api-recon/internal/exporter/common"
	"api-recon/internal/model"

	"github.com/nguyenthenguyen/docx"
)

// Line break understood by the docx encoder (rendered as <w:br/>)
const br = "\r\n"

// templateParts is the minimal WordprocessingML package the report is
// rendered into. Placeholders are replaced by Export.
var templateParts = []struct {
	name, body string
}{
	{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`},
	{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`},
	// Required by some parsers
	{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`},
	{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>API Recon Report</w:t></w:r></w:p>
<w:p><w:r><w:t>Date: {{Date}}</w:t></w:r></w:p>
<w:p><w:r><w:t>Total Controllers: {{TotalControllers}}</w:t></w:r></w:p>
<w:p><w:r><w:t>Total Endpoints: {{TotalEndpoints}}</w:t></w:r></w:p>
<w:p><w:r><w:t>{{Content}}</w:t></w:r></w:p>
</w:body>
</w:document>`},
}

// buildTemplate zips the template package in memory
func buildTemplate() ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, part := range templateParts {
		fw, err := w.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write([]byte(part.body)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(report *model.Report, cfg *config.Config) error {
	tmpl, err := buildTemplate()
	if err != nil {
		return fmt.Errorf("failed to build template: %w", err)
	}

	r, err := docx.ReadDocxFromMemory(bytes.NewReader(tmpl), int64(len(tmpl)))
	if err != nil {
		return fmt.Errorf("failed to read docx template: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	rows := common.Rows(report, apitype.NewTranslator(cfg.TypeMappings()))

	// Stats come from the listed endpoints so the overview matches the content
	totalEndpoints := len(rows)
	totalControllers := common.CountControllers(rows)

	date := ""
	if report.Summary != nil {
		date = report.Summary.AnalysisDate
	}

	// Replace Summary Placeholders
	replacements := []struct{ old, new string }{
		{"{{Date}}", date},
		{"{{TotalEndpoints}}", fmt.Sprintf("%d", totalEndpoints)},
		{"{{TotalControllers}}", fmt.Sprintf("%d", totalControllers)},
		{"{{Content}}", buildContent(rows, report.Diagnostics)},
	}
	for _, rep := range replacements {
		if err := doc.Replace(rep.old, rep.new, -1); err != nil {
			return fmt.Errorf("failed to fill %s: %w", rep.old, err)
		}
	}

	if err := doc.WriteToFile(cfg.OutputPath("docx")); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}

	return nil
}

// buildContent renders the endpoint documentation as plain text.
// The docx library handles the XML encoding.
func buildContent(rows []common.EndpointRow, diags []model.Diagnostic) string {
	var sb strings.Builder

	sb.WriteString("API SPECIFICATION" + br + br)
	sb.WriteString(strings.Repeat("=", 80) + br + br)

	for i, row := range rows {
		buildEndpointText(&sb, row)

		// Add separator between endpoints
		if i < len(rows)-1 {
			sb.WriteString(br + strings.Repeat("-", 80) + br + br)
		}
	}

	if len(diags) > 0 {
		sb.WriteString(br + strings.Repeat("=", 80) + br)
		sb.WriteString(fmt.Sprintf("DIAGNOSTICS (%d):%s", len(diags), br))
		for _, d := range diags {
			sb.WriteString(d.String() + br)
		}
	}

	return sb.String()
}

// buildEndpointText builds plain text documentation for a single API endpoint
func buildEndpointText(sb *strings.Builder, row common.EndpointRow) {
	// Endpoint Header
	sb.WriteString(fmt.Sprintf("[%s] %s%s", row.Method, row.Path, br))
	sb.WriteString(fmt.Sprintf("Controller: %s.%s%s", row.Controller, row.Name, br))
	sb.WriteString(fmt.Sprintf("Signature: %s%s", row.Signature, br))

	if row.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary: %s%s", row.Summary, br))
	}
	sb.WriteString(br)

	// Request Parameters
	if len(row.Params) > 0 {
		sb.WriteString("REQUEST PARAMETERS:" + br)
		sb.WriteString(fmt.Sprintf("%-25s %-20s %-10s %-10s %s%s", "Name", "Type", "In", "Required", "Default", br))
		sb.WriteString(strings.Repeat("-", 100) + br)

		for _, param := range row.Params {
			required := "No"
			if param.Required {
				required = "Yes"
			}
			sb.WriteString(fmt.Sprintf("%-25s %-20s %-10s %-10s %s%s",
				truncate(param.Name, 25),
				truncate(param.APIType, 20),
				param.In,
				required,
				param.Default,
				br))
		}
		sb.WriteString(br)
	}

	// Response
	sb.WriteString("RESPONSE:" + br)
	sb.WriteString(fmt.Sprintf("%-15s %-25s %s%s", "Status Code", "Type", "Java Type", br))
	sb.WriteString(strings.Repeat("-", 80) + br)
	sb.WriteString(fmt.Sprintf("%-15d %-25s %s%s", 200, truncate(row.APIResponse, 25), row.Response, br))
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
