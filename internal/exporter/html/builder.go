package html

import (
	"html/template"
	"io"
	"os"
	"strings"

	"api-recon/internal/apitype"
	"api-recon/internal/config"
	"api-recon/internal/exporter/common"
	"api-recon/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// APIReportData is the input of APIReportTemplate
type APIReportData struct {
	AnalysisDate     string
	TotalEndpoints   int
	TotalControllers int
	Groups           []EndpointGroup
	Diagnostics      []model.Diagnostic
}

// EndpointGroup is the endpoints of one controller
type EndpointGroup struct {
	Controller string
	Anchor     string
	Endpoints  []common.EndpointRow
}

// groupRows splits rows, already in controller order, into groups
func groupRows(rows []common.EndpointRow) []EndpointGroup {
	var groups []EndpointGroup
	for _, row := range rows {
		if n := len(groups); n == 0 || groups[n-1].Controller != row.Controller {
			groups = append(groups, EndpointGroup{
				Controller: row.Controller,
				Anchor:     "ctl-" + strings.ToLower(row.Controller),
			})
		}
		g := &groups[len(groups)-1]
		g.Endpoints = append(g.Endpoints, row)
	}
	return groups
}

var reportTemplate = template.Must(template.New("api-report").Funcs(template.FuncMap{
	"methodColor":   getMethodColor,
	"methodBadge":   getMethodBadge,
	"severityClass": getSeverityClass,
}).Parse(APIReportTemplate))

func (e *HTMLExporter) Export(report *model.Report, cfg *config.Config) error {
	f, err := os.Create(cfg.OutputPath("html"))
	if err != nil {
		return err
	}
	defer f.Close()

	return Render(f, report, apitype.NewTranslator(cfg.TypeMappings()))
}

// Render writes the HTML report of report to w
func Render(w io.Writer, report *model.Report, tr *apitype.Translator) error {
	rows := common.Rows(report, tr)

	// Stats come from the listed endpoints so the overview matches the content
	data := APIReportData{
		TotalEndpoints:   len(rows),
		TotalControllers: common.CountControllers(rows),
		Groups:           groupRows(rows),
		Diagnostics:      report.Diagnostics,
	}
	if report.Summary != nil {
		data.AnalysisDate = report.Summary.AnalysisDate
	}

	return reportTemplate.Execute(w, data)
}

// getMethodColor returns CSS color class for HTTP method
func getMethodColor(method string) string {
	switch strings.ToUpper(method) {
	case "GET":
		return "method-get"
	case "POST":
		return "method-post"
	case "PUT":
		return "method-put"
	case "DELETE":
		return "method-delete"
	case "PATCH":
		return "method-patch"
	default:
		return "method-default"
	}
}

// getMethodBadge returns badge text for HTTP method
func getMethodBadge(method string) string {
	return strings.ToUpper(method)
}

func getSeverityClass(s model.Severity) string {
	if s == model.SeverityError {
		return "diag-error"
	}
	return "diag-warning"
}
