package exporter

import (
	"fmt"
	"sort"

	"api-recon/internal/apitype"
	"api-recon/internal/config"
	"api-recon/internal/exporter/common"
	"api-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook
const (
	SheetOverview    = "Overview"
	SheetEndpoints   = "Endpoints"
	SheetDiagnostics = "Diagnostics"
)

// ExcelExporter handles the Excel generation
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report
func (e *ExcelExporter) Export(report *model.Report, cfg *config.Config) error {
	outputFile := cfg.OutputPath("xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	rows := common.Rows(report, apitype.NewTranslator(cfg.TypeMappings()))

	// 1. Create Overview Sheet
	if err := e.writeOverview(f, styler, report); err != nil {
		return err
	}

	// 2. Create Endpoint Sheet
	if err := e.writeEndpoints(f, styler, rows); err != nil {
		return err
	}

	// 3. Create Diagnostics Sheet
	if err := e.writeDiagnostics(f, styler, report.Diagnostics); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	// Save
	if err := f.SaveAs(outputFile); err != nil {
		return err
	}

	return nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, report *model.Report) error {
	sheet := SheetOverview
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	summary := report.Summary

	// Section A: System Summary
	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Count"}, s.HeaderStyle)
	row++

	metrics := []struct {
		Key string
		Val any
	}{
		{"Analysis Date", summary.AnalysisDate},
		{"Total Controllers", summary.TotalControllers},
		{"Total Endpoints", summary.TotalEndpoints},
		{"Generic Declarations", summary.TotalSchemas},
		{"Diagnostics", len(report.Diagnostics)},
	}

	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		row++
	}

	row += 2 // Spacer

	// Section B: Controller Complexity
	headersB := []string{"No", "Controller Name", "Package", "Base URL", "Total Methods", "API Count", "View Count", "Skipped", "Note"}
	e.writeRow(f, sheet, row, headersB, s.HeaderStyle)
	row++

	// Sort controllers by complexity (method count)
	stats := make([]model.ControllerStat, len(summary.ControllerStats))
	copy(stats, summary.ControllerStats)
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].MethodCount != stats[j].MethodCount {
			return stats[i].MethodCount > stats[j].MethodCount
		}
		return stats[i].Name < stats[j].Name
	})

	for i, st := range stats {
		values := []any{i + 1, st.Name, st.Package, st.BaseURL, st.MethodCount, st.ApiCount, st.ViewCount, st.Skipped}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		if st.MethodCount > 20 {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), "Complex")
		}
		style := s.DefaultStyle
		if st.Skipped > 0 {
			style = s.WarningStyle
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), style)
		row++
	}

	// Adjust column widths
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "D", 30)

	return nil
}

// --- Endpoint Sheet Logic ---

func (e *ExcelExporter) writeEndpoints(f *excelize.File, s *Styler, rows []common.EndpointRow) error {
	sheet := SheetEndpoints
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Method", "URL", "Name", "Params (Input)", "Response (Java)", "Response (API)", "Summary"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	controller := ""
	for _, r := range rows {
		// 1. Controller group row
		if r.Controller != controller {
			controller = r.Controller
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "[Controller]")
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), controller)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), s.ControllerStyle)
			row++
		}

		// 2. Endpoint row
		e.writeRow(f, sheet, row, []string{
			r.Method, r.Path, r.Name, r.ParamSummary(), r.Response, r.APIResponse, r.Summary,
		}, s.DefaultStyle)
		row++
	}

	// Auto width
	f.SetColWidth(sheet, "A", "A", 14) // Method
	f.SetColWidth(sheet, "B", "B", 40) // URL
	f.SetColWidth(sheet, "C", "C", 24) // Name
	f.SetColWidth(sheet, "D", "F", 40) // Params/Response
	f.SetColWidth(sheet, "G", "G", 50) // Summary

	return nil
}

// --- Diagnostics Sheet Logic ---

func (e *ExcelExporter) writeDiagnostics(f *excelize.File, s *Styler, diags []model.Diagnostic) error {
	sheet := SheetDiagnostics
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Severity", "Code", "Scope", "Element", "File", "Message"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	for i, d := range diags {
		style := s.WarningStyle
		if d.Severity == model.SeverityError {
			style = s.ErrorStyle
		}
		e.writeRow(f, sheet, i+2, []string{string(d.Severity), d.Code, d.Scope, d.Element, d.File, d.Message}, style)
	}

	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "C", "E", 36)
	f.SetColWidth(sheet, "F", "F", 80)

	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
