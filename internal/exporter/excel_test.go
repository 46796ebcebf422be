package exporter

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"api-recon/internal/analyzer"
	"api-recon/internal/config"
	"api-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

const testDataDir = "../analyzer/testdata/shop"

func analyzeShop(t *testing.T) *model.Report {
	t.Helper()
	report, err := analyzer.Analyze(*analyzer.DefaultConfig(testDataDir))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return report
}

func exportExcel(t *testing.T, report *model.Report) *excelize.File {
	t.Helper()
	cfg := &config.Config{
		Output: config.OutputConfig{
			Dir:      t.TempDir(),
			FileName: "test_report",
		},
	}

	if err := NewExcelExporter().Export(report, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	outputFile := cfg.OutputPath("xlsx")
	if _, err := os.Stat(outputFile); os.IsNotExist(err) {
		t.Fatal("Output file was not created")
	}

	f, err := excelize.OpenFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to open generated Excel: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExcelExport(t *testing.T) {
	f := exportExcel(t, analyzeShop(t))

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{SheetOverview, SheetEndpoints, SheetDiagnostics}) {
		t.Errorf("GetSheetList() = %v", got)
	}

	rows, err := f.GetRows(SheetEndpoints)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}

	// Header + 2 controller rows + 7 endpoints
	if len(rows) != 10 {
		t.Fatalf("Expected 10 rows, got %d: %v", len(rows), rows)
	}

	if rows[1][0] != "[Controller]" || rows[1][1] != "PageController" {
		t.Errorf("Row 2 = %v, expected the PageController group row", rows[1])
	}

	want := []string{"GET", "/pages/status", "status", "", "java.lang.String", "string"}
	if len(rows[2]) < len(want) || !reflect.DeepEqual(rows[2][:len(want)], want) {
		t.Errorf("Row 3 = %q, expected %q", rows[2], want)
	}

	if rows[3][1] != "UserController" {
		t.Errorf("Row 4 = %v, expected the UserController group row", rows[3])
	}

	// Endpoints sorted by URL then method within the controller
	var order []string
	for _, row := range rows[4:] {
		order = append(order, row[0]+" "+row[1])
	}
	wantOrder := []string{
		"GET /users",
		"POST /users",
		"GET /users/search",
		"DELETE /users/{id}",
		"GET /users/{id}",
		"PUT /users/{userId}/avatar",
	}
	if !reflect.DeepEqual(order, wantOrder) {
		t.Errorf("Endpoint order = %v, expected %v", order, wantOrder)
	}

	list := rows[4]
	if list[3] != "page(query): int = 0" {
		t.Errorf("list params = %q", list[3])
	}
	if list[5] != "User[]" || list[6] != "Lists every entity." {
		t.Errorf("list row = %q", list)
	}
}

func TestExcelOverview(t *testing.T) {
	f := exportExcel(t, analyzeShop(t))

	rows, err := f.GetRows(SheetOverview)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}

	metrics := make(map[string]string)
	for _, row := range rows[1:6] {
		metrics[row[0]] = row[1]
	}
	if metrics["Total Controllers"] != "2" || metrics["Total Endpoints"] != "7" || metrics["Generic Declarations"] != "3" {
		t.Errorf("metrics = %v", metrics)
	}

	// Controllers sorted by method count: UserController (6) before PageController (3)
	header := rows[8]
	if header[1] != "Controller Name" {
		t.Fatalf("Expected controller table header at row 9, got %v", header)
	}
	if rows[9][1] != "UserController" || rows[10][1] != "PageController" {
		t.Errorf("controller order = %v, %v", rows[9], rows[10])
	}
	if got := rows[10][4:8]; !reflect.DeepEqual(got, []string{"3", "1", "1", "1"}) {
		t.Errorf("PageController counts = %v", got)
	}
}

func TestExcelDiagnostics(t *testing.T) {
	f := exportExcel(t, analyzeShop(t))

	rows, err := f.GetRows(SheetDiagnostics)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header + 3 diagnostics, got %d rows", len(rows))
	}

	codes := make(map[string]bool)
	for _, row := range rows[1:] {
		codes[row[1]] = true
		if row[0] != string(model.SeverityWarning) {
			t.Errorf("Expected warnings only, got %v", row)
		}
	}
	for _, code := range []string{model.CodeUnknownPlaceholder, model.CodeUnboundPlaceholder, analyzer.CodeUnsupportedMethod} {
		if !codes[code] {
			t.Errorf("Missing diagnostic %s in %v", code, codes)
		}
	}
}

func TestExcelExporter_NoVisualArtifacts(t *testing.T) {
	f := exportExcel(t, analyzeShop(t))

	rows, err := f.GetRows(SheetEndpoints)
	if err != nil {
		t.Fatalf("Failed to get rows: %v", err)
	}

	for i, row := range rows {
		for j, cell := range row {
			if containsVisualArtifacts(cell) {
				t.Errorf("Row %d column %d contains visual artifacts: %q", i+1, j+1, cell)
			}
		}
	}
}

func TestExcelEmptyReport(t *testing.T) {
	f := exportExcel(t, model.NewReport())

	rows, err := f.GetRows(SheetEndpoints)
	if err != nil {
		t.Fatalf("Failed to get rows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected only the header row, got %v", rows)
	}
}

func containsVisualArtifacts(s string) bool {
	// Check for leading or trailing spaces
	if s != strings.TrimSpace(s) {
		return true
	}

	// Check for tree/indentation characters
	for _, a := range []string{"└", "ㄴ", "├", "│"} {
		if strings.Contains(s, a) {
			return true
		}
	}
	return false
}
