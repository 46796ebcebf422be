package exporter

import (
	"github.com/xuri/excelize/v2"
)

// Styler holds the cell styles registered in one workbook
type Styler struct {
	File *excelize.File

	HeaderStyle     int // bold on gray, centered
	ControllerStyle int // blue bold group rows
	ErrorStyle      int // red, wrapped
	WarningStyle    int // gray italic, wrapped
	DefaultStyle    int
}

// NewStyler registers the report styles in f
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f}
	border := []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
	middle := &excelize.Alignment{Vertical: "center"}
	wrapped := &excelize.Alignment{Vertical: "center", WrapText: true}

	styles := []struct {
		id    *int
		style *excelize.Style
	}{
		{&s.HeaderStyle, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#000000"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.ControllerStyle, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#0000FF"},
			Alignment: middle,
		}},
		{&s.ErrorStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#D32F2F"},
			Alignment: wrapped,
		}},
		{&s.WarningStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#757575", Italic: true},
			Alignment: wrapped,
		}},
		{&s.DefaultStyle, &excelize.Style{Alignment: middle}},
	}

	for _, st := range styles {
		st.style.Border = border
		id, err := f.NewStyle(st.style)
		if err != nil {
			return nil, err
		}
		*st.id = id
	}
	return s, nil
}
