package exporter

import (
	"fmt"
	"testing"
)

func TestGetExporters(t *testing.T) {
	tests := []struct {
		formats []string
		want    []string
	}{
		{[]string{"excel"}, []string{"*exporter.ExcelExporter"}},
		{[]string{"openapi", "swagger", " JSON "}, []string{"*openapi.OpenAPIExporter"}},
		{[]string{"descriptor", "yaml"}, []string{"*descriptor.Exporter", "*descriptor.Exporter"}},
		{[]string{"html", "docx", "word"}, []string{"*html.HTMLExporter", "*word.WordExporter"}},
		{[]string{"pdf", ""}, nil},
	}

	for _, tt := range tests {
		var got []string
		for _, e := range GetExporters(tt.formats) {
			got = append(got, fmt.Sprintf("%T", e))
		}
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("GetExporters(%v) = %v, expected %v", tt.formats, got, tt.want)
		}
	}
}
