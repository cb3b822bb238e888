package ui

import (
	"strings"
	"testing"
)

func TestTableColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"abc123", "First item", "todo"},
			{"def456", "Second item with longer name", "completed"},
		},
	}

	widths := table.ColumnWidths()

	if widths[0] != 6 {
		t.Errorf("expected width 6 for first column, got %d", widths[0])
	}
	if widths[1] != 28 {
		t.Errorf("expected width 28 for second column, got %d", widths[1])
	}
	if widths[2] != 9 {
		t.Errorf("expected width 9 for third column, got %d", widths[2])
	}
}

func TestTableColumnWidthsMaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Description"},
		Rows:     [][]string{{"a", "This is a very long description that should be capped"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()
	if widths[1] != 20 {
		t.Errorf("expected capped width 20, got %d", widths[1])
	}
}

func TestTableRender(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"1", "Design schema"},
			{"2", "Build API"},
		},
	}

	output := table.Render()

	for _, want := range []string{"ID", "Title", "Design schema", "Build API", "─"} {
		if !strings.Contains(output, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestTableRenderEmpty(t *testing.T) {
	table := &Table{}
	if out := table.Render(); out != "" {
		t.Errorf("empty table should render empty string, got %q", out)
	}
}

func TestTableRenderTruncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long for the column"}},
		MaxWidth: 10,
	}

	if !strings.Contains(table.Render(), "…") {
		t.Error("expected truncation indicator in output")
	}
}

func TestTableRenderRowsWithFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"1", "Design schema"},
		},
	}

	output := table.Render()
	if !strings.Contains(output, "Design schema") {
		t.Error("short row should still render")
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header, separator and one data row, got %d lines", len(lines))
	}
}

func TestTruncateID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"abc123def456", "abc123"},
		{"short", "short"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := TruncateID(tc.input); got != tc.expected {
			t.Errorf("TruncateID(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
	}

	for _, tc := range tests {
		if got := padRight(tc.input, tc.width); got != tc.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.expected)
		}
	}
}
