package export

import (
	"bytes"
	"strings"
	"testing"

	"nickandperla.net/fplot/internal/sample"
)

func TestCSV(t *testing.T) {
	s := sample.Series{
		{X: -1, Y: 0.5, Defined: true},
		{X: 0},
		{X: 1.25, Y: 2, Defined: true},
	}

	got, err := CSV(s)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	want := "x,y\n-1,0.5\n0,\n1.25,2\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCSVEmpty(t *testing.T) {
	got, err := CSV(nil)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name, fallback, want string
	}{
		{"sin(x)", "data", "sin_x_"},
		{"x^2 + 1", "data", "x_2___1"},
		{"функция", "data", "функция"},
		{"", "graph", "graph"},
		{"   ", "data", "data"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.name, tt.fallback); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCSVFilename(t *testing.T) {
	if got := CSVFilename("sin(x)"); got != "data_sin_x_.csv" {
		t.Errorf("got %q", got)
	}
	if got := CSVFilename(""); got != "data.csv" {
		t.Errorf("got %q", got)
	}
}

func TestWriteTableSkipsGaps(t *testing.T) {
	s := sample.Series{
		{X: 0, Y: 1, Defined: true},
		{X: 0.5},
		{X: 1, Y: -2, Defined: true},
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, s); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "1.000000") || !strings.Contains(out, "-2.000000") {
		t.Errorf("missing values in table:\n%s", out)
	}
	if strings.Contains(out, "0.500000") {
		t.Errorf("undefined point should not be shown:\n%s", out)
	}
	if !strings.Contains(out, "(3 points, 2 shown)") {
		t.Errorf("missing summary line:\n%s", out)
	}
}
