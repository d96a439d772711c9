package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadLineRaw(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		history []string
		want    string
		eof     bool
	}{
		{"plain", "sin x\r", nil, "sin x", false},
		{"backspace", "x^3\x7f2\r", nil, "x^2", false},
		{"left then insert", "x+1\x1b[D\x1b[D2\r", nil, "x2+1", false},
		{"ctrl-u", "junk\x15x\r", nil, "x", false},
		{"utf8 operator", "2×x\r", nil, "2×x", false},
		{"history up", "\x1b[A\r", []string{"tan(x)", "x^2"}, "tan(x)", false},
		{"history up up", "\x1b[A\x1b[A\r", []string{"tan(x)", "x^2"}, "x^2", false},
		{"history down restores draft", "ab\x1b[A\x1b[B\r", []string{"tan(x)"}, "ab", false},
		{"ctrl-d on empty", "\x04", nil, "", true},
		{"eof mid line", "x+", nil, "x+", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, eof := readLineRaw(strings.NewReader(tt.input), &out, tt.history)
			if got != tt.want || eof != tt.eof {
				t.Errorf("got (%q, %v), want (%q, %v)", got, eof, tt.want, tt.eof)
			}
		})
	}
}
