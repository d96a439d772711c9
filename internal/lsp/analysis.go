// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package lsp

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"nickandperla.net/fplot/internal/formula"
	"nickandperla.net/fplot/pkg/fplot"
)

// Completion is a whitelisted name offered while typing.
type Completion struct {
	Name     string
	Function bool
	Detail   string
}

// lineAt returns line n of text without its line ending.
func lineAt(text string, n int) (string, bool) {
	lines := strings.Split(text, "\n")
	if n < 0 || n >= len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n], "\r"), true
}

// isFormula reports whether line holds a formula rather than a comment or
// nothing.
func isFormula(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}

// Diagnose checks every formula line of text. A diagnostic covers the
// offending name when it can be found on the line, otherwise the whole
// formula.
func Diagnose(text string) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if !isFormula(line) {
			continue
		}
		_, err := formula.Prepare(line)
		if err == nil {
			continue
		}

		start, end := span(line, errorToken(err))
		severity := protocol.DiagnosticSeverityError
		source := lsName
		diags = append(diags, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(i), Character: protocol.UInteger(utf16Len(line[:start]))},
				End:   protocol.Position{Line: protocol.UInteger(i), Character: protocol.UInteger(utf16Len(line[:end]))},
			},
			Severity: &severity,
			Source:   &source,
			Message:  fplot.Message(err),
		})
	}
	return diags
}

func errorToken(err error) string {
	var fe *formula.Error
	if !errors.As(err, &fe) {
		return ""
	}
	switch fe.Code {
	case formula.CodeSymbolNotAllowed, formula.CodeOperatorNotAllowed, formula.CodeFunctionNotAllowed:
		return fe.Token
	}
	return ""
}

// span returns the byte range of tok in line, or of the trimmed line when
// tok is empty or absent. Normalization lowercases, so the match ignores
// case.
func span(line, tok string) (int, int) {
	if tok != "" {
		if i := strings.Index(strings.ToLower(line), tok); i >= 0 && i+len(tok) <= len(line) {
			return i, i + len(tok)
		}
	}
	start := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
	end := len(strings.TrimRightFunc(line, unicode.IsSpace))
	return start, end
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Hover describes the formula on line n: its canonical forms, or the
// reason it is refused.
func Hover(text string, n int) (string, bool) {
	line, ok := lineAt(text, n)
	if !ok || !isFormula(line) {
		return "", false
	}
	c, err := formula.Prepare(line)
	if err != nil {
		return fplot.Message(err), true
	}
	return fmt.Sprintf("y = `%s`\n\nevaluated as `%s`", c.Display, c.Eval), true
}

// Complete offers the whitelisted names that extend the word before
// column col on line n.
func Complete(text string, n, col int) []Completion {
	line, ok := lineAt(text, n)
	if !ok || strings.HasPrefix(strings.TrimSpace(line), "#") {
		return nil
	}
	prefix := wordBefore(line, col)

	var out []Completion
	for _, name := range formula.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if arity, ok := formula.Functions[name]; ok {
			out = append(out, Completion{Name: name, Function: true, Detail: fmt.Sprintf("function, %d argument(s)", arity)})
			continue
		}
		out = append(out, Completion{Name: name, Detail: "symbol"})
	}
	return out
}

// wordBefore returns the lowercase letters immediately before the UTF-16
// column col.
func wordBefore(line string, col int) string {
	units := 0
	end := len(line)
	for i, r := range line {
		if units >= col {
			end = i
			break
		}
		units += utf16.RuneLen(r)
	}
	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if !unicode.IsLetter(r) {
			break
		}
		start -= size
	}
	return strings.ToLower(line[start:end])
}
