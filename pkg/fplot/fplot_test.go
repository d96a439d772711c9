package fplot

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func newTestPlotter(t *testing.T, opts ...Option) *Plotter {
	t.Helper()
	p, err := New(append([]Option{WithMemoryHistory()}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func req(formula, min, max, step string) Request {
	return Request{Formula: formula, Min: min, Max: max, Step: step, Angle: Radians}
}

func yAt(t *testing.T, s Series, x float64) float64 {
	t.Helper()
	for _, p := range s {
		if p.X == x {
			if !p.Defined {
				t.Fatalf("y(%v) is undefined", x)
			}
			return p.Y
		}
	}
	t.Fatalf("no point at x=%v", x)
	return 0
}

func TestBuildEndToEnd(t *testing.T) {
	p := newTestPlotter(t)

	res, err := p.Build(context.Background(), req("2x^2+1", "-5", "5", "1"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.Canonical.Normalized != "2*x^2+1" {
		t.Errorf("normalized: got %q", res.Canonical.Normalized)
	}
	if !strings.Contains(res.Canonical.Eval, "**") {
		t.Errorf("eval form should use **, got %q", res.Canonical.Eval)
	}
	if len(res.Series) != 11 {
		t.Fatalf("expected 11 points, got %d", len(res.Series))
	}
	for _, pt := range res.Series {
		if !pt.Defined {
			t.Errorf("unexpected gap at x=%v", pt.X)
		}
	}
	for x, want := range map[float64]float64{0: 1, 2: 9, -2: 9} {
		if got := yAt(t, res.Series, x); got != want {
			t.Errorf("y(%v) = %v, want %v", x, got, want)
		}
	}

	if h := p.History(); len(h) != 1 || h[0] != "2x^2+1" {
		t.Errorf("expected raw formula in history, got %v", h)
	}
}

func TestBuildUnaryPlus(t *testing.T) {
	p := newTestPlotter(t)

	for in, want := range map[string]float64{"+x": 2, "2*+x": 4, "x^+2": 4, "sin(+x)": math.Sin(2)} {
		res, err := p.Build(context.Background(), req(in, "-5", "5", "1"))
		if err != nil {
			t.Fatalf("Build(%q): %v", in, err)
		}
		if got := yAt(t, res.Series, 2); math.Abs(got-want) > 1e-12 {
			t.Errorf("%q: y(2) = %v, want %v", in, got, want)
		}
	}
}

func TestBuildExponentNotation(t *testing.T) {
	p := newTestPlotter(t)

	tests := []struct {
		in   string
		want float64
	}{
		{"1e5", 100000},
		{"1.5e-3", 0.0015},
		{"2.5e-1*x", 0.5},
		{"2e", 2 * math.E},
	}
	for _, tt := range tests {
		res, err := p.Build(context.Background(), req(tt.in, "-5", "5", "1"))
		if err != nil {
			t.Fatalf("Build(%q): %v", tt.in, err)
		}
		if got := yAt(t, res.Series, 2); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%q (eval %q): y(2) = %v, want %v", tt.in, res.Canonical.Eval, got, tt.want)
		}
	}
}

func TestBuildPreflightOrder(t *testing.T) {
	p := newTestPlotter(t)

	tests := []struct {
		name string
		req  Request
		want Kind
	}{
		{"empty formula first", req("  ", "a", "b", "c"), KindEmptyFormula},
		{"numbers required", req("x", "abc", "10", "0.1"), KindNumbersRequired},
		{"numbers required step", req("x", "-10", "10", ""), KindNumbersRequired},
		{"infinite is not a number", req("x", "-inf", "10", "0.1"), KindNumbersRequired},
		{"min before step", req("x", "5", "1", "-1"), KindMinNotLessThanMax},
		{"min equal max", req("x", "1", "1", "0.1"), KindMinNotLessThanMax},
		{"step positive", req("x", "-10", "10", "0"), KindStepNotPositive},
		{"too many points", req("x", "-10", "10", "0.0000001"), KindTooManyPoints},
		{"preflight before parse", req("x+", "1", "0", "1"), KindMinNotLessThanMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Build(context.Background(), tt.req)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if e.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, e.Kind)
			}
		})
	}
}

func TestBuildFormulaErrors(t *testing.T) {
	p := newTestPlotter(t)

	tests := []struct {
		formula string
		kind    Kind
		token   string
	}{
		{"y+1", KindSymbolNotAllowed, "y"},
		{"log", KindSymbolNotAllowed, "log"},
		{"tanh(x)", KindFunctionNotAllowed, "tanh"},
		{"x%2", KindOperatorNotAllowed, "%"},
		{"x=1", KindNodeNotAllowed, "AssignmentNode"},
		{"(x+", KindSyntax, ""},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			_, err := p.Build(context.Background(), req(tt.formula, "-1", "1", "0.5"))
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, e.Kind)
			}
			if tt.token != "" && e.Token != tt.token {
				t.Errorf("expected token %q, got %q", tt.token, e.Token)
			}
		})
	}

	if h := p.History(); len(h) != 0 {
		t.Errorf("failed builds must not be recorded, got %v", h)
	}
}

func TestBuildAllUndefined(t *testing.T) {
	p := newTestPlotter(t)

	_, err := p.Build(context.Background(), req("1/0", "-1", "1", "0.5"))
	if !errors.Is(err, &Error{Kind: KindDivisionByZero}) {
		t.Errorf("1/0: expected division-by-zero, got %v", err)
	}

	_, err = p.Build(context.Background(), req("sqrt(x)", "-2", "-1", "0.5"))
	if !errors.Is(err, &Error{Kind: KindUndefinedOnInterval}) {
		t.Errorf("sqrt on negatives: expected undefined-on-interval, got %v", err)
	}

	if h := p.History(); len(h) != 0 {
		t.Errorf("undefined builds must not be recorded, got %v", h)
	}
}

func TestBuildDegrees(t *testing.T) {
	p := newTestPlotter(t)

	deg, err := p.Build(context.Background(), Request{Formula: "sin(x)", Min: "0", Max: "90", Step: "45", Angle: Degrees})
	if err != nil {
		t.Fatalf("Build deg: %v", err)
	}
	if got := yAt(t, deg.Series, 90); math.Abs(got-math.Sin(math.Pi/2)) > 1e-12 {
		t.Errorf("sin(90deg) = %v, want 1", got)
	}
}

func TestBuildCommaDecimalFields(t *testing.T) {
	p := newTestPlotter(t)

	res, err := p.Build(context.Background(), req("x", "0", "1", "0,5"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Series) != 3 {
		t.Errorf("expected 3 points, got %d", len(res.Series))
	}
}

func TestHistoryLimitOption(t *testing.T) {
	p := newTestPlotter(t, WithHistoryLimit(2))

	for _, f := range []string{"x", "x+1", "x+2"} {
		if _, err := p.Build(context.Background(), req(f, "0", "1", "1")); err != nil {
			t.Fatalf("Build(%q): %v", f, err)
		}
	}
	h := p.History()
	if len(h) != 2 || h[0] != "x+2" || h[1] != "x+1" {
		t.Errorf("expected [x+2 x+1], got %v", h)
	}

	if err := p.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	if h := p.History(); len(h) != 0 {
		t.Errorf("expected empty history, got %v", h)
	}
}

func TestSQLiteHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fplot.db")

	p, err := New(WithSQLiteHistory(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.Build(context.Background(), req("cos(x)", "0", "1", "0.5")); err != nil {
		t.Fatalf("Build: %v", err)
	}
	p.Close()

	p2, err := New(WithSQLiteHistory(path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p2.Close()
	if h := p2.History(); len(h) != 1 || h[0] != "cos(x)" {
		t.Errorf("expected [cos(x)], got %v", h)
	}
}

func TestCheck(t *testing.T) {
	p := newTestPlotter(t)

	c, err := p.Check("2sin x")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if c.Display != "2 * sin(x)" {
		t.Errorf("display: got %q", c.Display)
	}

	if _, err := p.Check("foo(x)"); Message(err) != `Function "foo" is not allowed.` {
		t.Errorf("unexpected message %q", Message(err))
	}
}

func TestMessage(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Errorf("nil: got %q", got)
	}
	if got := Message(errors.New("database is locked")); got != "An error occurred." {
		t.Errorf("uncategorized errors must be generic, got %q", got)
	}
	if got := Message(&Error{Kind: KindSymbolNotAllowed, Token: "y"}); got != `Symbol "y" is not allowed.` {
		t.Errorf("got %q", got)
	}
	if got := Message(&Error{Kind: KindStepNotPositive}); got != "Step must be a positive number." {
		t.Errorf("got %q", got)
	}
}
