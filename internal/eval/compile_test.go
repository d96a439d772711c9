package eval

import (
	"errors"
	"math"
	"testing"

	"nickandperla.net/fplot/internal/formula"
)

const tolerance = 1e-9

func compile(t *testing.T, evalForm string, mode AngleMode) *Program {
	t.Helper()
	p, err := Compile(evalForm, mode)
	if err != nil {
		t.Fatalf("Compile(%q): %v", evalForm, err)
	}
	return p
}

func TestEval(t *testing.T) {
	tests := []struct {
		form string
		x    float64
		want float64
	}{
		{"2*x**2+1", 2, 9},
		{"2*x**2+1", -2, 9},
		{"-(x**2)", 3, -9},
		{"2**(3**2)", 0, 512},
		{"(x-1)-1", 5, 3},
		{"x-(1-1)", 5, 5},
		{"log(x)", 1000, 3},
		{"ln(e)", 0, 1},
		{"exp(0)", 0, 1},
		{"abs(x)", -4, 4},
		{"sqrt(x)", 16, 4},
		{"cbrt(x)", -27, -3},
		{"pow(x,3)", 2, 8},
		{"sin(pi/2)", 0, 1},
		{"cos(0)", 0, 1},
		{"tan(0)", 0, 0},
		{"asin(1)", 0, math.Pi / 2},
		{"acos(1)", 0, 0},
		{"atan(1)", 0, math.Pi / 4},
		{"x/(-2)", 3, -1.5},
	}
	for _, tt := range tests {
		y, ok := compile(t, tt.form, Radians).Eval(tt.x)
		if !ok {
			t.Errorf("%s at %v: undefined", tt.form, tt.x)
			continue
		}
		if math.Abs(y-tt.want) > tolerance {
			t.Errorf("%s at %v = %v, want %v", tt.form, tt.x, y, tt.want)
		}
	}
}

func TestEvalUndefined(t *testing.T) {
	tests := []struct {
		form string
		x    float64
		inf  bool
	}{
		{"1/x", 0, true},
		{"1/0", 3, true},
		{"ln(x)", 0, true},
		{"sqrt(x)", -1, false},
		{"log(x)", -1, false},
		{"asin(x)", 2, false},
	}
	for _, tt := range tests {
		y, ok := compile(t, tt.form, Radians).Eval(tt.x)
		if ok {
			t.Errorf("%s at %v: expected undefined, got %v", tt.form, tt.x, y)
			continue
		}
		if math.IsInf(y, 0) != tt.inf {
			t.Errorf("%s at %v: got %v, want infinite=%v", tt.form, tt.x, y, tt.inf)
		}
	}
}

func TestDegrees(t *testing.T) {
	deg, _ := compile(t, "sin(x)", Degrees).Eval(90)
	rad, _ := compile(t, "sin(x)", Radians).Eval(math.Pi / 2)
	if math.Abs(deg-rad) > tolerance {
		t.Errorf("sin(90 deg) = %v, sin(pi/2 rad) = %v", deg, rad)
	}

	// The conversion applies to x, not to constants.
	y, _ := compile(t, "cos(pi)", Degrees).Eval(0)
	if math.Abs(y+1) > tolerance {
		t.Errorf("cos(pi) in degrees mode = %v, want -1", y)
	}
}

func TestCompileRefuses(t *testing.T) {
	for _, form := range []string{"tanh(x)", "x;x", "x==1", "x^2", "2 * x", "-x**2"} {
		if _, err := Compile(form, Radians); err == nil {
			t.Errorf("Compile(%q): expected error", form)
		}
	}

	_, err := Compile("y+1", Radians)
	if !errors.Is(err, &formula.Error{Code: formula.CodeSymbolNotAllowed}) {
		t.Errorf("Compile(y+1): expected symbol-not-allowed, got %v", err)
	}
}

func TestParseAngleMode(t *testing.T) {
	for in, want := range map[string]AngleMode{"rad": Radians, "Radians": Radians, " deg ": Degrees, "degree": Degrees} {
		got, ok := ParseAngleMode(in)
		if !ok || got != want {
			t.Errorf("ParseAngleMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseAngleMode("grad"); ok {
		t.Error("grad should not parse")
	}
	if Radians.String() != "rad" || Degrees.String() != "deg" {
		t.Error("unexpected angle mode names")
	}
}

// Display and eval forms of the same formula evaluate identically.
func TestCanonicalRoundTrip(t *testing.T) {
	probes := []float64{-3, -1.5, -0.5, 0.25, 1, 2.75, 4}
	formulas := []string{
		"2x^2+1", "-x^2+3x", "2^-x", "sin x cos x", "x/(x+1)/2", "x-1-2-3",
		"pow(x,2)-sqrt(abs(x))", "e^x/pi", "2^3^x", "ln(abs(x))+log(x^2)",
		"+x", "2*+x", "x^+2", "sin(+x)", "-+x", "2^+(x-1)", "1e2x", "2.5e-1*x", "2e",
	}
	for _, in := range formulas {
		c, err := formula.Prepare(in)
		if err != nil {
			t.Fatalf("Prepare(%q): %v", in, err)
		}
		fromEval := compile(t, c.Eval, Radians)

		// Re-canonicalize the display form and evaluate through it.
		again, err := formula.Prepare(c.Display)
		if err != nil {
			t.Fatalf("%q: display form %q does not revalidate: %v", in, c.Display, err)
		}
		fromDisplay := compile(t, again.Eval, Radians)

		for _, x := range probes {
			a, okA := fromEval.Eval(x)
			b, okB := fromDisplay.Eval(x)
			if okA != okB || (okA && math.Abs(a-b) > tolerance*math.Max(1, math.Abs(a))) {
				t.Errorf("%q at %v: eval form %v (%v), display form %v (%v)", in, x, a, okA, b, okB)
			}
		}
	}
}

func TestPreparedFormulasEvaluate(t *testing.T) {
	tests := []struct {
		in   string
		x    float64
		want float64
	}{
		{"+x", 3, 3},
		{"2*+x", 3, 6},
		{"x^+2", 3, 9},
		{"sin(+x)", 0, 0},
		{"+(x+1)", 1, 2},
		{"1e5", 0, 100000},
		{"1.5e-3x", 2, 0.003},
		{"2.5e-1*x", 4, 1},
		{"2e", 0, 2 * math.E},
		{"2ex", 1, 2 * math.E},
	}
	for _, tt := range tests {
		c, err := formula.Prepare(tt.in)
		if err != nil {
			t.Fatalf("Prepare(%q): %v", tt.in, err)
		}
		got, ok := compile(t, c.Eval, Radians).Eval(tt.x)
		if !ok || math.Abs(got-tt.want) > tolerance {
			t.Errorf("%q (eval %q) at x=%v = %v, %v; want %v", tt.in, c.Eval, tt.x, got, ok, tt.want)
		}
	}
}
