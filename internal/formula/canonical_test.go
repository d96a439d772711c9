package formula

import (
	"errors"
	"testing"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		input      string
		normalized string
		display    string
		eval       string
	}{
		{"2x^2+1", "2*x^2+1", "2 * x^2 + 1", "2*x**2+1"},
		{"sin x * x", "sin(x)*x", "sin(x) * x", "sin(x)*x"},
		{"(x+1)(x-1)", "(x+1)*(x-1)", "(x + 1) * (x - 1)", "(x+1)*(x-1)"},
		{"e^-x", "e^-x", "e^-x", "e**(-x)"},
		{"((x))^2", "((x))^2", "x^2", "x**2"},
		{"pow(x, 1,5)", "pow(x,1,5)", "", ""},
	}
	for _, tt := range tests {
		c, err := Prepare(tt.input)
		if tt.display == "" {
			if err == nil {
				t.Errorf("Prepare(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Prepare(%q): %v", tt.input, err)
			continue
		}
		if c.Normalized != tt.normalized || c.Display != tt.display || c.Eval != tt.eval {
			t.Errorf("Prepare(%q) = %+v, want {%s %s %s}", tt.input, c, tt.normalized, tt.display, tt.eval)
		}
	}
}

func TestCanonicalFormsRevalidate(t *testing.T) {
	for _, in := range []string{"2x^2+1", "-x^2", "2^-x", "sin x cos x", "pow(x,2)/sqrt(abs(x))", "pi e x"} {
		c, err := Prepare(in)
		if err != nil {
			t.Fatalf("Prepare(%q): %v", in, err)
		}
		for _, form := range []string{c.Display, c.Eval} {
			root, err := ParseAndValidate(form)
			if err != nil {
				t.Errorf("%q: canonical form %q does not revalidate: %v", in, form, err)
				continue
			}
			if again := Canonicalize(root); again.Display != c.Display || again.Eval != c.Eval {
				t.Errorf("%q: canonical forms drift: %+v vs %+v", in, again, c)
			}
		}
	}
}

func TestPrepareEmpty(t *testing.T) {
	if _, err := Prepare(" \t "); !errors.Is(err, &Error{Code: CodeEmpty}) {
		t.Errorf("expected empty-formula, got %v", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(Functions)+len(Symbols) {
		t.Fatalf("expected %d names, got %d", len(Functions)+len(Symbols), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
	if !IsFunction("pow") || IsFunction("x") || !IsSymbol("e") || IsSymbol("exp") {
		t.Error("whitelist lookups disagree with tables")
	}
}
