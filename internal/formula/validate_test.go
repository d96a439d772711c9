package formula

import (
	"errors"
	"testing"
)

func TestWhitelistAccepts(t *testing.T) {
	inputs := []string{
		"tan(x)", "cos(x)", "sin(x)", "log(x)", "ln(x)", "exp(x)", "abs(x)",
		"sqrt(x)", "pow(x,2)", "cbrt(x)", "asin(x)", "acos(x)", "atan(x)",
		"x", "pi", "e", "x+1", "x-1", "x*2", "x/2", "x^2", "x**2", "-x", "+x",
		"(x)", "2.5", "sin(cos(x))*e^-x/pi",
	}
	for _, in := range inputs {
		if _, err := ParseAndValidate(in); err != nil {
			t.Errorf("ParseAndValidate(%q): %v", in, err)
		}
	}
}

func TestWhitelistRejects(t *testing.T) {
	tests := []struct {
		input string
		code  Code
		token string
	}{
		{"y", CodeSymbolNotAllowed, "y"},
		{"x+y", CodeSymbolNotAllowed, "y"},
		{"log", CodeSymbolNotAllowed, "log"},
		{"sin+1", CodeSymbolNotAllowed, "sin"},
		{"tanh(x)", CodeFunctionNotAllowed, "tanh"},
		{"x(1)", CodeFunctionNotAllowed, "x"},
		{"x%2", CodeOperatorNotAllowed, "%"},
		{"x!", CodeOperatorNotAllowed, "!"},
		{"x<1", CodeOperatorNotAllowed, "<"},
		{"x==1", CodeOperatorNotAllowed, "=="},
		{"y=x", CodeNodeNotAllowed, "AssignmentNode"},
		{"f(x)=x", CodeNodeNotAllowed, "FunctionAssignmentNode"},
		{"x;x", CodeNodeNotAllowed, "BlockNode"},
		{"sin(x,1)", CodeSyntax, "sin"},
		{"pow(x)", CodeSyntax, "pow"},
		{"x+", CodeSyntax, ""},
		{"", CodeEmpty, ""},
		{"   ", CodeEmpty, ""},
	}
	for _, tt := range tests {
		_, err := ParseAndValidate(tt.input)
		var fe *Error
		if !errors.As(err, &fe) {
			t.Errorf("ParseAndValidate(%q): expected *Error, got %v", tt.input, err)
			continue
		}
		if fe.Code != tt.code || fe.Token != tt.token {
			t.Errorf("ParseAndValidate(%q): got (%s, %q), want (%s, %q)",
				tt.input, fe.Code, fe.Token, tt.code, tt.token)
		}
	}
}

func TestDisambiguation(t *testing.T) {
	if _, err := ParseAndValidate("log(x)"); err != nil {
		t.Errorf("log(x) should validate: %v", err)
	}
	_, err := ParseAndValidate("log")
	if !errors.Is(err, &Error{Code: CodeSymbolNotAllowed}) {
		t.Errorf("bare log should be symbol-not-allowed, got %v", err)
	}
}

func TestValidateVisitsEveryNode(t *testing.T) {
	// The offending name sits deep in the last argument.
	_, err := ParseAndValidate("sin(x)+cos(x)*pow(x, abs(1+z))")
	var fe *Error
	if !errors.As(err, &fe) || fe.Token != "z" {
		t.Errorf("expected z to be found, got %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Code: CodeFunctionNotAllowed, Token: "tanh", Pos: 0}
	if got := err.Error(); got != `function-not-allowed: function "tanh" is not allowed (position 0)` {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(err, &Error{Code: CodeFunctionNotAllowed}) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(err, &Error{Code: CodeSyntax}) {
		t.Error("errors.Is must not match a different code")
	}
}
