// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package fplot

import (
	"errors"
	"fmt"

	"nickandperla.net/fplot/internal/formula"
	"nickandperla.net/fplot/internal/worker"
)

// Kind is a user-visible error category.
type Kind string

const (
	KindNumbersRequired     Kind = "numbers-required"
	KindMinNotLessThanMax   Kind = "min-not-less-than-max"
	KindStepNotPositive     Kind = "step-not-positive"
	KindTooManyPoints       Kind = "too-many-points"
	KindEmptyFormula        Kind = Kind(formula.CodeEmpty)
	KindSyntax              Kind = Kind(formula.CodeSyntax)
	KindSymbolNotAllowed    Kind = Kind(formula.CodeSymbolNotAllowed)
	KindOperatorNotAllowed  Kind = Kind(formula.CodeOperatorNotAllowed)
	KindFunctionNotAllowed  Kind = Kind(formula.CodeFunctionNotAllowed)
	KindNodeNotAllowed      Kind = Kind(formula.CodeNodeNotAllowed)
	KindCalculation         Kind = "calculation-error"
	KindDivisionByZero      Kind = "division-by-zero"
	KindUndefinedOnInterval Kind = "undefined-on-interval"
	KindBusy                Kind = "busy"
	KindUnknown             Kind = "unknown"
)

// Error is a categorized build failure. Token carries the offending name,
// operator or node kind for whitelist violations.
type Error struct {
	Kind  Kind
	Token string
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.message()
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) message() string {
	switch e.Kind {
	case KindNumbersRequired:
		return "All fields must be numbers."
	case KindMinNotLessThanMax:
		return `"From" must be less than "To".`
	case KindStepNotPositive:
		return "Step must be a positive number."
	case KindTooManyPoints:
		return "The range and step produce too many points."
	case KindEmptyFormula:
		return "Formula cannot be empty."
	case KindSyntax:
		return "Invalid formula syntax or structure."
	case KindSymbolNotAllowed:
		return fmt.Sprintf("Symbol %q is not allowed.", e.Token)
	case KindOperatorNotAllowed:
		return fmt.Sprintf("Operator %q is not allowed.", e.Token)
	case KindFunctionNotAllowed:
		return fmt.Sprintf("Function %q is not allowed.", e.Token)
	case KindNodeNotAllowed:
		return fmt.Sprintf("Node type %q is not allowed.", e.Token)
	case KindCalculation:
		return "Could not evaluate the function."
	case KindDivisionByZero:
		return "Division by zero in the expression, or the function is undefined on the whole interval."
	case KindUndefinedOnInterval:
		return "The function is undefined on the selected interval."
	case KindBusy:
		return "A plot is already being built."
	default:
		return "An error occurred."
	}
}

// Message returns the short human-readable text for err. Errors that do
// not belong to a category get a single generic message; internal error
// text is never returned.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return classify(err).message()
}

// classify maps any error onto an *Error.
func classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var fe *formula.Error
	if errors.As(err, &fe) {
		return &Error{Kind: Kind(fe.Code), Token: fe.Token, Err: err}
	}
	if errors.Is(err, worker.ErrBusy) {
		return &Error{Kind: KindBusy, Err: err}
	}
	return &Error{Kind: KindUnknown, Err: err}
}
