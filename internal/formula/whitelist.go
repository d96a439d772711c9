// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package formula turns untrusted user text into a validated, canonical
// formula of one variable.
package formula

import "sort"

// Functions maps each allowed function name to its argument count.
var Functions = map[string]int{
	"sin":  1,
	"cos":  1,
	"tan":  1,
	"asin": 1,
	"acos": 1,
	"atan": 1,
	"log":  1,
	"ln":   1,
	"exp":  1,
	"abs":  1,
	"sqrt": 1,
	"pow":  2,
	"cbrt": 1,
}

// Symbols are the free names a formula may reference.
var Symbols = map[string]bool{
	"x":  true,
	"pi": true,
	"e":  true,
}

// Operators are the allowed unary and binary operators.
var Operators = map[string]bool{
	"+": true,
	"-": true,
	"*": true,
	"/": true,
	"^": true,
}

// IsFunction reports whether name is an allowed function.
func IsFunction(name string) bool {
	_, ok := Functions[name]
	return ok
}

// IsSymbol reports whether name is an allowed free symbol.
func IsSymbol(name string) bool {
	return Symbols[name]
}

// Names returns every allowed function and symbol name, sorted.
func Names() []string {
	names := make([]string, 0, len(Functions)+len(Symbols))
	for n := range Functions {
		names = append(names, n)
	}
	for n := range Symbols {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
