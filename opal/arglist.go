// arglist.go — shared argument-list compilation, reused by call
// (emit_call.go), yield/returnable_yield (emit_control.go), and super
// (emit_super.go).
//
// Grounded on the teacher's variadic-call marshaling in ffi.go (building a
// Go []Value to hand a host function, handling a trailing splat the same
// "collect fixed args, then fold in the variable tail" way), generalized
// from "build a Go slice" to "build target-language source text".
package opal

import "strings"

// hasSplatArg reports whether any element of args is a splat wrapper.
func hasSplatArg(args []Node) bool {
	for _, a := range args {
		if a.Kind == "splat" {
			return true
		}
	}
	return false
}

// argsCommaText renders a splat-free argument list as comma-joined
// expression text, for the `.call(recv, a, b)` invocation form.
func (e *Emitter) argsCommaText(args []Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = joinFragText(e.walk(a, LevelExpr))
	}
	return strings.Join(parts, ", ")
}

// arglistChainText renders an argument list containing one or more splats
// as a concatenation chain: `[fixed…].concat(splat).concat([more…]).
// concat(…)`, for the `.apply(recv, argsArr)` invocation form.
func (e *Emitter) arglistChainText(args []Node) string {
	var parts []string
	var run []string
	flush := func() {
		parts = append(parts, "["+strings.Join(run, ", ")+"]")
		run = nil
	}
	for _, a := range args {
		if a.Kind == "splat" {
			flush()
			parts = append(parts, joinFragText(e.walk(a.Child(0), LevelExpr)))
		} else {
			run = append(run, joinFragText(e.walk(a, LevelExpr)))
		}
	}
	flush()
	text := parts[0]
	for _, p := range parts[1:] {
		text += ".concat(" + p + ")"
	}
	return text
}
