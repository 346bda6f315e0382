// errors.go: translator error kinds and single-line rendering.
//
// What this file does
// -------------------
// Generalizes the teacher's caret-snippet error wrapper (originally built
// for *LexError/*ParseError/*RuntimeError) into three fatal error kinds:
// UnsupportedSexp, StructuralError, and InternalInvariant. Unlike the
// teacher's multi-line caret snippet (it had the raw source text on hand
// to render one), this core only ever sees the AST — there is no source
// string to slice a context line out of — so rendering stays a plain
// one-liner: "<reason> :<file>:<line>".
//
// Propagation follows the teacher's "wrap at the edges, panic in the
// middle" discipline (interpreter_exec.go, modules.go): every emitter
// calls unsupportedSexp()/structural()/internalInvariant() (or panics
// with structuralf()'s result) to raise a *TranslateError, and Parse is the
// single recover() boundary (assemble.go), exactly mirroring
// WrapErrorWithSource being the one place the teacher's caller touches a
// raw *LexError/*ParseError.
//
// Dependencies (other files)
// ---------------------------
//   - assemble.go: recovers *TranslateError at the Parse boundary.
//   - emitter.go and friends: call unsupportedSexp/structural/structuralf/
//     internalInvariant (and warn, in diagnostics.go).
package opal

import "fmt"

// ErrorKind distinguishes the three fatal error kinds this package raises.
type ErrorKind int

const (
	// KindUnsupportedSexp: the dispatcher encountered an unknown tag.
	KindUnsupportedSexp ErrorKind = iota
	// KindStructuralError: a well-formed sexp with an impossible shape.
	KindStructuralError
	// KindInternalInvariant: a translator-internal invariant failed
	// (temp not queued, scope stack imbalance). Implementations assert.
	KindInternalInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedSexp:
		return "UnsupportedSexp"
	case KindStructuralError:
		return "StructuralError"
	case KindInternalInvariant:
		return "InternalInvariant"
	default:
		return "Error"
	}
}

// TranslateError is the single error type this package raises. Callers
// catch it at the Parse boundary; there is no recovery mid-translation.
type TranslateError struct {
	Kind    ErrorKind
	Message string
	File    string
	Line    int
}

// Error renders the single-line message: "<reason> :<file>:<line>".
func (e *TranslateError) Error() string {
	return fmt.Sprintf("%s :%s:%d", e.Message, e.File, e.Line)
}

// unsupportedSexp panics with a KindUnsupportedSexp error naming the tag
// the dispatcher could not match. Called from Emitter.walk's default case.
func unsupportedSexp(line int, tag string) {
	panic(&TranslateError{Kind: KindUnsupportedSexp, Message: fmt.Sprintf("Unsupported sexp: %s", tag), Line: line})
}

// structural panics with a KindStructuralError error. Used throughout the
// emitters for well-formed-but-impossible shapes: break outside
// iter/while, return in expression position, bad class receiver, bad
// defined? operand, bad dstr/dxstr/dsym part, unsupported masgn rhs, bad
// lit kind, and others like them.
func structural(line int, msg string) {
	panic(&TranslateError{Kind: KindStructuralError, Message: msg, Line: line})
}

func structuralf(line int, format string, args ...any) *TranslateError {
	return &TranslateError{Kind: KindStructuralError, Message: fmt.Sprintf(format, args...), Line: line}
}

// internalInvariant panics with a KindInternalInvariant error. Used for
// conditions that should be impossible if every emitter obeys its
// contract (temp pool imbalance, scope stack underflow).
func internalInvariant(line int, msg string) {
	panic(&TranslateError{Kind: KindInternalInvariant, Message: msg, Line: line})
}

// withFile stamps File onto a *TranslateError that didn't have one yet
// (emitters raise without knowing the overall file name; Parse's recover
// fills it in once, at the boundary).
func withFile(err *TranslateError, file string) *TranslateError {
	if err.File == "" {
		err.File = file
	}
	return err
}
