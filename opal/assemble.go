// assemble.go — the public entry point and top-level assembler.
//
// Grounded on the teacher's public Import* functions (modules.go:
// ImportAST/ImportCode/ImportFile) for the "small public surface,
// options struct, single recover()-guarded boundary" shape: every one of
// those funnels into a private implementation that panics on failure and
// recovers once at its own outermost call, exactly mirrored here by
// Parse's single defer/recover converting a panicked *TranslateError into
// a returned error.
package opal

import (
	"strconv"
	"strings"
)

// Parse translates source (a root sexp) into the target program, applying
// opts over DefaultOptions() in order.
func Parse(source Node, opts ...Option) (result string, err error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	o = o.resolved()

	defer func() {
		if r := recover(); r == nil {
			return
		} else if te, ok := r.(*TranslateError); ok {
			err = withFile(te, o.File)
		} else {
			panic(r)
		}
	}()

	e := newEmitter(o)
	e.pushScope(ScopeTop, "")
	defer e.popScope()

	bodyFrags := e.walk(source, LevelStmt)
	bodyText := renderFrags(bodyFrags, o.SourceMapEnabled)
	helperLine := buildHelperVarLine(e.helpers)

	var b strings.Builder
	if o.SourceMapEnabled {
		b.WriteString("//@ sourceMappingURL=/__opal_source_maps__/" + o.File + ".js.map\n")
		b.WriteString("/*-file:" + o.SourceFile + "-*/\n")
	}
	b.WriteString("(function(__opal) {\n  " + helperLine + "\n" + bodyText + "\n})(Opal);\n")
	return b.String(), nil
}

// renderFrags concatenates frags in traversal order, prefixing each
// positioned fragment's text with `/*:<line>*/` when source maps are
// enabled.
func renderFrags(frags []Fragment, sourceMapEnabled bool) string {
	lines := make([]string, len(frags))
	for i, f := range frags {
		if sourceMapEnabled && !f.Origin.IsZero() {
			lines[i] = "/*:" + strconv.Itoa(f.Origin.Line) + "*/" + f.Text
		} else {
			lines[i] = f.Text
		}
	}
	return strings.Join(lines, "\n")
}

// buildHelperVarLine renders the single prologue `var` statement, fixed
// verbatim for its leading six bindings, extended with one
// `__<name> = __opal.<name>` per additional required helper.
func buildHelperVarLine(h *HelperSet) string {
	decls := []string{
		"self = __opal.top",
		"__scope = __opal",
		"$mm = __opal.mm",
		"nil = __opal.nil",
		"__breaker = __opal.breaker",
		"__slice = __opal.slice",
	}
	for _, name := range h.Ordered() {
		if name == "breaker" || name == "slice" {
			continue
		}
		decls = append(decls, "__"+name+" = __opal."+name)
	}
	return "var " + strings.Join(decls, ",\n      ") + ";"
}
