// emitter.go — the translator instance and its tag dispatcher.
//
// Grounded on the teacher's bytecode `emitter` (interpreter_exec.go:
// `type emitter struct { ip *Interpreter; code []uint32; ...; path
// NodePath }`) and its `emitExpr(n S)` tag switch. This core's Emitter
// plays the same role — one mutable instance per translation, walking the
// AST and accumulating output in traversal order — but accumulates
// Fragments instead of packed opcodes, and dispatches into per-concern
// files (emit_literals.go, emit_vars.go, ...) the way the teacher splits
// evaluation across interpreter_exec.go/interpreter_ops.go by concern.
//
// Non-reentrancy: a translator instance holds mutable state and is not
// re-entrant. Each call to Parse constructs a fresh Emitter; nothing
// here is safe to share across concurrent Parse calls, matching the
// teacher's own single-Interpreter-per-run-of-one-script discipline.
package opal

// Emitter is the single mutable translator instance backing one Parse
// call.
type Emitter struct {
	opts Options

	scopes  []*Scope
	helpers *HelperSet
	unique  int
	line    int

	usesFile bool // a `str` literal equal to opts.File was emitted
}

func newEmitter(opts Options) *Emitter {
	return &Emitter{
		opts:    opts,
		helpers: newHelperSet(),
		line:    1,
	}
}

// walk dispatches n to its emitter by tag, updating e.line to n's line
// before recursing. Unknown tags fail with KindUnsupportedSexp.
func (e *Emitter) walk(n Node, level Level) []Fragment {
	if n.IsZero() || n.Kind == "nil" || n.Kind == "none" {
		return Frags(e.emitNilLike(n, level))
	}
	if n.Line > 0 {
		e.line = n.Line
	}

	switch n.Kind {
	// ---- literals & atoms (emit_literals.go) ----
	case "nil":
		return Frags(e.emitNilLike(n, level))
	case "true":
		return Frags(e.emitBoolLit(n, level, true))
	case "false":
		return Frags(e.emitBoolLit(n, level, false))
	case "self":
		return Frags(e.emitSelf(n, level))
	case "lit":
		return Frags(e.emitLit(n, level))
	case "str":
		return Frags(e.emitStr(n, level))
	case "dstr":
		return Frags(e.emitDstr(n, level))
	case "dsym":
		return Frags(e.emitDsym(n, level))
	case "dxstr":
		return Frags(e.emitDxstr(n, level))
	case "xstr":
		return Frags(e.emitXstr(n, level))

	// ---- variables (emit_vars.go) ----
	case "lvar":
		return Frags(e.emitLvar(n, level))
	case "lasgn":
		return Frags(e.emitLasgn(n, level))
	case "ivar":
		return Frags(e.emitIvar(n, level))
	case "iasgn":
		return Frags(e.emitIasgn(n, level))
	case "gvar":
		return Frags(e.emitGvar(n, level))
	case "gasgn":
		return Frags(e.emitGasgn(n, level))
	case "cvar":
		return Frags(e.emitCvar(n, level))
	case "cvasgn", "cvdecl":
		return Frags(e.emitCvasgn(n, level))
	case "const":
		return Frags(e.emitConst(n, level))
	case "cdecl":
		return Frags(e.emitCdecl(n, level))
	case "colon2":
		return Frags(e.emitColon2(n, level))
	case "colon3":
		return Frags(e.emitColon3(n, level))
	case "nth_ref":
		return Frags(e.emitNthRef(n, level))
	case "js_tmp":
		return Frags(e.emitJsTmp(n, level))
	case "yasgn":
		return Frags(e.emitYasgn(n, level))

	// ---- multiple assignment (emit_masgn.go) ----
	case "masgn":
		return Frags(e.emitMasgn(n, level))

	// ---- array/hash literals and standalone splat (emit_collections.go) ----
	case "array":
		return Frags(e.emitArray(n, level))
	case "hash":
		return Frags(e.emitHash(n, level))
	case "splat":
		return Frags(e.emitSplat(n, level))

	// ---- control flow (emit_control.go) ----
	case "block":
		return Frags(e.emitBlock(n, level))
	case "scope":
		return Frags(e.emitScope(n, level))
	case "if":
		return Frags(e.emitIf(n, level))
	case "while":
		return Frags(e.emitWhile(n, level, false))
	case "until":
		return Frags(e.emitWhile(n, level, true))
	case "case":
		return Frags(e.emitCase(n, level))
	case "break":
		return Frags(e.emitBreak(n, level))
	case "next":
		return Frags(e.emitNext(n, level))
	case "redo":
		return Frags(e.emitRedo(n, level))
	case "return":
		return Frags(e.emitReturn(n, level))
	case "js_return":
		return Frags(e.emitJsReturn(n, level))
	case "yield":
		return Frags(e.emitYield(n, level, false))
	case "returnable_yield":
		return Frags(e.emitYield(n, level, true))
	case "defined?":
		return Frags(e.emitDefined(n, level))

	// ---- logical operators (truthy.go) ----
	case "and":
		return Frags(e.emitAnd(n, level))
	case "or":
		return Frags(e.emitOr(n, level))

	// ---- object construction (emit_class.go) ----
	case "class":
		return Frags(e.emitClass(n, level))
	case "module":
		return Frags(e.emitModule(n, level))
	case "sclass":
		return Frags(e.emitSclass(n, level))
	case "alias":
		return Frags(e.emitAlias(n, level))
	case "undef":
		return Frags(e.emitUndef(n, level))

	// ---- method definition (emit_method.go) ----
	case "defn":
		return Frags(e.emitDefn(n, level))
	case "defs":
		return Frags(e.emitDefs(n, level))

	// ---- call dispatch & blocks (emit_call.go, emit_block.go) ----
	case "call":
		return Frags(e.emitCall(n, level))
	case "operator":
		return Frags(e.emitOperator(n, level))
	case "iter":
		return Frags(e.emitIter(n, level))

	// ---- exceptions (emit_exception.go) ----
	case "rescue":
		return Frags(e.emitRescue(n, level))
	case "ensure":
		return Frags(e.emitEnsure(n, level))

	// ---- super (emit_super.go) ----
	case "super":
		return Frags(e.emitSuper(n, level))
	case "zsuper":
		return Frags(e.emitZsuper(n, level))

	default:
		unsupportedSexp(n.Line, n.Kind)
		return nil // unreachable
	}
}

// emitNilLike handles the nil/none atom, replacing an absent "none" node
// with the same literal nil identifier an explicit `nil` node emits.
func (e *Emitter) emitNilLike(n Node, level Level) Fragment {
	return PosFrag("nil", n)
}
