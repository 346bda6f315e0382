// emit_vars.go — local/instance/global/class variables and constants.
//
// Grounded on the teacher's Env.Get/Set/Define (interpreter.go) for the
// shape of "read vs. declare vs. reassign" a binding, generalized from
// "look up a runtime Value" to "emit the target-language accessor text".
package opal

// checkerTemp is the literal temp name the null-check idiom
// `(t = <expr>) == null ? fallback : t` reuses (`cvar`, `const`). It is
// declared once per scope the first time it's needed, outside the
// new_temp/queue_temp pool — its lifetime is always a single expression,
// never handed across statements, so pooling it would be pure overhead.
const checkerTemp = "t"

func (e *Emitter) requireCheckerTemp() {
	e.scope().usesCheckerTemp = true
}

// requireYielder marks the current scope as needing the `yielder` local
// emit_method.go's and emit_block.go's prologues assign from `._p`.
func (e *Emitter) requireYielder() {
	e.scope().usesYielder = true
}

func (e *Emitter) emitLvar(n Node, level Level) Fragment {
	name := n.Str(0)
	mangled := MangleLocal(name)
	if e.opts.IRB && e.scope().Kind == ScopeTop {
		e.requireCheckerTemp()
		return PosFrag("((t = Opal.irb_vars."+mangled+") == null ? nil : t)", n)
	}
	return PosFrag(mangled, n)
}

func (e *Emitter) emitLasgn(n Node, level Level) Fragment {
	name := n.Str(0)
	mangled := MangleLocal(name)
	rhsFrags := e.walk(n.Child(1), LevelExpr)
	rhs := joinFragText(rhsFrags)

	if e.opts.IRB && e.scope().Kind == ScopeTop {
		return PosFrag(parenIfRecv("Opal.irb_vars."+mangled+" = "+rhs, level), n)
	}
	e.scope().Locals.Add(mangled)
	return PosFrag(parenIfRecv(mangled+" = "+rhs, level), n)
}

func (e *Emitter) emitIvar(n Node, level Level) Fragment {
	prop := ivarProperty(n.Str(0))
	e.scope().IVars.Add(prop)
	return PosFrag("self"+IvarAccessor(prop), n)
}

func (e *Emitter) emitIasgn(n Node, level Level) Fragment {
	prop := ivarProperty(n.Str(0))
	e.scope().IVars.Add(prop)
	rhs := joinFragText(e.walk(n.Child(1), LevelExpr))
	return PosFrag(parenIfRecv("self"+IvarAccessor(prop)+" = "+rhs, level), n)
}

func (e *Emitter) emitGvar(n Node, level Level) Fragment {
	e.helpers.Require("gvars")
	name := n.Str(0)
	return PosFrag(`__gvars["`+name+`"]`, n)
}

func (e *Emitter) emitGasgn(n Node, level Level) Fragment {
	e.helpers.Require("gvars")
	name := n.Str(0)
	rhs := joinFragText(e.walk(n.Child(1), LevelExpr))
	return PosFrag(parenIfRecv(`__gvars["`+name+`"] = `+rhs, level), n)
}

func (e *Emitter) emitCvar(n Node, level Level) Fragment {
	e.requireCheckerTemp()
	name := mangleClassVar(n.Str(0))
	return PosFrag(`((t = Opal.cvars["`+name+`"]) == null ? nil : t)`, n)
}

func (e *Emitter) emitCvasgn(n Node, level Level) Fragment {
	name := mangleClassVar(n.Str(0))
	rhs := joinFragText(e.walk(n.Child(1), LevelExpr))
	return PosFrag(`(Opal.cvars["`+name+`"] = `+rhs+")", n)
}

func (e *Emitter) emitConst(n Node, level Level) Fragment {
	name := n.Str(0)
	if e.opts.ConstMissing {
		e.requireCheckerTemp()
		return PosFrag(`((t = __scope.`+name+`) == null ? __opal.cm("`+name+`") : t)`, n)
	}
	return PosFrag("__scope."+name, n)
}

func (e *Emitter) emitCdecl(n Node, level Level) Fragment {
	name := n.Str(0)
	rhs := joinFragText(e.walk(n.Child(1), LevelExpr))
	return PosFrag(parenIfRecv("__scope."+name+" = "+rhs, level), n)
}

func (e *Emitter) emitColon2(n Node, level Level) Fragment {
	base := joinFragText(e.walk(n.Child(0), LevelRecv))
	name := n.Str(1)
	if e.opts.ConstMissing {
		e.requireCheckerTemp()
		return PosFrag(`((t = (`+base+`)._scope.`+name+`) == null ? __opal.cm("`+name+`") : t)`, n)
	}
	return PosFrag("("+base+")._scope."+name, n)
}

func (e *Emitter) emitColon3(n Node, level Level) Fragment {
	name := n.Str(0)
	if e.opts.ConstMissing {
		e.requireCheckerTemp()
		return PosFrag(`((t = __opal.Object._scope.`+name+`) == null ? __opal.cm("`+name+`") : t)`, n)
	}
	return PosFrag("__opal.Object._scope."+name, n)
}

// emitNthRef: regex match vars ($1, $2, ...) are unsupported but must not
// raise — they emit a stable nil instead, with a warning so a translation
// that depends on one doesn't fail silently.
func (e *Emitter) emitNthRef(n Node, level Level) Fragment {
	e.warn(n.Line, "nth_ref ($%d) is unsupported; emitting nil", n.Int(0))
	return PosFrag("nil", n)
}

// emitJsTmp emits a bare reference to a synthetic temp the inline-yield
// lifter introduced.
func (e *Emitter) emitJsTmp(n Node, level Level) Fragment {
	return PosFrag(n.Str(0), n)
}

// emitYasgn emits the lifted yield-assignment statement the inline-yield
// lifter inserts ahead of the statement that originally contained the
// yield: `name = <yield>`.
func (e *Emitter) emitYasgn(n Node, level Level) Fragment {
	name := n.Str(0)
	rhs := joinFragText(e.walk(n.Child(1), LevelExpr))
	text := name + " = " + rhs
	if level == LevelStmt {
		text += ";"
	}
	return PosFrag(text, n)
}
