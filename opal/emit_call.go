// emit_call.go — call dispatch and optimized operators.
//
// Grounded on the teacher's method-resolution path (interpreter_ops.go's
// callMethod: resolve receiver, look up the method, fall back to
// method_missing, invoke) generalized from a direct Go function call into
// the target language's own "look up a $-prefixed property, fall back to
// $mm, .call/.apply it" dispatch convention.
//
// A bare `call` node only ever carries a trailing `block_pass` (an
// explicit `&expr` argument); a `do...end`/`{...}` block instead arrives
// wrapped around the call as its own `iter` node (emit_block.go), which
// computes the block closure text and hands it to the same dispatch
// builder this file exposes as emitDispatch — so there is exactly one
// place that assembles the `$mm`/`.call`/`.apply` shape, reused by both
// paths.
package opal

import "strings"

// allLiteralAttrNames reports whether every arg is a literal Symbol, the
// condition required before attr_reader/writer/accessor expand inline.
func allLiteralAttrNames(args []Node) bool {
	if len(args) == 0 {
		return false
	}
	for _, a := range args {
		if a.Kind != "lit" || a.Str(0) != LitSym {
			return false
		}
	}
	return true
}

// emitAttrExpansion expands attr_reader/writer/accessor into the
// corresponding getter/setter defns, reusing emitDefn for each.
func (e *Emitter) emitAttrExpansion(n Node, mid string, args []Node, level Level) Fragment {
	var parts []string
	for _, a := range args {
		name := a.Str(1)
		if mid == "attr_reader" || mid == "attr_accessor" {
			body := N("scope", a.Line, Nil(a.Line), N("block", a.Line, N("ivar", a.Line, "@"+name)))
			defn := N("defn", a.Line, name, N("args", a.Line), body)
			parts = append(parts, joinFragText(Frags(e.emitDefn(defn, LevelStmt))))
		}
		if mid == "attr_writer" || mid == "attr_accessor" {
			setterArgs := N("args", a.Line, "value")
			body := N("scope", a.Line, Nil(a.Line), N("block", a.Line, N("iasgn", a.Line, "@"+name, N("lvar", a.Line, "value"))))
			defn := N("defn", a.Line, name+"=", setterArgs, body)
			parts = append(parts, joinFragText(Frags(e.emitDefn(defn, LevelStmt))))
		}
	}
	return PosFrag(strings.Join(parts, ";\n"), n)
}

// emitCall implements the `call(recv, mid, arglist)` contract, including
// the three special cases checked before the general dispatch pattern.
func (e *Emitter) emitCall(n Node, level Level) Fragment {
	recv := n.OptChild(0)
	mid := n.Str(1)
	args := n.OptChild(2).NodeChildren()
	recvIsImplicitSelf := recv.IsZero() || recv.Kind == "nil"

	if mid == "block_given?" && recvIsImplicitSelf && len(args) == 0 {
		blockName := e.scope().BlockName
		if blockName == "" {
			return PosFrag("false", n)
		}
		return PosFrag(parenIfRecv("("+blockName+" !== nil)", level), n)
	}

	if recvIsImplicitSelf && (e.scope().Kind == ScopeClass || e.scope().Kind == ScopeModule) &&
		(mid == "attr_reader" || mid == "attr_writer" || mid == "attr_accessor") && allLiteralAttrNames(args) {
		return e.emitAttrExpansion(n, mid, args, level)
	}

	if e.opts.IRB && e.scope().Kind == ScopeTop && recvIsImplicitSelf && len(args) == 0 {
		name := MangleLocal(mid)
		e.requireCheckerTemp()
		fallbackText := e.emitDispatch(recv, mid, args, "", LevelExpr)
		return PosFrag("((t = Opal.irb_vars."+name+") == null ? "+fallbackText+" : t)", n)
	}

	return PosFrag(e.emitDispatch(recv, mid, args, "", level), n)
}

// emitDispatch builds the general `$mm`/`.call`/`.apply` invocation text.
// blockText, when non-empty, is already-emitted block-closure text (from
// emitIter, or from a trailing block_pass argument detected here).
func (e *Emitter) emitDispatch(recv Node, mid string, args []Node, blockText string, level Level) string {
	if blockText == "" && len(args) > 0 && args[len(args)-1].Kind == "block_pass" {
		inner := joinFragText(e.walk(args[len(args)-1].Child(0), LevelExpr))
		blockText = "(" + inner + ").$to_proc()"
		args = args[:len(args)-1]
	}
	hasBlock := blockText != ""

	recvText := e.selfText()
	if !(recv.IsZero() || recv.Kind == "nil") {
		recvText = joinFragText(e.walk(recv, LevelRecv))
	}

	tmprecv := e.newTemp()
	defer e.queueTemp(tmprecv)

	eqId := MidToJSID(mid)
	var dispatch string
	if e.opts.MethodMissing {
		dispatch = "(" + tmprecv + " = " + recvText + ")" + eqId + " || $mm(" + quoteJSString(mid) + ")"
	} else {
		dispatch = "(" + tmprecv + " = " + recvText + ")" + eqId
	}

	callee := "(" + dispatch + ")"
	if hasBlock {
		tmpfunc := e.newTemp()
		defer e.queueTemp(tmpfunc)
		callee = "(" + tmpfunc + " = " + dispatch + ", " + tmpfunc + "._p = " + blockText + ", " + tmpfunc + ")"
	}

	var invocation string
	if hasSplatArg(args) {
		invocation = callee + ".apply(" + tmprecv + ", " + e.arglistChainText(args) + ")"
	} else {
		callArgs := tmprecv
		if argsText := e.argsCommaText(args); argsText != "" {
			callArgs += ", " + argsText
		}
		invocation = callee + ".call(" + callArgs + ")"
	}
	return parenIfRecv(invocation, level)
}

// emitOperator binds both operands to temps and, when optimized_operators
// is enabled, chooses the inline numeric fast path or the property-
// accessor call based on a runtime `typeof` check of the left operand;
// otherwise it falls back to a plain dispatch.
func (e *Emitter) emitOperator(n Node, level Level) Fragment {
	op := n.Str(0)
	lhs := n.Child(1)
	rhs := n.Child(2)

	if !e.opts.OptimizedOperators {
		return PosFrag(e.emitDispatch(lhs, op, []Node{rhs}, "", level), n)
	}

	a := e.newTemp()
	defer e.queueTemp(a)
	b := e.newTemp()
	defer e.queueTemp(b)
	aText := joinFragText(e.walk(lhs, LevelExpr))
	bText := joinFragText(e.walk(rhs, LevelExpr))
	eqId := MidToJSID(op)

	text := "(" + a + " = " + aText + ", " + b + " = " + bText + ", (typeof " + a +
		" === \"number\") ? (" + a + " " + op + " " + b + ") : (" + a + ")" + eqId + "(" + b + "))"
	return PosFrag(parenIfRecv(text, level), n)
}
