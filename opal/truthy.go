// truthy.go — two-valued truthiness compilation and short-circuit logic.
//
// The source language's truthiness (false and nil are false; everything
// else is true) has no single target-language equivalent expression, so
// every conditional construct routes through truthyText/falsyText. The
// peephole here is grounded on the same impulse as the teacher's own
// binNum fast path (vm.go): avoid a temp bind when the subexpression is
// cheap and side-effect-free enough to evaluate twice safely.
package opal

import "fmt"

// truthyPeepholeCheap reports whether evaluating n twice is safe and
// cheap enough to skip the temp bind: a call to block_given?, a
// comparison operator, ==, or a bare lvar/self.
func truthyPeepholeCheap(n Node) bool {
	switch n.Kind {
	case "lvar", "self":
		return true
	case "operator":
		switch n.Str(0) {
		case "<", ">", "<=", ">=", "==", "!=":
			return true
		}
		return false
	case "call":
		return n.Str(1) == "block_given?"
	default:
		return false
	}
}

// truthyText renders "is n truthy" as target-language source text. Used
// by if/while/until (emit_control.go).
func (e *Emitter) truthyText(n Node) string {
	if truthyPeepholeCheap(n) {
		v := joinFragText(e.walk(n, LevelExpr))
		return fmt.Sprintf("%s !== false && %s !== nil", v, v)
	}
	t := e.newTemp()
	defer e.queueTemp(t)
	v := joinFragText(e.walk(n, LevelExpr))
	return fmt.Sprintf("(%s = %s) !== false && %s !== nil", t, v, t)
}

// falsyText renders "is n falsy" — the symmetric negation, used when a
// construct has only an else-branch worth testing against.
func (e *Emitter) falsyText(n Node) string {
	if truthyPeepholeCheap(n) {
		v := joinFragText(e.walk(n, LevelExpr))
		return fmt.Sprintf("%s === false || %s === nil", v, v)
	}
	t := e.newTemp()
	defer e.queueTemp(t)
	v := joinFragText(e.walk(n, LevelExpr))
	return fmt.Sprintf("(%s = %s) === false || %s === nil", t, v, t)
}

// emitAnd implements `and(a,b)`: `(t = a, t !== false && t !== nil ? b :
// t)`, with the same peephole truthyText uses.
func (e *Emitter) emitAnd(n Node, level Level) Fragment {
	a, b := n.Child(0), n.Child(1)
	var text string
	if truthyPeepholeCheap(a) {
		aText := joinFragText(e.walk(a, LevelExpr))
		bText := joinFragText(e.walk(b, LevelExpr))
		text = fmt.Sprintf("(%s !== false && %s !== nil ? %s : %s)", aText, aText, bText, aText)
	} else {
		t := e.newTemp()
		defer e.queueTemp(t)
		aText := joinFragText(e.walk(a, LevelExpr))
		bText := joinFragText(e.walk(b, LevelExpr))
		text = fmt.Sprintf("(%s = %s, %s !== false && %s !== nil ? %s : %s)", t, aText, t, t, bText, t)
	}
	return PosFrag(parenIfRecv(text, level), n)
}

// emitOr implements `or(a,b)`: `((t = a) !== false && t !== nil ? t :
// b)`, with the same peephole.
func (e *Emitter) emitOr(n Node, level Level) Fragment {
	a, b := n.Child(0), n.Child(1)
	var text string
	if truthyPeepholeCheap(a) {
		aText := joinFragText(e.walk(a, LevelExpr))
		bText := joinFragText(e.walk(b, LevelExpr))
		text = fmt.Sprintf("(%s !== false && %s !== nil ? %s : %s)", aText, aText, aText, bText)
	} else {
		t := e.newTemp()
		defer e.queueTemp(t)
		aText := joinFragText(e.walk(a, LevelExpr))
		bText := joinFragText(e.walk(b, LevelExpr))
		text = fmt.Sprintf("((%s = %s) !== false && %s !== nil ? %s : %s)", t, aText, t, t, bText)
	}
	return PosFrag(parenIfRecv(text, level), n)
}
