// emit_collections.go — array and hash literal expressions, and the
// standalone splat operand. emit_masgn.go already fixes "array"/"splat"
// as masgn rhs shapes; this file generalizes the same shapes to ordinary
// expression position, plus the hash literal.
//
// Grounded on emit_masgn.go's masgnRhsText (the "array" literal-element
// and "splat" to_a-coercion shapes already fixed there) and on
// emit_literals.go's emitLit LitRange case (the Require-a-helper-then-
// splice-a-call-text pattern reused here for hash/hash2).
package opal

import "strings"

// emitArray emits a plain JS array literal from an "array" node's
// children, lifting the masgn "array" rhs shape to ordinary expression
// position.
func (e *Emitter) emitArray(n Node, level Level) Fragment {
	elems := n.NodeChildren()
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = joinFragText(e.walk(el, LevelExpr))
	}
	return PosFrag(parenIfRecv("["+strings.Join(parts, ", ")+"]", level), n)
}

// emitSplat emits a standalone `*expr` operand (not inside an arglist,
// which arglistChainText already handles, and not an masgn rhs, which
// masgnRhsText already handles). Splatting a literal array is just the
// array itself; splatting anything else coerces via $to_a the way
// masgnRhsText's "splat" case does.
func (e *Emitter) emitSplat(n Node, level Level) Fragment {
	inner := n.Child(0)
	if inner.Kind == "array" {
		return e.emitArray(inner, level)
	}
	t := e.newTemp()
	defer e.queueTemp(t)
	innerText := joinFragText(e.walk(inner, LevelExpr))
	text := "(" + t + " = " + innerText + ", " + t + " = (" + t + ").$to_a ? (" + t + ").$to_a() : [" + t + "])"
	return PosFrag(parenIfRecv(text, level), n)
}

// hashLiteralKey returns the literal string a hash key node contributes
// to the all-literal-keys fast path, and whether the key qualifies: it
// must be a lit Symbol or a plain str.
func hashLiteralKey(key Node) (string, bool) {
	switch key.Kind {
	case "str":
		return key.Str(0), true
	case "lit":
		if key.Str(0) == LitSym {
			return key.Str(1), true
		}
	}
	return "", false
}

// emitHash emits a "hash" node, whose children alternate key, value,
// key, value, .... All-literal keys take the __hash2 fast path: an array
// of the key strings plus a JS object literal keyed by them. Any
// non-literal key falls back to __hash with a flat key, value, ...
// argument list.
func (e *Emitter) emitHash(n Node, level Level) Fragment {
	kids := n.NodeChildren()
	pairs := len(kids) / 2

	keys := make([]string, pairs)
	allLiteral := true
	for i := 0; i < pairs; i++ {
		key, ok := hashLiteralKey(kids[2*i])
		if !ok {
			allLiteral = false
			break
		}
		keys[i] = key
	}

	if allLiteral {
		e.helpers.Require("hash2")
		keyList := make([]string, pairs)
		fields := make([]string, pairs)
		for i := 0; i < pairs; i++ {
			keyList[i] = quoteJSString(keys[i])
			valText := joinFragText(e.walk(kids[2*i+1], LevelExpr))
			fields[i] = keys[i] + ": " + valText
		}
		text := "__hash2([" + strings.Join(keyList, ", ") + "], {" + strings.Join(fields, ", ") + "})"
		return PosFrag(parenIfRecv(text, level), n)
	}

	e.helpers.Require("hash")
	args := make([]string, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		args = append(args,
			joinFragText(e.walk(kids[2*i], LevelExpr)),
			joinFragText(e.walk(kids[2*i+1], LevelExpr)),
		)
	}
	text := "__hash(" + strings.Join(args, ", ") + ")"
	return PosFrag(parenIfRecv(text, level), n)
}
