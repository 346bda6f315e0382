// emit_block.go — blocks, `iter`.
//
// The out-of-scope parser collaborator's exact param-list shape for a
// block mirrors a `defn`'s "args" node (documented in emit_method.go),
// extended with one case: a child may itself be a `masgn` node, marking
// that positional parameter as destructured. This file fixes its shape
// (documented in DESIGN.md): a
// `masgn` param child's own child 0 is the lhsList `array` node
// emit_masgn.go's target loop already knows how to walk — there is no
// rhs child here, since the "right-hand side" is the block's own
// argument slot, coerced to an array the same way emit_masgn.go's
// `to_ary` case does.
//
// Grounded on the teacher's closure-value construction in interpreter.go
// (a Go closure capturing its defining Env, installed as a callable
// Value) for the "closure captures its defining context, not its caller's"
// shape; generalized from capturing a *Env pointer to capturing the
// `._s` property the block function's own prologue reads back out
// (`self = <identity>._s || this`).
package opal

import (
	"strconv"
	"strings"
)

// iterParam is one formal parameter slot of a block: either a plain
// local name, or a destructuring masgn lhsList to unpack a synthetic
// temp into.
type iterParam struct {
	name        string
	destructure Node
}

// parseIterArgs is parseArgs (emit_method.go) extended with the masgn
// destructuring case.
func parseIterArgs(argsNode Node) (params []iterParam, splat, blockParam string, defaults map[string]Node, order []string) {
	defaults = map[string]Node{}
	for _, c := range argsNode.Children {
		switch v := c.(type) {
		case string:
			switch {
			case strings.HasPrefix(v, "*"):
				splat = strings.TrimPrefix(v, "*")
			case strings.HasPrefix(v, "&"):
				blockParam = strings.TrimPrefix(v, "&")
			default:
				params = append(params, iterParam{name: v})
			}
		case Node:
			switch v.Kind {
			case "block":
				for _, dc := range v.NodeChildren() {
					if dc.Kind == "lasgn" {
						name := dc.Str(0)
						defaults[name] = dc.Child(1)
						order = append(order, name)
					}
				}
			case "masgn":
				params = append(params, iterParam{destructure: v.Child(0)})
			}
		}
	}
	return
}

// mintAnonTemp allocates a fresh, never-pooled TMP_N, used to name a
// destructured block parameter's own formal slot (emit_masgn.go's target
// assignments read it, but it is never a scope-declared local itself —
// it lives only as a function parameter).
func (e *Emitter) mintAnonTemp() string {
	e.unique++
	return tmpName(e.unique)
}

// destructureParamLines unpacks temp (already bound to the block's raw
// argument) against lhsList, reusing emit_masgn.go's per-target
// assignment logic under a `to_ary`-style array coercion.
func (e *Emitter) destructureParamLines(lhsList Node, temp string) []string {
	lines := []string{temp + " = " + temp + "._isArray ? " + temp + " : [" + temp + "];"}
	for idx, target := range lhsList.NodeChildren() {
		var valueText string
		if target.Kind == "splat" {
			valueText = "__slice.call(" + temp + ", " + strconv.Itoa(idx) + ")"
			target = target.Child(0)
		} else {
			idxText := temp + "[" + strconv.Itoa(idx) + "]"
			valueText = idxText + " == null ? nil : " + idxText
		}
		lines = append(lines, e.masgnTargetText(target, valueText)+";")
	}
	return lines
}

// emitIter implements the block contract: mint an identity, build the
// block's function expression, wrap it with the `._s` outer-self
// capture, and hand the result to emitDispatch as the block attached to
// the wrapped call.
func (e *Emitter) emitIter(n Node, level Level) Fragment {
	callNode := n.Child(0)
	argsNode := n.Child(1)
	bodyScope := n.Child(2)

	recv := callNode.OptChild(0)
	mid := callNode.Str(1)
	args := callNode.OptChild(2).NodeChildren()
	outerSelfText := e.selfText()

	var identity string
	var formalParams []string
	var paramLines []string
	var bodyFrags []Fragment

	e.withScope(ScopeIter, mid, func(s *Scope) {
		identity = e.identityOf(s)
		s.Locals.Add("self")

		params, splat, blockParam, defaults, order := parseIterArgs(argsNode)
		for _, p := range params {
			if p.destructure.IsZero() {
				mangled := MangleLocal(p.name)
				s.Locals.Add(mangled)
				formalParams = append(formalParams, mangled)
				paramLines = append(paramLines, "if ("+mangled+" == null) { "+mangled+" = nil; }")
			} else {
				temp := e.mintAnonTemp()
				formalParams = append(formalParams, temp)
				paramLines = append(paramLines, e.destructureParamLines(p.destructure, temp)...)
			}
		}
		if splat != "" {
			mangled := MangleLocal(splat)
			s.Locals.Add(mangled)
			paramLines = append(paramLines, mangled+" = __slice.call(arguments, "+strconv.Itoa(len(formalParams))+");")
		}
		if blockParam != "" {
			mangled := MangleLocal(blockParam)
			s.Locals.Add(mangled)
			s.BlockName = mangled
			e.requireYielder()
		}
		for _, nm := range order {
			def := defaults[nm]
			mangled := MangleLocal(nm)
			defText := joinFragText(e.walk(def, LevelExpr))
			paramLines = append(paramLines, "if ("+mangled+" == null) { "+mangled+" = "+defText+"; }")
		}

		bodyFrags = e.walk(bodyScope, LevelStmt)

		if s.usesYielder {
			yielderLine := "yielder = " + identity + "._p || nil, " + identity + "._p = null;"
			rest := append([]Fragment{Frag(yielderLine)}, bodyFrags[1:]...)
			bodyFrags = append(bodyFrags[:1:1], rest...)
		}
	})

	var b strings.Builder
	b.WriteString("self = " + identity + "._s || this;\n")
	for _, l := range paramLines {
		b.WriteString(l + "\n")
	}
	b.WriteString(joinFragsLines(bodyFrags))

	fnText := "function(" + strings.Join(formalParams, ", ") + ") {\n" + b.String() + "\n}"
	blockText := "(" + identity + " = " + fnText + ", " + identity + "._s = " + outerSelfText + ", " + identity + ")"

	return PosFrag(e.emitDispatch(recv, mid, args, blockText, level), n)
}
