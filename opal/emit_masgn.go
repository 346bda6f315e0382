// emit_masgn.go — multiple assignment (masgn).
//
// The out-of-scope parser collaborator's exact sexp shape for masgn isn't
// pinned down; this file fixes one (documented in DESIGN.md):
// `masgn(lhsList, rhs)` where lhsList is an "array" node whose children are
// assignable target nodes (a bare target, or a "splat" node wrapping one
// target to mark it as the rest-capturing element), and rhs is one of
// "array" (literal element list, known length), "to_ary", or "splat".
//
// Grounded on the teacher's destructuring-let handling in interpreter_ops.go
// (binds each pattern element against a slice index, falling back to nil
// past the slice's length) — the same "index into an evaluated once temp,
// guard past the known length" shape, generalized to these three rhs
// coercions.
package opal

import (
	"strconv"
	"strings"
)

// emitMasgn emits: bind rhs into a fresh temp under the rhs-specific
// coercion, then assign each lhs target from that temp in order, finally
// yielding the temp as the expression's own value.
func (e *Emitter) emitMasgn(n Node, level Level) Fragment {
	lhsList := n.Child(0)
	rhs := n.Child(1)
	targets := lhsList.NodeChildren()

	t := e.newTemp()
	defer e.queueTemp(t)

	assign, knownLength := e.masgnRhsText(rhs, t)

	parts := make([]string, 0, len(targets)+2)
	parts = append(parts, assign)
	for idx, target := range targets {
		var valueText string
		if target.Kind == "splat" {
			valueText = "__slice.call(" + t + ", " + strconv.Itoa(idx) + ")"
			target = target.Child(0)
		} else if knownLength >= 0 && idx < knownLength {
			valueText = t + "[" + strconv.Itoa(idx) + "]"
		} else {
			idxText := t + "[" + strconv.Itoa(idx) + "]"
			valueText = idxText + " == null ? nil : " + idxText
		}
		parts = append(parts, e.masgnTargetText(target, valueText))
	}
	parts = append(parts, t)

	text := "(" + strings.Join(parts, ", ") + ")"
	return PosFrag(parenIfRecv(text, level), n)
}

// masgnRhsText implements the three rhs coercions, returning the
// assignment text and the resulting known length (-1 when
// the length isn't statically known, forcing every lhs index to be
// guarded).
func (e *Emitter) masgnRhsText(rhs Node, t string) (string, int) {
	switch rhs.Kind {
	case "array":
		elems := rhs.NodeChildren()
		parts := make([]string, len(elems))
		for i, el := range elems {
			parts[i] = joinFragText(e.walk(el, LevelExpr))
		}
		return t + " = [" + strings.Join(parts, ", ") + "]", len(parts)
	case "to_ary":
		inner := joinFragText(e.walk(rhs.Child(0), LevelExpr))
		return t + " = " + inner + ", " + t + " = " + t + "._isArray ? " + t + " : [" + t + "]", -1
	case "splat":
		inner := joinFragText(e.walk(rhs.Child(0), LevelExpr))
		return t + " = " + inner + ", " + t + " = (" + t + ").$to_a ? (" + t + ").$to_a() : [" + t + "]", -1
	default:
		structural(rhs.Line, "unsupported masgn rhs: "+rhs.Kind)
		return "", -1
	}
}

// masgnTargetText assigns valueText into one lhs target. Unlike the
// standalone lasgn/iasgn/... emitters, masgn targets carry no rhs child of
// their own — the value text is already computed by the caller.
func (e *Emitter) masgnTargetText(target Node, valueText string) string {
	switch target.Kind {
	case "lasgn":
		name := MangleLocal(target.Str(0))
		e.scope().Locals.Add(name)
		return name + " = " + valueText
	case "iasgn":
		prop := ivarProperty(target.Str(0))
		e.scope().IVars.Add(prop)
		return "self" + IvarAccessor(prop) + " = " + valueText
	case "gasgn":
		e.helpers.Require("gvars")
		return `__gvars["` + target.Str(0) + `"] = ` + valueText
	case "cvasgn", "cvdecl":
		name := mangleClassVar(target.Str(0))
		return `Opal.cvars["` + name + `"] = ` + valueText
	case "cdecl":
		return "__scope." + target.Str(0) + " = " + valueText
	case "attrasgn":
		recv := joinFragText(e.walk(target.Child(0), LevelRecv))
		mid := target.Str(1)
		return recv + MidToJSID(mid) + "(" + valueText + ")"
	default:
		structural(target.Line, "unsupported masgn target: "+target.Kind)
		return ""
	}
}
