// emit_super.go — `super` and `zsuper`.
//
// Grounded on the teacher's method-override resolution in
// interpreter_ops.go (walking a type's embedded-struct chain to find the
// next implementation above the current one) for the "the current frame
// knows which implementation it overrode, without re-searching a class
// hierarchy at call time" shape: this core resolves that "next
// implementation" once, at method-install time (the super_N capture) or
// by name (the `<ClassName>._super…` property lookup), rather than
// walking an inheritance chain on every call.
package opal

import "strings"

// superArgsText builds the single array-expression `.apply`'s second
// argument needs, handling splats the same way emit_call.go's general
// dispatch does.
func (e *Emitter) superArgsText(args []Node) string {
	if hasSplatArg(args) {
		return e.arglistChainText(args)
	}
	return "[" + e.argsCommaText(args) + "]"
}

// emitSuper implements the `super(args…)` contract.
func (e *Emitter) emitSuper(n Node, level Level) Fragment {
	argsText := e.superArgsText(n.NodeChildren())
	return e.emitSuperCall(n, argsText, level)
}

// emitZsuper implements the `zsuper` contract: forward the enclosing
// method's own arguments verbatim.
func (e *Emitter) emitZsuper(n Node, level Level) Fragment {
	return e.emitSuperCall(n, "__slice.call(arguments)", level)
}

// emitSuperCall dispatches across the three super contexts (singleton
// method, instance method, block nested inside one), given the
// already-built `.apply` argument-array text.
func (e *Emitter) emitSuperCall(n Node, argsText string, level Level) Fragment {
	s := e.scope()
	var text string
	switch {
	case s.Kind == ScopeDef && s.IsSingleton:
		text = s.ClassName + "._super" + MidToJSID(s.Name) + ".apply(self, " + argsText + ")"
	case s.Kind == ScopeDef && s.Parent != nil && (s.Parent.Kind == ScopeClass || s.Parent.Kind == ScopeModule):
		capture := e.superCaptureOf(s)
		s.UsesSuper = true
		text = capture + ".apply(self, " + argsText + ")"
	case s.Kind == ScopeDef:
		text = s.ClassName + "._super.prototype" + MidToJSID(s.Name) + ".apply(self, " + argsText + ")"
	case s.Kind == ScopeIter:
		text = e.superIterChainText(s, argsText, n.Line)
	default:
		structural(n.Line, "super outside method/iter")
		return Fragment{}
	}
	return PosFrag(parenIfRecv(text, level), n)
}

// superIterChainText implements the "super from inside a block" case:
// walk outward over nested block identities and short-circuit through
// each one's `._sup`, falling back to the enclosing method's own
// override slot by name.
func (e *Emitter) superIterChainText(s *Scope, argsText string, line int) string {
	cur := s
	var parts []string
	for cur != nil && cur.Kind == ScopeIter {
		parts = append(parts, e.identityOf(cur)+"._sup")
		cur = cur.Parent
	}
	if cur == nil || cur.Kind != ScopeDef {
		structural(line, "super in iter outside any enclosing method")
		return ""
	}
	parts = append(parts, "ConstructorSuper["+quoteJSString(cur.Name)+"]")
	chain := strings.Join(parts, " || ")
	return "(" + chain + ").apply(self, " + argsText + ")"
}
