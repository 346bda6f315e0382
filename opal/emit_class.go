// emit_class.go — object construction: class, module, sclass, alias, undef.
//
// Grounded on the teacher's module-registration path (modules.go's
// RegisterModule building a named, parent-linked namespace around a body)
// for the "wrap a body in a freshly-named construction closure" shape,
// generalized from the teacher's own module table to the target language's
// IIFE-based class/module constructor convention this core's domain calls
// for.
package opal

// resolveCid resolves a class/module identifier to (base, name): a bare
// name bases on self, `colon2` bases on its left-hand side, `colon3` bases
// on the root object.
func (e *Emitter) resolveCid(cid Node) (base, name string) {
	switch cid.Kind {
	case "colon2":
		return joinFragText(e.walk(cid.Child(0), LevelRecv)), cid.Str(1)
	case "colon3":
		return "__opal.Object", cid.Str(0)
	case "const":
		return e.selfText(), cid.Str(0)
	default:
		structural(cid.Line, "bad class receiver: "+cid.Kind)
		return "", ""
	}
}

// classBodyEndsInMethodDef reports whether bodyScope's (a "scope" node)
// last statement is a method definition, so the class IIFE's implicit
// return value doesn't leak a function object.
func classBodyEndsInMethodDef(bodyScope Node) bool {
	stmts := bodyScope.OptChild(1).NodeChildren()
	if len(stmts) == 0 {
		return false
	}
	last := stmts[len(stmts)-1]
	return last.Kind == "defn" || last.Kind == "defs"
}

// emitClass implements the `class(cid, sup, body)` contract.
func (e *Emitter) emitClass(n Node, level Level) Fragment {
	cid := n.Child(0)
	sup := n.OptChild(1)
	bodyScope := n.Child(2)

	base, name := e.resolveCid(cid)
	supText := "null"
	if !(sup.IsZero() || sup.Kind == "nil") {
		supText = joinFragText(e.walk(sup, LevelExpr))
	}
	e.helpers.Require("klass")

	var bodyFrags []Fragment
	e.withScope(ScopeClass, name, func(s *Scope) {
		bodyFrags = e.walk(bodyScope, LevelStmt)
		if classBodyEndsInMethodDef(bodyScope) {
			bodyFrags = append(bodyFrags, Frag("nil;"))
		}
	})

	text := "(function(__base, __super) { function " + name + "(){} " + name +
		" = __klass(__base, __super, \"" + name + "\", " + name + ");\n" +
		joinFragsLines(bodyFrags) + "\n})(" + base + ", " + supText + ")"
	return PosFrag(parenIfRecv(text, level), n)
}

// emitModule implements the `module(cid, body)` contract: like `class`
// but with `__module` and no superclass slot.
func (e *Emitter) emitModule(n Node, level Level) Fragment {
	cid := n.Child(0)
	bodyScope := n.Child(1)

	base, name := e.resolveCid(cid)
	e.helpers.Require("module")

	var bodyFrags []Fragment
	e.withScope(ScopeModule, name, func(s *Scope) {
		bodyFrags = e.walk(bodyScope, LevelStmt)
		if classBodyEndsInMethodDef(bodyScope) {
			bodyFrags = append(bodyFrags, Frag("nil;"))
		}
	})

	text := "(function(__base) { function " + name + "(){} " + name +
		" = __module(__base, \"" + name + "\", " + name + ");\n" +
		joinFragsLines(bodyFrags) + "\n})(" + base + ")"
	return PosFrag(parenIfRecv(text, level), n)
}

// emitSclass implements the `sclass(recv, body)` contract. The opened
// singleton class has no fixed name, so `self` inside its body resolves
// to the receiver's own emitted text.
func (e *Emitter) emitSclass(n Node, level Level) Fragment {
	recv := n.Child(0)
	bodyScope := n.Child(1)
	recvText := joinFragText(e.walk(recv, LevelRecv))

	var bodyFrags []Fragment
	e.withScope(ScopeSClass, recvText, func(s *Scope) {
		bodyFrags = e.walk(bodyScope, LevelStmt)
	})

	text := "(function() {\n" + joinFragsLines(bodyFrags) + "\n}).call(__opal.singleton(" + recvText + "))"
	return PosFrag(parenIfRecv(text, level), n)
}

// prototypeText resolves the `<proto>` the alias/undef rules reference:
// the owning class/module's prototype, or self's when outside one.
func (e *Emitter) prototypeText() string {
	s := e.scope()
	if s.Kind == ScopeClass || s.Kind == ScopeModule {
		return s.Name + ".prototype"
	}
	return "self.prototype"
}

// emitAlias implements the `alias(new, old)` contract.
func (e *Emitter) emitAlias(n Node, level Level) Fragment {
	newName := n.Str(0)
	oldName := n.Str(1)
	proto := e.prototypeText()
	e.scope().Methods = append(e.scope().Methods, newName)
	text := proto + MidToJSID(newName) + " = " + proto + MidToJSID(oldName)
	return PosFrag(parenIfRecv(text, level), n)
}

// emitUndef implements the `undef` contract.
func (e *Emitter) emitUndef(n Node, level Level) Fragment {
	name := n.Str(0)
	text := "delete " + e.prototypeText() + MidToJSID(name)
	return PosFrag(parenIfRecv(text, level), n)
}
