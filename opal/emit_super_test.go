package opal

import (
	"strings"
	"testing"
)

func Test_SuperArgsText_PlainAndSplat(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	defer e.popScope()

	plain := e.superArgsText([]Node{N("lit", 1, LitInt, int64(1))})
	if plain != "[1]" {
		t.Fatalf("got %q, want [1]", plain)
	}

	withSplat := e.superArgsText([]Node{N("splat", 1, N("lvar", 1, "xs"))})
	if withSplat != "[].concat(xs).concat([])" {
		t.Fatalf("got %q, want the splat chain text", withSplat)
	}
}

func Test_EmitSuper_SingletonMethod_UsesClassSuperAccessor(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeDef, "bar")
	s := e.scope()
	s.IsSingleton = true
	s.ClassName = "Foo"
	defer e.popScope()

	got := walkOne(e, N("super", 1, N("lit", 1, LitInt, int64(1))), LevelExpr)
	want := `Foo._super.$bar.apply(self, [1])`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_EmitSuper_InstanceMethodInClass_UsesCapturedSuper(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeClass, "Foo")
	e.pushScope(ScopeDef, "bar")
	defer e.popScope()
	defer e.popScope()

	got := walkOne(e, N("super", 1, N("lit", 1, LitInt, int64(1))), LevelExpr)
	if !strings.HasSuffix(got, ".apply(self, [1])") {
		t.Fatalf("got %q, want an .apply(self, [1]) call", got)
	}
	if !strings.HasPrefix(got, "super_1") {
		t.Fatalf("got %q, want the captured super_1 identifier used", got)
	}
	if !e.scope().UsesSuper {
		t.Fatalf("expected UsesSuper to be set")
	}
}

func Test_EmitSuper_DefOutsideClass_UsesPrototypeChainLookup(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	e.pushScope(ScopeDef, "bar")
	e.scope().ClassName = "Foo"
	defer e.popScope()
	defer e.popScope()

	got := walkOne(e, N("super", 1), LevelExpr)
	want := `Foo._super.prototype.$bar.apply(self, [])`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_EmitZsuper_ForwardsArguments(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeDef, "bar")
	s := e.scope()
	s.IsSingleton = true
	s.ClassName = "Foo"
	defer e.popScope()

	got := walkOne(e, N("zsuper", 1), LevelExpr)
	want := `Foo._super.$bar.apply(self, __slice.call(arguments))`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_EmitSuper_FromIter_ChainsIdentitiesToEnclosingDef(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeClass, "Foo")
	e.pushScope(ScopeDef, "bar")
	iterScope := e.pushScope(ScopeIter, "each")
	defer e.popScope()
	defer e.popScope()
	defer e.popScope()

	identity := e.identityOf(iterScope)
	got := walkOne(e, N("super", 1), LevelExpr)
	if !strings.Contains(got, identity+"._sup") {
		t.Fatalf("got %q, want the iter's own identity._sup in the chain", got)
	}
	if !strings.Contains(got, `ConstructorSuper["bar"]`) {
		t.Fatalf("got %q, want a fallback to the enclosing method's override slot", got)
	}
}

func Test_EmitSuper_OutsideMethodOrIter_Structural(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	defer e.popScope()

	defer func() {
		r := recover()
		te, ok := r.(*TranslateError)
		if !ok || te.Kind != KindStructuralError {
			t.Fatalf("expected StructuralError, got %v", r)
		}
	}()
	walkOne(e, N("super", 1), LevelExpr)
}

func Test_SuperIterChainText_OutsideAnyMethod_Structural(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	e.pushScope(ScopeIter, "each")
	defer e.popScope()
	defer e.popScope()

	defer func() {
		r := recover()
		te, ok := r.(*TranslateError)
		if !ok || te.Kind != KindStructuralError {
			t.Fatalf("expected StructuralError, got %v", r)
		}
	}()
	walkOne(e, N("super", 1), LevelExpr)
}
