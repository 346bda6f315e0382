package opal

import (
	"strings"
	"testing"
)

func Test_EmitLvar_PlainLocal(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("lvar", 1, "foo"), LevelExpr)
	if got != "foo" {
		t.Fatalf("got %q, want foo", got)
	}
}

func Test_EmitLvar_ReservedWordMangled(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("lvar", 1, "class"), LevelExpr)
	if got != "class$" {
		t.Fatalf("got %q, want class$", got)
	}
}

func Test_EmitLvar_IRB_TopLevel_UsesIrbVars(t *testing.T) {
	e := newEmitter(Options{File: "(file)", IRB: true})
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("lvar", 1, "foo"), LevelExpr)
	want := "((t = Opal.irb_vars.foo) == null ? nil : t)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !e.scope().usesCheckerTemp {
		t.Fatalf("expected usesCheckerTemp to be set")
	}
}

func Test_EmitLasgn_DeclaresLocalAndAssigns(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("lasgn", 1, "foo", N("lit", 1, LitInt, int64(1))), LevelExpr)
	if got != "foo = 1" {
		t.Fatalf("got %q, want foo = 1", got)
	}
	if !e.scope().Locals.Contains("foo") {
		t.Fatalf("expected foo to be added to scope Locals")
	}
}

func Test_EmitLasgn_IRB_DoesNotDeclareLocal(t *testing.T) {
	e := newEmitter(Options{File: "(file)", IRB: true})
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("lasgn", 1, "foo", N("lit", 1, LitInt, int64(1))), LevelExpr)
	if got != "Opal.irb_vars.foo = 1" {
		t.Fatalf("got %q, want Opal.irb_vars.foo = 1", got)
	}
	if e.scope().Locals.Contains("foo") {
		t.Fatalf("IRB assignment should not register a local")
	}
}

func Test_EmitIvar_UsesSelfAccessorAndTracksIVars(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeDef, "bar")
	got := walkOne(e, N("ivar", 1, "@name"), LevelExpr)
	if got != "self.name" {
		t.Fatalf("got %q, want self.name", got)
	}
	if !e.scope().IVars.Contains("name") {
		t.Fatalf("expected name to be tracked in scope IVars")
	}
}

func Test_EmitIvar_ReservedNameUsesBracketAccessor(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeDef, "bar")
	got := walkOne(e, N("ivar", 1, "@class"), LevelExpr)
	if got != "self['class']" {
		t.Fatalf("got %q, want self['class']", got)
	}
}

func Test_EmitGvar_RequiresGvarsHelper(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("gvar", 1, "$stdout"), LevelExpr)
	if got != `__gvars["$stdout"]` {
		t.Fatalf("got %q", got)
	}
	if !e.helpers.Has("gvars") {
		t.Fatalf("expected gvars helper to be required")
	}
}

func Test_EmitCvar_UsesCheckerTempIdiom(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeClass, "Foo")
	got := walkOne(e, N("cvar", 1, "@@count"), LevelExpr)
	want := `((t = Opal.cvars["@@count"]) == null ? nil : t)`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_EmitConst_ConstMissingTrap(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("const", 1, "Foo"), LevelExpr)
	want := `((t = __scope.Foo) == null ? __opal.cm("Foo") : t)`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_EmitConst_NoConstMissing(t *testing.T) {
	e := newEmitter(Options{File: "(file)", ConstMissing: false})
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("const", 1, "Foo"), LevelExpr)
	if got != "__scope.Foo" {
		t.Fatalf("got %q, want __scope.Foo", got)
	}
}

func Test_EmitNthRef_IsStableNil(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("nth_ref", 1, int64(1)), LevelExpr)
	if got != "nil" {
		t.Fatalf("got %q, want nil", got)
	}
}

func Test_EmitNthRef_WarnsItIsUnsupported(t *testing.T) {
	w := &CollectingWarner{}
	e := newEmitter(Options{File: "x.rb", Warner: w})
	e.pushScope(ScopeTop, "")
	walkOne(e, N("nth_ref", 3, int64(1)), LevelExpr)
	if len(w.Messages) != 1 {
		t.Fatalf("expected one warning, got %d", len(w.Messages))
	}
	if !strings.Contains(w.Messages[0], "nth_ref") || !strings.Contains(w.Messages[0], "x.rb:3") {
		t.Fatalf("Messages[0] = %q, want it to mention nth_ref and x.rb:3", w.Messages[0])
	}
}

func Test_EmitYasgn_AppendsSemicolonAtStmtLevel(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	value := N("lit", 1, LitInt, int64(1))
	got := walkOne(e, N("yasgn", 1, "TMP_1", value), LevelStmt)
	if got != "TMP_1 = 1;" {
		t.Fatalf("got %q, want TMP_1 = 1;", got)
	}
	gotExpr := walkOne(e, N("yasgn", 1, "TMP_1", value), LevelExpr)
	if gotExpr != "TMP_1 = 1" {
		t.Fatalf("got %q, want TMP_1 = 1 (no trailing semicolon at expr level)", gotExpr)
	}
}

func Test_EmitJsTmp_EmitsBareName(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("js_tmp", 1, "TMP_1"), LevelExpr)
	if got != "TMP_1" {
		t.Fatalf("got %q, want TMP_1", got)
	}
}
