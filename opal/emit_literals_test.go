package opal

import "testing"

func walkOne(e *Emitter, n Node, level Level) string {
	return joinFragText(e.walk(n, level))
}

func Test_EmitLit_Int(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("lit", 1, LitInt, int64(42)), LevelExpr)
	if got != "42" {
		t.Fatalf("got %q, want 42", got)
	}
}

func Test_EmitLit_Float(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("lit", 1, LitFloat, 3.5), LevelExpr)
	if got != "3.5" {
		t.Fatalf("got %q, want 3.5", got)
	}
}

func Test_EmitLit_Sym_QuotesAsString(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("lit", 1, LitSym, "foo"), LevelExpr)
	if got != `"foo"` {
		t.Fatalf("got %q, want \"foo\"", got)
	}
}

func Test_EmitLit_Range_RequiresRangeHelper(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	n := N("lit", 1, LitRange, N("lit", 1, LitInt, int64(1)), N("lit", 1, LitInt, int64(5)), false)
	got := walkOne(e, n, LevelExpr)
	want := "__range(1, 5, false)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !e.helpers.Has("range") {
		t.Fatalf("expected range helper to be required")
	}
}

func Test_EmitLit_BadKind_Structural(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	defer func() {
		r := recover()
		te, ok := r.(*TranslateError)
		if !ok || te.Kind != KindStructuralError {
			t.Fatalf("expected StructuralError, got %v", r)
		}
	}()
	walkOne(e, N("lit", 1, "garbage"), LevelExpr)
}

func Test_EmitStr_Basic(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("str", 1, "hi\nthere"), LevelExpr)
	want := `"hi\nthere"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_EmitStr_MarksUsesFileWhenMatchesOptsFile(t *testing.T) {
	e := newEmitter(Options{File: "app.rb"})
	e.pushScope(ScopeTop, "")
	walkOne(e, N("str", 1, "app.rb"), LevelExpr)
	if !e.usesFile {
		t.Fatalf("expected usesFile to be set")
	}
}

func Test_EmitDstr_ConcatenatesLiteralAndExprParts(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	n := N("dstr", 1, "hello ", N("lvar", 1, "name"))
	got := walkOne(e, n, LevelExpr)
	want := `"hello " + (name)`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_EmitDsym_CallsToS(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	n := N("dsym", 1, N("lvar", 1, "name"))
	got := walkOne(e, n, LevelExpr)
	want := "(name).$to_s()"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_EmitXstr_AppendsSemicolonAtStmtLevel(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	got := walkOne(e, N("xstr", 1, "doStuff()"), LevelStmt)
	if got != "doStuff();" {
		t.Fatalf("got %q, want doStuff();", got)
	}
	got2 := walkOne(e, N("xstr", 1, "doStuff()"), LevelExpr)
	if got2 != "doStuff()" {
		t.Fatalf("got %q, want doStuff() unchanged at expr level", got2)
	}
}

func Test_EmitDxstr_SplicesSubexpressionsUnquoted(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	n := N("dxstr", 1, "foo(", N("lvar", 1, "x"), ")")
	got := walkOne(e, n, LevelExpr)
	if got != "foo(x)" {
		t.Fatalf("got %q, want foo(x)", got)
	}
}

func Test_SelfText_ResolvesByScopeKind(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeClass, "Foo")
	if got := e.selfText(); got != "Foo" {
		t.Fatalf("class scope selfText() = %q, want Foo", got)
	}
	e.popScope()

	e.pushScope(ScopeDef, "bar")
	if got := e.selfText(); got != "this" {
		t.Fatalf("def scope selfText() = %q, want this", got)
	}
	e.popScope()

	e.pushScope(ScopeTop, "")
	if got := e.selfText(); got != "self" {
		t.Fatalf("top scope selfText() = %q, want self", got)
	}
}

func Test_ParenIfRecv(t *testing.T) {
	if got := parenIfRecv("1 + 2", LevelRecv); got != "(1 + 2)" {
		t.Fatalf("got %q, want wrapped in parens", got)
	}
	if got := parenIfRecv("1 + 2", LevelExpr); got != "1 + 2" {
		t.Fatalf("got %q, want unwrapped", got)
	}
}

func Test_QuoteJSString_EscapesSpecialChars(t *testing.T) {
	got := quoteJSString("a\"b\\c\td")
	want := `"a\"b\\c\td"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
