package opal

import (
	"strings"
	"testing"
)

func Test_ParseIterArgs_PlainSplatAndBlock(t *testing.T) {
	argsNode := N("args", 1, "x", "*rest", "&blk")
	params, splat, blockParam, defaults, order := parseIterArgs(argsNode)
	if len(params) != 1 || params[0].name != "x" {
		t.Fatalf("params = %v, want [x]", params)
	}
	if splat != "rest" {
		t.Fatalf("splat = %q, want rest", splat)
	}
	if blockParam != "blk" {
		t.Fatalf("blockParam = %q, want blk", blockParam)
	}
	if len(defaults) != 0 || len(order) != 0 {
		t.Fatalf("expected no defaults")
	}
}

func Test_ParseIterArgs_Defaults(t *testing.T) {
	defBlock := N("block", 1, N("lasgn", 1, "y", N("lit", 1, LitInt, int64(2))))
	argsNode := N("args", 1, "x", defBlock)
	params, _, _, defaults, order := parseIterArgs(argsNode)
	if len(params) != 1 {
		t.Fatalf("params = %v, want one plain param", params)
	}
	if order[0] != "y" {
		t.Fatalf("order = %v, want [y]", order)
	}
	if defaults["y"].Kind != "lit" {
		t.Fatalf("defaults[y] = %v, want a lit node", defaults["y"])
	}
}

func Test_ParseIterArgs_Destructure(t *testing.T) {
	lhsList := N("array", 1, N("lasgn", 1, "a"), N("lasgn", 1, "b"))
	masgn := N("masgn", 1, lhsList)
	argsNode := N("args", 1, masgn)
	params, _, _, _, _ := parseIterArgs(argsNode)
	if len(params) != 1 || params[0].destructure.IsZero() {
		t.Fatalf("expected one destructuring param, got %v", params)
	}
	if params[0].destructure.Kind != "array" {
		t.Fatalf("destructure = %v, want the lhsList array node", params[0].destructure)
	}
}

func Test_DestructureParamLines_PlainAndSplatTargets(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeIter, "")
	defer e.popScope()

	lhsList := N("array", 1, N("lasgn", 1, "a"), N("splat", 1, N("lasgn", 1, "rest")))
	lines := e.destructureParamLines(lhsList, "TMP_1")
	if !strings.HasPrefix(lines[0], "TMP_1 = TMP_1._isArray ? TMP_1 : [TMP_1];") {
		t.Fatalf("lines[0] = %q, want the array-coercion guard", lines[0])
	}
	if !strings.Contains(lines[1], "TMP_1[0]") {
		t.Fatalf("lines[1] = %q, want an indexed read for the first target", lines[1])
	}
	if !strings.Contains(lines[2], "__slice.call(TMP_1, 1)") {
		t.Fatalf("lines[2] = %q, want a __slice.call for the splat target", lines[2])
	}
}

func Test_EmitIter_PlainParamBuildsClosureAndDispatch(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	defer e.popScope()

	call := N("call", 1, nil, "each", arglistNode(1))
	argsNode := N("args", 1, "x")
	body := N("scope", 1, Nil(1), N("block", 1, N("lvar", 1, "x")))
	n := N("iter", 1, call, argsNode, body)

	got := walkOne(e, n, LevelExpr)
	if !strings.Contains(got, "function(x) {") {
		t.Fatalf("got %q, want a function(x) {...} closure", got)
	}
	if !strings.Contains(got, "self = TMP_1._s || this;") {
		t.Fatalf("got %q, want the outer-self capture prologue", got)
	}
	if !strings.Contains(got, "if (x == null) { x = nil; }") {
		t.Fatalf("got %q, want a missing-arg guard for x", got)
	}
	if !strings.Contains(got, "._p = (TMP_1 =") {
		t.Fatalf("got %q, want the block attached via ._p", got)
	}
	if !strings.Contains(got, "TMP_1._s = self") {
		t.Fatalf("got %q, want the closure's outer self captured", got)
	}
}

func Test_EmitIter_SplatParam_SlicesArguments(t *testing.T) {
	e := newTestEmitter()
	e.pushScope(ScopeTop, "")
	defer e.popScope()

	call := N("call", 1, nil, "each", arglistNode(1))
	argsNode := N("args", 1, "*rest")
	body := N("scope", 1, Nil(1), N("block", 1, N("lvar", 1, "rest")))
	n := N("iter", 1, call, argsNode, body)

	got := walkOne(e, n, LevelExpr)
	if !strings.Contains(got, "rest = __slice.call(arguments, 0);") {
		t.Fatalf("got %q, want a splat param sliced from arguments", got)
	}
}
