package opal

import "testing"

func Test_Returns_AbsentNode_BecomesJsReturnNil(t *testing.T) {
	got := Returns(Node{})
	if got.Kind != "js_return" || got.Child(0).Kind != "nil" {
		t.Fatalf("got %v, want js_return wrapping nil", got)
	}
}

func Test_Returns_BreakNextReturn_Unchanged(t *testing.T) {
	for _, kind := range []string{"break", "next", "return"} {
		n := N(kind, 1, N("lit", 1, LitInt, int64(1)))
		got := Returns(n)
		if got.Kind != kind {
			t.Fatalf("Returns(%s) changed kind to %s", kind, got.Kind)
		}
	}
}

func Test_Returns_Yield_RetagsToReturnableYield(t *testing.T) {
	n := N("yield", 1, N("lit", 1, LitInt, int64(1)))
	got := Returns(n)
	if got.Kind != "returnable_yield" {
		t.Fatalf("got kind %q, want returnable_yield", got.Kind)
	}
	if got.Child(0).Kind != "lit" {
		t.Fatalf("expected children preserved, got %v", got.Children)
	}
}

func Test_Returns_ScopeRescueEnsure_RecursesIntoChild1(t *testing.T) {
	for _, kind := range []string{"scope", "rescue", "ensure"} {
		inner := N("lit", 1, LitInt, int64(1))
		n := N(kind, 1, Nil(1), inner, Nil(1))
		got := Returns(n)
		if got.Child(1).Kind != "js_return" {
			t.Fatalf("Returns(%s) child 1 = %v, want a js_return wrapper", kind, got.Child(1))
		}
	}
}

func Test_Returns_Block_RewritesLastStatement(t *testing.T) {
	n := N("block", 1, N("lit", 1, LitInt, int64(1)), N("lit", 1, LitInt, int64(2)))
	got := Returns(n)
	kids := got.NodeChildren()
	if len(kids) != 2 {
		t.Fatalf("expected 2 children, got %d", len(kids))
	}
	if kids[0].Kind != "lit" {
		t.Fatalf("expected first statement unchanged, got %v", kids[0])
	}
	if kids[1].Kind != "js_return" {
		t.Fatalf("expected last statement wrapped, got %v", kids[1])
	}
}

func Test_Returns_EmptyBlock_AppendsReturnNil(t *testing.T) {
	n := N("block", 1)
	got := Returns(n)
	kids := got.NodeChildren()
	if len(kids) != 1 || kids[0].Kind != "js_return" {
		t.Fatalf("got %v, want a single js_return appended", kids)
	}
}

func Test_Returns_When_RecursesIntoChild2(t *testing.T) {
	n := N("when", 1, N("array", 1), Nil(1), N("lit", 1, LitInt, int64(1)))
	got := Returns(n)
	if got.Child(2).Kind != "js_return" {
		t.Fatalf("got %v, want child 2 wrapped", got.Child(2))
	}
}

func Test_Returns_While_Unchanged(t *testing.T) {
	n := N("while", 1, N("lit", 1, LitInt, int64(1)), N("block", 1))
	got := Returns(n)
	if got.Kind != "while" {
		t.Fatalf("got kind %q, want while unchanged", got.Kind)
	}
}

func Test_Returns_If_RecursesIntoBothBranches(t *testing.T) {
	n := N("if", 1, N("lvar", 1, "x"), N("lit", 1, LitInt, int64(1)), N("lit", 1, LitInt, int64(2)))
	got := Returns(n)
	if got.Child(1).Kind != "js_return" || got.Child(2).Kind != "js_return" {
		t.Fatalf("got %v, want both branches wrapped", got)
	}
}

func Test_Returns_Default_WrapsWholeNode(t *testing.T) {
	n := N("lvar", 1, "x")
	got := Returns(n)
	if got.Kind != "js_return" || got.Child(0).Kind != "lvar" {
		t.Fatalf("got %v, want js_return wrapping the lvar", got)
	}
}

func Test_Retag_PreservesChildrenAndLine(t *testing.T) {
	n := N("yield", 5, N("lit", 5, LitInt, int64(1)))
	got := retag(n, "returnable_yield")
	if got.Kind != "returnable_yield" || got.Line != 5 || len(got.Children) != 1 {
		t.Fatalf("got %v, want retagged node with same children/line", got)
	}
}
