// returns.go — return-lifting.
//
// Grounded on the teacher's tail-position handling in interpreter_exec.go
// (the bytecode emitter rewrites a def body's trailing expression into an
// explicit OpReturn rather than relying on "falls off the end"), generalized
// from "append an opcode" to "produce the sexp that would emit one" — this
// core is a source-to-source translator with no opcode stream to append to,
// so the rewrite has to happen on the tree itself, before emission.
package opal

// Returns takes a sexp and returns the sexp that, when emitted, produces a
// target-language `return` of the original value. The first matching case
// wins.
func Returns(n Node) Node {
	if n.IsZero() || n.Kind == "nil" || n.Kind == "none" {
		return N("js_return", n.Line, Nil(n.Line))
	}
	switch n.Kind {
	case "break", "next", "return":
		return n
	case "yield":
		return retag(n, "returnable_yield")
	case "scope", "rescue", "ensure":
		return n.With(1, Returns(n.Child(1)))
	case "block":
		if len(n.Children) == 0 {
			return n.Append(Returns(Nil(n.Line)))
		}
		last := len(n.Children) - 1
		return n.With(last, Returns(n.Child(last)))
	case "when":
		return n.With(2, Returns(n.Child(2)))
	case "while":
		return n
	case "if":
		return n.With(1, Returns(n.OptChild(1))).With(2, Returns(n.OptChild(2)))
	default:
		return N("js_return", n.Line, n)
	}
}

// retag copies n under a new Kind, used where the rewrite changes only the
// tag (yield → returnable_yield) and leaves children untouched.
func retag(n Node, kind string) Node {
	return Node{Kind: kind, Children: n.Children, Line: n.Line, EndLine: n.EndLine}
}
