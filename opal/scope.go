// scope.go — lexical scope stack, temp-variable pooling, loop frames.
//
// Grounded on the teacher's parent-linked Env (interpreter.go: `type Env
// struct { parent *Env; table map[string]Value }`, `NewEnv(parent)`) and
// on the ctrlStack push/pop-and-rewind discipline of the teacher's
// bytecode emitter (interpreter_exec.go: pushBlockCtx/pushLoopCtx/popCtx,
// addBreakJump/addContJump walking the innermost loop frame). Neither the
// teacher's runtime Env nor its bytecode ctrlStack needed a temp pool or
// helper-demand tracking — those are new structure this core's domain
// requires (a source-to-source emitter declares synthetic locals the
// teacher's tree-walking interpreter never had to name) — but the
// *shape*, parent-linked scope + explicit frame stack consulted by
// break/next/redo, is lifted directly.
//
// Locals and instance-variable names are tracked with
// github.com/emirpasic/gods' linkedhashset (grounded on npillmayer-gorgo,
// which depends on emirpasic/gods for its own parser tables) rather than
// a bare map, because the single `var` declaration emitted at a scope's
// head must list locals/temps in first-seen order for stable, readable
// output — a Go map has no iteration order to rely on.
package opal

import (
	"strconv"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// ScopeKind is one of the six lexical contexts this emitter tracks.
type ScopeKind int

const (
	ScopeTop ScopeKind = iota
	ScopeClass
	ScopeModule
	ScopeSClass
	ScopeDef
	ScopeIter
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeTop:
		return "top"
	case ScopeClass:
		return "class"
	case ScopeModule:
		return "module"
	case ScopeSClass:
		return "sclass"
	case ScopeDef:
		return "def"
	case ScopeIter:
		return "iter"
	default:
		return "unknown"
	}
}

// LoopFrame tracks one active while/until loop for break/next/redo.
type LoopFrame struct {
	Closure bool   // true when the loop itself was wrapped in an IIFE (break becomes `return <val>`)
	RedoVar string // synthetic redo-guard identifier, minted lazily
	UseRedo bool   // set once the body actually contains a `redo`
}

// Scope is one lexical context.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope
	Name   string

	Locals *linkedhashset.Set // declared local identifiers, first-seen order
	Args   []string           // ordered parameter identifiers
	IVars  *linkedhashset.Set // instance-variable accessor strings seen

	Methods []string // method names declared in a class/module body, in order

	TempsLive *linkedhashset.Set // temps currently checked out
	TempsPool []string           // free list; newTemp prefers the tail

	BlockName string // identifier bound to the block param; "__yield" by default in def/iter

	UsesBlock   bool
	UsesSuper   bool
	DefinesDefn bool
	DefinesDefs bool
	Defs        string

	WhileStack []*LoopFrame

	identity        string // lazily-assigned TMP_N naming this iter/def's own closure
	usesCheckerTemp bool   // scope references the literal `t` null-check idiom (emit_vars.go)
	usesYielder     bool   // scope's function reads its own ._p block slot (emit_method.go, emit_block.go)

	IsSingleton  bool   // this def scope belongs to a `defs` (singleton method), not a `defn` (emit_super.go)
	ClassName    string // enclosing class/module name text, resolved at install time (emit_super.go)
	superCapture string // lazily-minted super_N capture name for this def scope (emit_super.go)
}

func newScope(kind ScopeKind, parent *Scope, name string) *Scope {
	s := &Scope{
		Kind:      kind,
		Parent:    parent,
		Name:      name,
		Locals:    linkedhashset.New(),
		IVars:     linkedhashset.New(),
		TempsLive: linkedhashset.New(),
	}
	if kind == ScopeDef || kind == ScopeIter {
		s.BlockName = "__yield"
	}
	return s
}

// InLoop reports whether a while/until frame is active in this scope. An
// iter scope with no active frame reports false; the break/next emitters
// handle the iter case themselves.
func (s *Scope) InLoop() bool { return len(s.WhileStack) > 0 }

func (s *Scope) currentLoop() *LoopFrame {
	if len(s.WhileStack) == 0 {
		return nil
	}
	return s.WhileStack[len(s.WhileStack)-1]
}

// --- ScopeStack: the Emitter's @scope chain, as an explicit stack -----------

// pushScope enters a new scope of the given kind.
func (e *Emitter) pushScope(kind ScopeKind, name string) *Scope {
	var parent *Scope
	if len(e.scopes) > 0 {
		parent = e.scopes[len(e.scopes)-1]
	}
	s := newScope(kind, parent, name)
	e.scopes = append(e.scopes, s)
	return s
}

// popScope leaves the current scope, restoring the parent. Panics with an
// InternalInvariant if any temp is still checked out: every temp acquired
// via withTemp/newTemp must be queued back before the scope pops.
func (e *Emitter) popScope() {
	s := e.scope()
	if s.TempsLive.Size() != 0 {
		internalInvariant(e.line, "scope popped with live temps outstanding: "+joinSet(s.TempsLive))
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// scope returns the innermost active scope.
func (e *Emitter) scope() *Scope {
	if len(e.scopes) == 0 {
		internalInvariant(e.line, "scope stack underflow")
	}
	return e.scopes[len(e.scopes)-1]
}

// withScope pushes kind/name, runs fn, and pops on every return path
// (including panic) — scoped acquisition with guaranteed release.
func (e *Emitter) withScope(kind ScopeKind, name string, fn func(*Scope)) {
	s := e.pushScope(kind, name)
	defer e.popScope()
	fn(s)
}

// --- temp pool ---------------------------------------------------------

// newTemp acquires a temp in the current scope: reuse the most recently
// queued pool entry, or mint a fresh TMP_N.
func (e *Emitter) newTemp() string {
	s := e.scope()
	if n := len(s.TempsPool); n > 0 {
		name := s.TempsPool[n-1]
		s.TempsPool = s.TempsPool[:n-1]
		s.TempsLive.Add(name)
		return name
	}
	e.unique++
	name := tmpName(e.unique)
	s.TempsLive.Add(name)
	return name
}

// queueTemp returns a checked-out temp to the current scope's free list.
func (e *Emitter) queueTemp(name string) {
	s := e.scope()
	if !s.TempsLive.Contains(name) {
		internalInvariant(e.line, "queueTemp of a temp that was not live: "+name)
	}
	s.TempsLive.Remove(name)
	s.TempsPool = append(s.TempsPool, name)
}

// withTemp acquires a temp, runs fn with it, and queues it back on every
// return path.
func (e *Emitter) withTemp(fn func(name string) []Fragment) []Fragment {
	name := e.newTemp()
	defer e.queueTemp(name)
	return fn(name)
}

// declaredNames returns every local and live-or-pooled temp declared in s,
// in first-seen order, for the single `var` statement emitted at the head
// of a top/class/module/sclass/def/iter block body.
func (s *Scope) declaredNames() []string {
	out := make([]string, 0, s.Locals.Size()+s.TempsLive.Size()+len(s.TempsPool)+2)
	if s.usesCheckerTemp {
		out = append(out, checkerTemp)
	}
	if s.usesYielder {
		out = append(out, "yielder")
	}
	for _, v := range s.Locals.Values() {
		out = append(out, v.(string))
	}
	for _, v := range s.TempsLive.Values() {
		out = append(out, v.(string))
	}
	out = append(out, s.TempsPool...)
	return out
}

// identityOf lazily assigns (and thereafter returns) a stable TMP_N used
// to refer to this iter/def's own emitted closure from within its body.
func (e *Emitter) identityOf(s *Scope) string {
	if s.identity == "" {
		e.unique++
		s.identity = tmpName(e.unique)
	}
	return s.identity
}

// superCaptureOf lazily assigns (and thereafter returns) the super_N
// capture identifier a def scope's `super` calls reference, minted on
// first use so a def whose body never calls `super` never gets one
// (emit_super.go, emit_method.go).
func (e *Emitter) superCaptureOf(s *Scope) string {
	if s.superCapture == "" {
		s.superCapture = e.mintSuperCapture()
	}
	return s.superCapture
}

func tmpName(n int) string {
	return "TMP_" + strconv.Itoa(n)
}

func joinSet(set *linkedhashset.Set) string {
	var out string
	for i, v := range set.Values() {
		if i > 0 {
			out += ", "
		}
		out += v.(string)
	}
	return out
}
