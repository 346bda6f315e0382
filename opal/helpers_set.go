// helpers_set.go — runtime helper demand tracking.
//
// Grounded on the teacher's various observed-usage booleans scattered
// through its bytecode emitter (interpreter_exec.go's ctrlCtx, emitter
// struct fields like src/marks) — this core centralizes the analogous
// "what does the emitted code need from the runtime" bookkeeping into one
// small ordered set, read once by the top-level assembler (assemble.go)
// to emit `var __<name> = __opal.<name>` bindings.
//
// Backed by emirpasic/gods' linkedhashset for the same reason scope.go
// uses it: deterministic, first-seen iteration order, which this file
// then overrides for the two pinned leaders: order of inclusion is fixed
// (breaker, slice), then alphabetical over the remainder, for
// deterministic output.
package opal

import (
	"sort"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// HelperSet tracks which runtime helpers (breaker, slice, range, hash,
// hash2, klass, module, gvars, ...) the emitted program requires.
type HelperSet struct {
	set *linkedhashset.Set
}

func newHelperSet() *HelperSet {
	h := &HelperSet{set: linkedhashset.New()}
	h.set.Add("breaker", "slice")
	return h
}

// Require records that the emitted code references __<name>.
func (h *HelperSet) Require(name string) { h.set.Add(name) }

// Has reports whether name has been required.
func (h *HelperSet) Has(name string) bool { return h.set.Contains(name) }

// Ordered returns the required helper names: "breaker", "slice" first
// (always present, seeded at construction), then every other required
// helper alphabetically.
func (h *HelperSet) Ordered() []string {
	rest := make([]string, 0, h.set.Size())
	for _, v := range h.set.Values() {
		name := v.(string)
		if name == "breaker" || name == "slice" {
			continue
		}
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append([]string{"breaker", "slice"}, rest...)
}
