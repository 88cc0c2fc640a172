// Package ilp builds the integer linear program whose feasible region
// is exactly the set of well-formed parenthesis-nested texts encoding
// a schema's required facts, and whose objective is the tokenized
// length of the text plus the cost of any introduced shortcuts. The
// output is a solver.Problem, solver-agnostic by construction, plus a
// Model that remembers the variable layout so internal/decode can
// read a solver.Solution back into slot contents.
package ilp

import (
	"github.com/steveyegge/schemacompress/internal/render"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/shortcutgen"
	"github.com/steveyegge/schemacompress/internal/solver"
)

// Options configures the variable family and pruning applied when
// building a Model.
type Options struct {
	// MaxDepth bounds parenthesis nesting (D).
	MaxDepth int
	// ContextK is the number of highest-frequency identifiers kept
	// eligible for depth > 0 under the variable hints; identifiers
	// outside the top ContextK are hinted to zero at every depth > 0.
	ContextK int
	// UseHints toggles whether the context_k-derived hints are set.
	UseHints bool
	// UsePruning toggles the optional structural pruning cuts.
	UsePruning bool
	// UpperBound replaces L (the naive renderer's MaxLength) when it is
	// larger; zero or a smaller value keeps the naive seed's own length
	// as the bound.
	UpperBound int
}

// DefaultOptions mirrors the values used throughout the scenario
// walkthroughs: shallow nesting is enough for realistic schemas, and
// both hints and pruning are worth their cost by default.
func DefaultOptions() Options {
	return Options{MaxDepth: 3, ContextK: 8, UseHints: true, UsePruning: true}
}

// Model owns the identifier interning and variable-index layout for
// one schema's compression. It is solver-agnostic: Build returns both
// a Model and the solver.Problem derived from it, and internal/decode
// uses the Model (not the Problem) to interpret a solution.
type Model struct {
	Schema    *schema.Schema
	Opts      Options
	Shortcuts []shortcutgen.Candidate

	L int // max_length: number of positions
	D int // max_depth

	Seed *render.Result // naive rendering: both the length bound and the MIP start source

	Ids      []string
	idIndex  map[string]int
	openTok  int
	closeTok int
	numToks  int // len(Ids) + 2

	TrueFacts  []schema.Fact
	FalseFacts []schema.Fact

	vars    variableAllocator
	NumVars int
}

// tokenOf returns the token index for an identifier, "(", or ")".
func (m *Model) tokenOf(s string) int {
	if s == "(" {
		return m.openTok
	}
	if s == ")" {
		return m.closeTok
	}
	return m.idIndex[s]
}

func (m *Model) isIdentifierToken(tok int) bool {
	return tok >= 0 && tok < len(m.Ids)
}

// variableAllocator hands out fresh, sequential variable indices and
// remembers the mapping from (family, key) to index so later stages
// (objective, hints, decode) can look variables back up.
type variableAllocator struct {
	next int

	x     map[[2]int]int // [p, tok] -> var
	c     map[[3]int]int // [p, d, idIdx] -> var
	a     map[[2]int]int // [p, idIdx] -> var (activation)
	empty map[int]int    // [p] -> var
	r     map[[3]int]int // [p, idIdx, shortcutSlot] -> var (shortcutSlot 0 = none, i+1 = shortcut i)
	u       map[int]int    // [shortcutIdx] -> var
	m       map[int]int    // [factIdx] -> var (m[f])
	mention map[[4]int]int // [p, d, outerIdIdx, innerIdIdx] -> var
}

func newVariableAllocator() variableAllocator {
	return variableAllocator{
		x:     make(map[[2]int]int),
		c:     make(map[[3]int]int),
		a:     make(map[[2]int]int),
		empty: make(map[int]int),
		r:     make(map[[3]int]int),
		u:       make(map[int]int),
		m:       make(map[int]int),
		mention: make(map[[4]int]int),
	}
}

func (v *variableAllocator) fresh() int {
	idx := v.next
	v.next++
	return idx
}

func (v *variableAllocator) X(p, tok int) int {
	key := [2]int{p, tok}
	if idx, ok := v.x[key]; ok {
		return idx
	}
	idx := v.fresh()
	v.x[key] = idx
	return idx
}

func (v *variableAllocator) C(p, d, idIdx int) int {
	key := [3]int{p, d, idIdx}
	if idx, ok := v.c[key]; ok {
		return idx
	}
	idx := v.fresh()
	v.c[key] = idx
	return idx
}

func (v *variableAllocator) A(p, idIdx int) int {
	key := [2]int{p, idIdx}
	if idx, ok := v.a[key]; ok {
		return idx
	}
	idx := v.fresh()
	v.a[key] = idx
	return idx
}

func (v *variableAllocator) Empty(p int) int {
	if idx, ok := v.empty[p]; ok {
		return idx
	}
	idx := v.fresh()
	v.empty[p] = idx
	return idx
}

// R returns the representation variable for identifier idIdx at
// position p using shortcut slot (0 = full identifier, i+1 =
// shortcut i). ok is false if that (idIdx, slot) combination was never
// registered by registerRepresentations (the shortcut's substring does
// not occur in the identifier).
func (v *variableAllocator) R(p, idIdx, slot int) (int, bool) {
	key := [3]int{p, idIdx, slot}
	idx, ok := v.r[key]
	return idx, ok
}

func (v *variableAllocator) ensureR(p, idIdx, slot int) int {
	key := [3]int{p, idIdx, slot}
	if idx, ok := v.r[key]; ok {
		return idx
	}
	idx := v.fresh()
	v.r[key] = idx
	return idx
}

func (v *variableAllocator) U(shortcutIdx int) int {
	if idx, ok := v.u[shortcutIdx]; ok {
		return idx
	}
	idx := v.fresh()
	v.u[shortcutIdx] = idx
	return idx
}

func (v *variableAllocator) M(factIdx int) int {
	if idx, ok := v.m[factIdx]; ok {
		return idx
	}
	idx := v.fresh()
	v.m[factIdx] = idx
	return idx
}

// Solver is the minimal capability Build's caller needs to actually
// solve the returned problem; re-exported here so callers need not
// import internal/solver just to name the type in signatures.
type Solver = solver.Solver
