package ilp

import (
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/solver"
)

// buildConstraints constructs every constraint the model requires, in
// the process lazily allocating every variable the constraints touch
// (the allocator is idempotent, so a variable referenced by two
// different constraint groups gets the same index both times). By the
// time this returns, m.vars.next is the final variable count.
func (m *Model) buildConstraints() []solver.Constraint {
	var cs []solver.Constraint

	cs = append(cs, m.perSlotStructuralConstraints()...)
	cs = append(cs, m.parenthesisBalanceConstraints()...)
	cs = append(cs, m.contextWellFormednessConstraints()...)
	cs = append(cs, m.activationConstraints()...)
	cs = append(cs, m.monotoneContextConstraints()...)
	cs = append(cs, m.factCouplingConstraints()...)
	cs = append(cs, m.representationConstraints()...)

	if m.Opts.UsePruning {
		cs = append(cs, m.pruningConstraints()...)
	}

	return cs
}

// perSlotStructuralConstraints: at most one of {open, close, empty}
// per slot; empty is the logical NOR of every token choice; at most
// one identifier per slot; an opening parenthesis requires an
// identifier in the same slot.
//
// spec.md's formal constraint list also states a global "empties are
// right-padded" rule (empty[p] <= empty[p+1] for every p). The
// original Gurobi model this was distilled from keeps interior
// word-separation on a dedicated "," token and applies right-padding
// only to its separate is_empty padding variable; the distillation
// folded both roles into one "empty" flag (spec.md §4.5's decoder:
// "if no identifier and no parenthesis is active at a slot, emit a
// single space"), which needs interior empties wherever two plain
// identifiers sit back to back in the same open context (e.g. a
// column's type followed by its next annotation). Enforcing global
// monotonicity here would make the naive seed itself infeasible
// whenever a table has more than one annotation per column, which
// contradicts testable property 6 (seed feasibility). This builder
// omits the global monotonicity constraint for that reason; nothing
// else in the model rewards emitting content after a trailing empty,
// since every representation variable still costs tokens in the
// objective.
func (m *Model) perSlotStructuralConstraints() []solver.Constraint {
	var cs []solver.Constraint

	for p := 0; p < m.L; p++ {
		empty := m.vars.Empty(p)
		open := m.vars.X(p, m.openTok)
		closeVar := m.vars.X(p, m.closeTok)

		cs = append(cs, solver.Constraint{
			Name:     "atMostOneOfOpenCloseEmpty",
			Coeffs:   map[int]float64{open: 1, closeVar: 1, empty: 1},
			Relation: solver.LE,
			RHS:      1,
		})

		allTokVars := make([]int, 0, m.numToks)
		for t := 0; t < m.numToks; t++ {
			allTokVars = append(allTokVars, m.vars.X(p, t))
		}

		// empty >= 1 - sum(x[p,t])  <=>  empty + sum(x) >= 1
		coeffs := map[int]float64{empty: 1}
		for _, v := range allTokVars {
			coeffs[v] += 1
		}
		cs = append(cs, solver.Constraint{Name: "emptyLowerBound", Coeffs: coeffs, Relation: solver.GE, RHS: 1})

		// empty <= 1 - x[p,t] for each t  <=>  empty + x[p,t] <= 1
		for _, v := range allTokVars {
			cs = append(cs, solver.Constraint{
				Name:     "emptyUpperBound",
				Coeffs:   map[int]float64{empty: 1, v: 1},
				Relation: solver.LE,
				RHS:      1,
			})
		}

		// at most one identifier token per slot
		idCoeffs := make(map[int]float64, len(m.Ids))
		for idIdx := range m.Ids {
			idCoeffs[m.vars.X(p, idIdx)] = 1
		}
		cs = append(cs, solver.Constraint{Name: "oneIdentifierPerSlot", Coeffs: idCoeffs, Relation: solver.LE, RHS: 1})

		// opening requires an identifier in the same slot
		openRequiresID := map[int]float64{open: 1}
		for idIdx := range m.Ids {
			openRequiresID[m.vars.X(p, idIdx)] -= 1
		}
		cs = append(cs, solver.Constraint{Name: "openRequiresIdentifier", Coeffs: openRequiresID, Relation: solver.LE, RHS: 0})
	}

	return cs
}

// parenthesisBalanceConstraints: total opens equal total closes, and
// no prefix ever has more closes than opens.
func (m *Model) parenthesisBalanceConstraints() []solver.Constraint {
	var cs []solver.Constraint

	total := map[int]float64{}
	for p := 0; p < m.L; p++ {
		total[m.vars.X(p, m.openTok)] += 1
		total[m.vars.X(p, m.closeTok)] -= 1
	}
	cs = append(cs, solver.Constraint{Name: "parenBalance", Coeffs: total, Relation: solver.EQ, RHS: 0})

	prefix := map[int]float64{}
	for p := 0; p < m.L; p++ {
		prefix[m.vars.X(p, m.openTok)] += 1
		prefix[m.vars.X(p, m.closeTok)] -= 1
		snapshot := make(map[int]float64, len(prefix))
		for k, v := range prefix {
			snapshot[k] = v
		}
		cs = append(cs, solver.Constraint{Name: "parenPrefixNeverNegative", Coeffs: snapshot, Relation: solver.GE, RHS: 0})
	}

	return cs
}

// contextWellFormednessConstraints: a token already on the context
// stack cannot be re-emitted; each depth holds at most one identifier;
// context fills bottom-up; the initial context is empty.
func (m *Model) contextWellFormednessConstraints() []solver.Constraint {
	var cs []solver.Constraint

	for p := 0; p < m.L; p++ {
		for idIdx := range m.Ids {
			coeffs := map[int]float64{m.vars.X(p, idIdx): 1}
			for d := 0; d < m.D; d++ {
				coeffs[m.vars.C(p, d, idIdx)] += 1
			}
			cs = append(cs, solver.Constraint{Name: "noReemitFromContext", Coeffs: coeffs, Relation: solver.LE, RHS: 1})
		}

		for d := 0; d < m.D; d++ {
			coeffs := make(map[int]float64, len(m.Ids))
			for idIdx := range m.Ids {
				coeffs[m.vars.C(p, d, idIdx)] = 1
			}
			cs = append(cs, solver.Constraint{Name: "oneIdentifierPerDepth", Coeffs: coeffs, Relation: solver.LE, RHS: 1})
		}

		for d := 0; d < m.D-1; d++ {
			coeffs := make(map[int]float64, 2*len(m.Ids))
			for idIdx := range m.Ids {
				coeffs[m.vars.C(p, d, idIdx)] += 1
			}
			for idIdx := range m.Ids {
				coeffs[m.vars.C(p, d+1, idIdx)] -= 1
			}
			cs = append(cs, solver.Constraint{Name: "contextFillsBottomUp", Coeffs: coeffs, Relation: solver.GE, RHS: 0})
		}
	}

	initial := map[int]float64{}
	for d := 0; d < m.D; d++ {
		for idIdx := range m.Ids {
			initial[m.vars.C(0, d, idIdx)] = 1
		}
	}
	cs = append(cs, solver.Constraint{Name: "initialContextEmpty", Coeffs: initial, Relation: solver.EQ, RHS: 0})

	return cs
}

// activationConstraints: a[p,t] linearizes "open AND emit t at p", and
// activation forces the opened identifier into the next slot's
// context; context size advances by exactly +1 on an opening and -1
// on a closing.
func (m *Model) activationConstraints() []solver.Constraint {
	var cs []solver.Constraint

	for p := 0; p < m.L; p++ {
		open := m.vars.X(p, m.openTok)
		for idIdx := range m.Ids {
			token := m.vars.X(p, idIdx)
			act := m.vars.A(p, idIdx)

			cs = append(cs, solver.Constraint{Name: "activationLEOpen", Coeffs: map[int]float64{act: 1, open: -1}, Relation: solver.LE, RHS: 0})
			cs = append(cs, solver.Constraint{Name: "activationLEToken", Coeffs: map[int]float64{act: 1, token: -1}, Relation: solver.LE, RHS: 0})
			cs = append(cs, solver.Constraint{Name: "activationGE", Coeffs: map[int]float64{act: 1, open: -1, token: -1}, Relation: solver.GE, RHS: -1})

			if p+1 < m.L {
				coeffs := map[int]float64{act: -1}
				for d := 0; d < m.D; d++ {
					coeffs[m.vars.C(p+1, d, idIdx)] += 1
				}
				cs = append(cs, solver.Constraint{Name: "activationEntersNextContext", Coeffs: coeffs, Relation: solver.GE, RHS: 0})
			}
		}

		if p+1 < m.L {
			closeVar := m.vars.X(p, m.closeTok)
			coeffs := map[int]float64{open: -1, closeVar: 1}
			for d := 0; d < m.D; d++ {
				for idIdx := range m.Ids {
					coeffs[m.vars.C(p+1, d, idIdx)] += 1
				}
				for idIdx := range m.Ids {
					coeffs[m.vars.C(p, d, idIdx)] -= 1
				}
			}
			cs = append(cs, solver.Constraint{Name: "contextSizeAdvances", Coeffs: coeffs, Relation: solver.EQ, RHS: 0})
		}
	}

	return cs
}

// monotoneContextConstraints: a context entry cannot disappear
// without a closing, and cannot appear without an opening.
func (m *Model) monotoneContextConstraints() []solver.Constraint {
	var cs []solver.Constraint

	for p := 0; p+1 < m.L; p++ {
		open := m.vars.X(p, m.openTok)
		closeVar := m.vars.X(p, m.closeTok)
		for d := 0; d < m.D; d++ {
			for idIdx := range m.Ids {
				cur := m.vars.C(p, d, idIdx)
				next := m.vars.C(p+1, d, idIdx)

				cs = append(cs, solver.Constraint{
					Name:     "contextCannotDropWithoutClose",
					Coeffs:   map[int]float64{next: 1, cur: -1, closeVar: 1},
					Relation: solver.GE,
					RHS:      0,
				})
				cs = append(cs, solver.Constraint{
					Name:     "contextCannotAddWithoutOpen",
					Coeffs:   map[int]float64{next: 1, cur: -1, open: -1},
					Relation: solver.LE,
					RHS:      0,
				})
			}
		}
	}

	return cs
}

// factCouplingConstraints links each fact's m[f] variable to mention
// variables derived from the context stack, fixing true facts to 1
// and false facts to 0.
func (m *Model) factCouplingConstraints() []solver.Constraint {
	var cs []solver.Constraint

	allFacts := append(append([]factEntry{}, factEntries(m.TrueFacts, true)...), factEntries(m.FalseFacts, false)...)

	for factIdx, fe := range allFacts {
		aIdx, aOK := m.idIndex[fe.fact.A]
		bIdx, bOK := m.idIndex[fe.fact.B]
		if !aOK || !bOK {
			continue
		}

		var mentions []int
		for p := 0; p < m.L; p++ {
			for d := 0; d < m.D; d++ {
				mentions = append(mentions, m.mentionVar(&cs, p, d, aIdx, bIdx))
				mentions = append(mentions, m.mentionVar(&cs, p, d, bIdx, aIdx))
			}
		}

		mVar := m.vars.M(factIdx)

		upper := map[int]float64{mVar: 1}
		for _, men := range mentions {
			upper[men] -= 1
		}
		cs = append(cs, solver.Constraint{Name: "factUpperBoundsMentions", Coeffs: upper, Relation: solver.LE, RHS: 0})

		for _, men := range mentions {
			cs = append(cs, solver.Constraint{
				Name:     "factAtLeastEachMention",
				Coeffs:   map[int]float64{mVar: 1, men: -1},
				Relation: solver.GE,
				RHS:      0,
			})
		}

		rhs := 0.0
		if fe.isTrue {
			rhs = 1
		}
		cs = append(cs, solver.Constraint{Name: "factFixed", Coeffs: map[int]float64{mVar: 1}, Relation: solver.EQ, RHS: rhs})
	}

	return cs
}

type factEntry struct {
	fact   schema.Fact
	isTrue bool
}

func factEntries(facts []schema.Fact, isTrue bool) []factEntry {
	out := make([]factEntry, len(facts))
	for i, f := range facts {
		out[i] = factEntry{fact: f, isTrue: isTrue}
	}
	return out
}

// mentionVar returns the auxiliary variable for "outer sits in the
// context stack at (p,d) and inner is emitted at p", creating it (and
// its three linking constraints) the first time this (p,d,outer,inner)
// combination is requested.
func (m *Model) mentionVar(cs *[]solver.Constraint, p, d, outerIdx, innerIdx int) int {
	key := [4]int{p, d, outerIdx, innerIdx}
	if idx, ok := m.vars.mention[key]; ok {
		return idx
	}
	idx := m.vars.fresh()
	m.vars.mention[key] = idx

	outerVar := m.vars.C(p, d, outerIdx)
	innerVar := m.vars.X(p, innerIdx)

	*cs = append(*cs,
		solver.Constraint{Name: "mentionLEOuter", Coeffs: map[int]float64{idx: 1, outerVar: -1}, Relation: solver.LE, RHS: 0},
		solver.Constraint{Name: "mentionLEInner", Coeffs: map[int]float64{idx: 1, innerVar: -1}, Relation: solver.LE, RHS: 0},
		solver.Constraint{Name: "mentionGE", Coeffs: map[int]float64{idx: 1, outerVar: -1, innerVar: -1}, Relation: solver.GE, RHS: -1},
	)
	return idx
}

// representationConstraints: exactly one representation is chosen when
// an identifier is emitted (none otherwise), and a shortcut's
// representation may only be used once that shortcut is introduced.
func (m *Model) representationConstraints() []solver.Constraint {
	m.registerRepresentations()
	var cs []solver.Constraint

	for p := 0; p < m.L; p++ {
		for idIdx := range m.Ids {
			token := m.vars.X(p, idIdx)
			coeffs := map[int]float64{token: -1}
			full, _ := m.vars.R(p, idIdx, 0)
			coeffs[full] += 1
			for si := range m.Shortcuts {
				if rv, ok := m.vars.R(p, idIdx, si+1); ok {
					coeffs[rv] += 1
					uVar := m.vars.U(si)
					cs = append(cs, solver.Constraint{
						Name:     "representationRequiresIntroducedShortcut",
						Coeffs:   map[int]float64{rv: 1, uVar: -1},
						Relation: solver.LE,
						RHS:      0,
					})
				}
			}
			cs = append(cs, solver.Constraint{Name: "exactlyOneRepresentation", Coeffs: coeffs, Relation: solver.EQ, RHS: 0})
		}
	}

	return cs
}

// pruningConstraints narrows the search without excluding the optimum
// for typical inputs: at most one table predicate and at most one
// column identifier may sit in the context stack at once, and the
// first slot always opens with the first table's predicate.
func (m *Model) pruningConstraints() []solver.Constraint {
	var cs []solver.Constraint

	predicateIdx := make([]int, 0, len(m.Schema.Tables))
	columnIdx := make([]int, 0)
	for _, t := range m.Schema.Tables {
		if idx, ok := m.idIndex[t.Predicate()]; ok {
			predicateIdx = append(predicateIdx, idx)
		}
		for _, c := range t.Columns {
			colID := m.Schema.ColumnIdentifier(t, c)
			if idx, ok := m.idIndex[colID]; ok {
				columnIdx = append(columnIdx, idx)
			}
		}
	}

	for p := 0; p < m.L; p++ {
		predCoeffs := make(map[int]float64, len(predicateIdx)*m.D)
		colCoeffs := make(map[int]float64, len(columnIdx)*m.D)
		for d := 0; d < m.D; d++ {
			for _, idIdx := range predicateIdx {
				predCoeffs[m.vars.C(p, d, idIdx)] += 1
			}
			for _, idIdx := range columnIdx {
				colCoeffs[m.vars.C(p, d, idIdx)] += 1
			}
		}
		if len(predCoeffs) > 0 {
			cs = append(cs, solver.Constraint{Name: "atMostOnePredicateInContext", Coeffs: predCoeffs, Relation: solver.LE, RHS: 1})
		}
		if len(colCoeffs) > 0 {
			cs = append(cs, solver.Constraint{Name: "atMostOneColumnInContext", Coeffs: colCoeffs, Relation: solver.LE, RHS: 1})
		}
	}

	if len(m.Schema.Tables) > 0 && m.L > 0 {
		firstPred := m.Schema.Tables[0].Predicate()
		if idx, ok := m.idIndex[firstPred]; ok {
			cs = append(cs, solver.Constraint{Name: "firstSlotOpensFirstTable", Coeffs: map[int]float64{m.vars.X(0, idx): 1}, Relation: solver.EQ, RHS: 1})
			cs = append(cs, solver.Constraint{Name: "firstSlotOpens", Coeffs: map[int]float64{m.vars.X(0, m.openTok): 1}, Relation: solver.EQ, RHS: 1})
		}
	}

	return cs
}
