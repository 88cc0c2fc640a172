package ilp

// buildMIPStart converts the naive seed rendering into a full
// variable assignment: walk the slot sequence maintaining the context
// stack exactly as the constraints require, and set every variable
// family consistently so the result is itself a feasible solution.
// Must run after buildConstraints (so every variable, including the
// sparse mention and representation families, already has an index).
func (m *Model) buildMIPStart() []float64 {
	x := make([]float64, m.NumVars)

	type stackEntry struct{ idIdx int }
	var stack []stackEntry
	// context[p][d] = identifier index occupying depth d at position p,
	// or -1 if that depth is unoccupied.
	context := make([][]int, m.L)
	for p := range context {
		context[p] = make([]int, m.D)
		for d := range context[p] {
			context[p][d] = -1
		}
	}

	for p, slot := range m.Seed.Slots {
		for d := 0; d < m.D && d < len(stack); d++ {
			context[p][d] = stack[d].idIdx
		}

		switch {
		case slot.Token != "" && slot.Open:
			idIdx := m.idIndex[slot.Token]
			x[m.vars.X(p, idIdx)] = 1
			x[m.vars.X(p, m.openTok)] = 1
			if full, ok := m.vars.R(p, idIdx, 0); ok {
				x[full] = 1
			}
			if len(stack) < m.D {
				stack = append(stack, stackEntry{idIdx})
			}
		case slot.Token != "":
			idIdx := m.idIndex[slot.Token]
			x[m.vars.X(p, idIdx)] = 1
			if full, ok := m.vars.R(p, idIdx, 0); ok {
				x[full] = 1
			}
		case slot.Close:
			x[m.vars.X(p, m.closeTok)] = 1
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			x[m.vars.Empty(p)] = 1
		}
	}

	// Positions beyond the naive seed's own length only arise when
	// Options.UpperBound stretches L past what the seed needed; pad
	// them as empty so the start stays feasible.
	for p := len(m.Seed.Slots); p < m.L; p++ {
		x[m.vars.Empty(p)] = 1
	}

	for p := 0; p < m.L; p++ {
		for d := 0; d < m.D; d++ {
			if idIdx := context[p][d]; idIdx >= 0 {
				x[m.vars.C(p, d, idIdx)] = 1
			}
		}
	}

	for p := 0; p < m.L; p++ {
		for idIdx := range m.Ids {
			if x[m.vars.X(p, idIdx)] == 1 && x[m.vars.X(p, m.openTok)] == 1 {
				x[m.vars.A(p, idIdx)] = 1
			}
		}
	}

	for key, idx := range m.vars.mention {
		p, d, outerIdx, innerIdx := key[0], key[1], key[2], key[3]
		outer := x[m.vars.C(p, d, outerIdx)]
		inner := x[m.vars.X(p, innerIdx)]
		if outer == 1 && inner == 1 {
			x[idx] = 1
		}
	}

	trueFacts, falseFacts := m.Schema.Facts()
	for i := range trueFacts {
		x[m.vars.M(i)] = 1
	}
	for i := range falseFacts {
		x[m.vars.M(len(trueFacts)+i)] = 0
	}

	return x
}
