// Package decode turns a solver.Solution's variable assignment back
// into the final prompt text: the preamble sentence for every
// introduced shortcut, followed by the per-slot rendering the solved
// assignment chose (spec.md §4.5).
package decode

import (
	"fmt"
	"strings"

	"github.com/steveyegge/schemacompress/internal/ilp"
	"github.com/steveyegge/schemacompress/internal/render"
)

// Decode reads assignment (a feasible or optimal solution to the
// problem ilp.Build produced for m) and reconstructs the output text:
// one preamble sentence per introduced shortcut, a newline, then the
// nested rendering itself (no preamble and no newline when no shortcut
// is introduced).
func Decode(m *ilp.Model, assignment []float64) (string, error) {
	preamble, err := decodePreamble(m, assignment)
	if err != nil {
		return "", err
	}

	slots, err := decodeSlots(m, assignment)
	if err != nil {
		return "", err
	}
	body := render.Format(slots)

	if preamble == "" {
		return body, nil
	}
	return preamble + "\n" + body, nil
}

func decodePreamble(m *ilp.Model, assignment []float64) (string, error) {
	var b strings.Builder
	for si, sc := range m.ShortcutList() {
		v, err := lookup(assignment, m.VarU(si))
		if err != nil {
			return "", err
		}
		if v {
			b.WriteString(sc.Preamble)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func decodeSlots(m *ilp.Model, assignment []float64) ([]render.Slot, error) {
	ids := m.Identifiers()
	slots := make([]render.Slot, m.NumPositions())

	for p := 0; p < m.NumPositions(); p++ {
		empty, err := lookup(assignment, m.VarEmpty(p))
		if err != nil {
			return nil, err
		}
		if empty {
			continue
		}

		closed, err := lookup(assignment, m.VarX(p, m.CloseToken()))
		if err != nil {
			return nil, err
		}

		idIdx, hasID, err := activeIdentifier(m, assignment, p)
		if err != nil {
			return nil, err
		}

		switch {
		case hasID:
			text, err := representationText(m, assignment, p, idIdx, ids[idIdx])
			if err != nil {
				return nil, err
			}
			open, err := lookup(assignment, m.VarX(p, m.OpenToken()))
			if err != nil {
				return nil, err
			}
			slots[p] = render.Slot{Token: text, Open: open, Close: closed && !open}
		case closed:
			slots[p] = render.Slot{Close: true}
		}
	}

	return slots, nil
}

// activeIdentifier returns which identifier (if any) the assignment
// emits at position p.
func activeIdentifier(m *ilp.Model, assignment []float64, p int) (int, bool, error) {
	for idIdx := range m.Identifiers() {
		on, err := lookup(assignment, m.VarX(p, idIdx))
		if err != nil {
			return 0, false, err
		}
		if on {
			return idIdx, true, nil
		}
	}
	return 0, false, nil
}

// representationText returns the literal text for identifier idIdx at
// position p: the full identifier, or a shortcut-substituted form, per
// whichever representation variable the assignment set to 1.
func representationText(m *ilp.Model, assignment []float64, p, idIdx int, id string) (string, error) {
	shortcuts := m.ShortcutList()
	for si, sc := range shortcuts {
		rv, ok := m.VarR(p, idIdx, si+1)
		if !ok {
			continue
		}
		on, err := lookup(assignment, rv)
		if err != nil {
			return "", err
		}
		if on {
			return strings.ReplaceAll(id, sc.Substring, sc.Placeholder), nil
		}
	}

	if rv, ok := m.VarR(p, idIdx, 0); ok {
		on, err := lookup(assignment, rv)
		if err != nil {
			return "", err
		}
		if on {
			return id, nil
		}
	}

	// No representation variable fired (should be impossible for a
	// feasible assignment, since exactlyOneRepresentation forces one
	// whenever the identifier itself is emitted): fall back to the
	// full identifier rather than emitting nothing.
	return id, nil
}

func lookup(assignment []float64, idx int) (bool, error) {
	if idx < 0 || idx >= len(assignment) {
		return false, fmt.Errorf("decode: variable index %d out of range (len %d)", idx, len(assignment))
	}
	return assignment[idx] >= 0.5, nil
}
