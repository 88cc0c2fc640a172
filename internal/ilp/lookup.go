package ilp

// The accessors below are the read-only surface internal/decode uses to
// translate a solved (or feasible) variable assignment back into slot
// contents. They never allocate: a decode call only ever looks up
// variables a finished Build already created.

// NumPositions returns L, the number of slots in the model.
func (m *Model) NumPositions() int { return m.L }

// NumDepths returns D, the maximum context-stack depth.
func (m *Model) NumDepths() int { return m.D }

// Identifiers returns the interned identifier list, indexed the same
// way every [p, idIdx] variable family is.
func (m *Model) Identifiers() []string { return m.Ids }

// OpenToken and CloseToken return the token indices reserved for "("
// and ")" respectively; every other token index names an identifier.
func (m *Model) OpenToken() int  { return m.openTok }
func (m *Model) CloseToken() int { return m.closeTok }

// VarX returns the decision variable for emitting token tok at
// position p (tok is an identifier index, OpenToken, or CloseToken).
func (m *Model) VarX(p, tok int) int { return m.vars.X(p, tok) }

// VarEmpty returns the variable marking position p as a blank slot.
func (m *Model) VarEmpty(p int) int { return m.vars.Empty(p) }

// VarR looks up the representation variable for identifier idIdx at
// position p using the given shortcut slot (0 = full identifier, i+1 =
// shortcut i). ok is false if that combination was never registered.
func (m *Model) VarR(p, idIdx, slot int) (int, bool) { return m.vars.R(p, idIdx, slot) }

// VarU returns the variable for whether shortcut si was introduced.
func (m *Model) VarU(si int) int { return m.vars.U(si) }

// ShortcutList returns the candidate shortcuts the model was built with,
// in the same order VarU and VarR index them.
func (m *Model) ShortcutList() []shortcutCandidateView {
	out := make([]shortcutCandidateView, len(m.Shortcuts))
	for i, sc := range m.Shortcuts {
		out[i] = shortcutCandidateView{
			Substring:   sc.Substring,
			Placeholder: sc.Placeholder,
			Preamble:    sc.PreambleSentence(),
		}
	}
	return out
}

// shortcutCandidateView is the subset of shortcutgen.Candidate decode
// needs, re-exposed here so internal/decode does not have to import
// internal/shortcutgen merely to read three strings back out.
type shortcutCandidateView struct {
	Substring   string
	Placeholder string
	Preamble    string
}
