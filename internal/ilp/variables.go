package ilp

import (
	"strings"

	"github.com/steveyegge/schemacompress/internal/render"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/shortcutgen"
)

// newModel interns the schema's identifiers and derives the structural
// bounds (L, D) and fact set a Model needs before any variable or
// constraint is built.
func newModel(s *schema.Schema, shortcuts []shortcutgen.Candidate, opts Options) *Model {
	ids := s.Identifiers()
	idIndex := make(map[string]int, len(ids))
	for i, id := range ids {
		idIndex[id] = i
	}

	trueFacts, falseFacts := s.Facts()
	seed := render.Render(s, render.Options{})

	l := seed.MaxLength
	if opts.UpperBound > l {
		l = opts.UpperBound
	}

	m := &Model{
		Schema:     s,
		Opts:       opts,
		Shortcuts:  shortcuts,
		L:          l,
		D:          opts.MaxDepth,
		Seed:       seed,
		Ids:        ids,
		idIndex:    idIndex,
		openTok:    len(ids),
		closeTok:   len(ids) + 1,
		numToks:    len(ids) + 2,
		TrueFacts:  trueFacts,
		FalseFacts: falseFacts,
		vars:       newVariableAllocator(),
	}
	return m
}

// registerRepresentations ensures the representation variable r[p,t,s]
// exists for every (position, identifier) pair at slot s=0 (the "write
// the full identifier" choice) and for every shortcut whose substring
// actually occurs inside that identifier — the sparse representation
// the design explicitly calls for, since most (identifier, shortcut)
// pairs never apply.
func (m *Model) registerRepresentations() {
	for p := 0; p < m.L; p++ {
		for idIdx, id := range m.Ids {
			m.vars.ensureR(p, idIdx, 0)
			for si, sc := range m.Shortcuts {
				if sc.Substring != "" && strings.Contains(id, sc.Substring) {
					m.vars.ensureR(p, idIdx, si+1)
				}
			}
		}
	}
}
