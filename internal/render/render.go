// Package render produces the naive, deterministic nested rendering of
// a schema: a greedy seed encoding used both as the ILP's MIP start and
// as the upper bound on output length (spec.md §4.3).
package render

import (
	"strings"

	"github.com/steveyegge/schemacompress/internal/schema"
)

// Options configures the naive renderer.
type Options struct {
	// ForceQualified always renders a column as "T.C", bypassing the
	// ambiguity rule. This is a cosmetic override for display purposes
	// only (the original's full_names toggle); the ILP path always
	// applies the ambiguity rule uniformly and never sets this.
	ForceQualified bool
}

// Slot is one position in the output sequence: at most one identifier
// token, plus at most one of {Open, Close}, matching the x[p,t] /
// a[p,t] variable family from spec.md §4.4. A Slot with no token and
// neither Open nor Close is empty and renders as a single space; it
// separates two identifiers that would otherwise run together with no
// punctuation between them, or one table's closing parenthesis from
// the next table's predicate.
type Slot struct {
	Token string
	Open  bool
	Close bool
}

// Result is the naive rendering of a schema: its slot sequence, the
// rendered text, and the slot count (the ILP's max_length L).
type Result struct {
	Slots     []Slot
	Text      string
	MaxLength int
}

// Render greedily nests the schema: one predicate-opening slot per
// table, one opening slot per column, one slot per effective
// annotation (type first, then declared annotations), and closing
// slots that unwind the column then the table context. Two
// consecutive plain-identifier slots within the same open context
// (e.g. a column's type and a later annotation) are separated by an
// empty slot, since nothing else would mark the word boundary between
// them. Every table after the first is also preceded by one empty
// slot, so consecutive tables are separated by a space.
func Render(s *schema.Schema, opts Options) *Result {
	var slots []Slot

	for _, t := range s.Tables {
		if len(slots) > 0 {
			slots = append(slots, Slot{})
		}
		slots = append(slots, Slot{Token: t.Predicate(), Open: true})

		for _, c := range t.Columns {
			colID := columnIdentifier(s, t, c, opts)
			slots = append(slots, Slot{Token: colID, Open: true})

			for i, a := range c.EffectiveAnnotations() {
				if i > 0 {
					slots = append(slots, Slot{})
				}
				slots = append(slots, Slot{Token: a})
			}
			slots = append(slots, Slot{Close: true})
		}
		slots = append(slots, Slot{Close: true})
	}

	return &Result{
		Slots:     slots,
		Text:      Format(slots),
		MaxLength: len(slots),
	}
}

func columnIdentifier(s *schema.Schema, t schema.Table, c schema.Column, opts Options) string {
	if opts.ForceQualified {
		return t.Name + "." + c.Name
	}
	return s.ColumnIdentifier(t, c)
}

// Format renders a slot sequence to text per the decoder's cosmetic
// rules (spec.md §4.5): each slot contributes its token (if any),
// then its active parenthesis (if any); an otherwise-empty slot
// contributes a single space. The result is cleaned up by collapsing
// " )" to ")" and trimming trailing whitespace.
func Format(slots []Slot) string {
	var b strings.Builder
	for _, sl := range slots {
		switch {
		case sl.Token != "" && sl.Open:
			b.WriteString(sl.Token)
			b.WriteByte('(')
		case sl.Token != "":
			b.WriteString(sl.Token)
			if sl.Close {
				b.WriteByte(')')
			}
		case sl.Close:
			b.WriteByte(')')
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(b.String(), " )", ")"))
}

// TokenCount returns the tokenizer-weighted length of the rendering:
// one counter call per identifier token, plus one counter call per
// active parenthesis (spec.md §4.4 objective, and its note that
// parenthesis weight should use the oracle's own cost for "(" and ")"
// rather than a hardcoded constant). This is also the naive seed's own
// objective value, which testable property 6 requires to be internally
// consistent.
func (r *Result) TokenCount(modelName string, counter schema.TokenCounter) (int, error) {
	total := 0
	for _, sl := range r.Slots {
		if sl.Token != "" {
			n, err := counter.Count(modelName, sl.Token)
			if err != nil {
				return 0, err
			}
			total += n
		}
		if sl.Open || sl.Close {
			paren := "("
			if sl.Close {
				paren = ")"
			}
			n, err := counter.Count(modelName, paren)
			if err != nil {
				return 0, err
			}
			total += n
		}
	}
	return total, nil
}
