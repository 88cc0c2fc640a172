package schema

// Fact is an unordered pair of identifiers. Two facts with the same
// pair of identifiers (in either order) are equal.
type Fact struct {
	A, B string
}

// Key returns a canonical, order-independent representation suitable
// for use as a map key.
func (f Fact) Key() [2]string {
	if f.A <= f.B {
		return [2]string{f.A, f.B}
	}
	return [2]string{f.B, f.A}
}

// columnCounts returns, for every bare column name, how many distinct
// tables declare a column with that name.
func (s *Schema) columnCounts() map[string]int {
	counts := make(map[string]int)
	seen := make(map[[2]string]bool)
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			key := [2]string{t.Name, c.Name}
			if seen[key] {
				continue
			}
			seen[key] = true
			counts[c.Name]++
		}
	}
	return counts
}

// ColumnIdentifier returns the identifier used to refer to a column:
// "T.C" if the bare name "C" is declared by more than one table,
// otherwise the bare name "C". This is the ambiguity rule from
// spec.md §4.1, and it is applied everywhere an identifier for a
// column is needed: Identifiers, Facts, the naive renderer, the ILP's
// identifier enumeration, and the decoder, so that the same string
// always refers to the same column.
func (s *Schema) ColumnIdentifier(table Table, col Column) string {
	if s.columnCounts()[col.Name] > 1 {
		return table.Name + "." + col.Name
	}
	return col.Name
}

// Identifiers enumerates every string that can own context or be
// emitted in the compressed output: one predicate per table, one
// identifier per column (qualified per ColumnIdentifier), and one
// identifier per distinct annotation string.
func (s *Schema) Identifiers() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, t := range s.Tables {
		add(t.Predicate())
		for _, c := range t.Columns {
			add(s.ColumnIdentifier(t, c))
			for _, a := range c.EffectiveAnnotations() {
				add(a)
			}
		}
	}
	return out
}

// Facts computes the true and false fact sets described in spec.md
// §3: table<->column membership facts (true for the owning table,
// false for every other table) and column<->annotation facts (true
// for declared annotations, false for every other annotation that
// appears anywhere in the schema).
func (s *Schema) Facts() (trueFacts, falseFacts []Fact) {
	allAnnotations := make(map[string]bool)
	var annotationOrder []string
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			for _, a := range c.EffectiveAnnotations() {
				if !allAnnotations[a] {
					allAnnotations[a] = true
					annotationOrder = append(annotationOrder, a)
				}
			}
		}
	}

	seenTrue := make(map[[2]string]bool)
	seenFalse := make(map[[2]string]bool)
	addTrue := func(a, b string) {
		f := Fact{a, b}
		if !seenTrue[f.Key()] {
			seenTrue[f.Key()] = true
			trueFacts = append(trueFacts, f)
		}
	}
	addFalse := func(a, b string) {
		f := Fact{a, b}
		if seenTrue[f.Key()] || seenFalse[f.Key()] {
			return
		}
		seenFalse[f.Key()] = true
		falseFacts = append(falseFacts, f)
	}

	type ownedColumn struct {
		id, owner string
	}
	var columns []ownedColumn
	seenColumn := make(map[string]bool)
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			id := s.ColumnIdentifier(t, c)
			if seenColumn[id] {
				continue
			}
			seenColumn[id] = true
			columns = append(columns, ownedColumn{id, t.Name})
		}
	}

	// table <-> column membership
	for _, t := range s.Tables {
		for _, col := range columns {
			if col.owner == t.Name {
				addTrue(t.Predicate(), col.id)
			} else {
				addFalse(t.Predicate(), col.id)
			}
		}
	}

	// column <-> annotation
	for _, t := range s.Tables {
		for _, c := range t.Columns {
			colID := s.ColumnIdentifier(t, c)
			effective := c.EffectiveAnnotations()
			declared := make(map[string]bool, len(effective))
			for _, a := range effective {
				declared[a] = true
				addTrue(colID, a)
			}
			for _, a := range annotationOrder {
				if !declared[a] {
					addFalse(colID, a)
				}
			}
		}
	}

	return trueFacts, falseFacts
}
