package schema

import "strings"

// mergeKey groups columns that can be written as a single bracketed
// group: same type, same annotation sequence.
type mergeKey struct {
	typ   string
	annot string
}

func keyFor(c Column) mergeKey {
	return mergeKey{typ: c.Type, annot: strings.Join(c.Annotations, "\x00")}
}

// MergeColumns partitions each table's columns by (type, annotation
// sequence), concatenating the names of columns in the same partition
// with a single space and bracketing groups of size > 1 with "[…]".
// The first appearance order of each group is preserved across the
// table's original column order (spec.md §4.1).
//
// Callers that also want shortcut candidates must generate them before
// calling MergeColumns: merged names are synthetic and would dilute
// prefix frequency statistics computed over the original column names.
func (s *Schema) MergeColumns() {
	for ti := range s.Tables {
		s.Tables[ti].Columns = mergeTableColumns(s.Tables[ti].Columns)
	}
}

func mergeTableColumns(cols []Column) []Column {
	order := make([]mergeKey, 0, len(cols))
	groups := make(map[mergeKey][]Column)
	for _, c := range cols {
		k := keyFor(c)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], c)
	}

	out := make([]Column, 0, len(order))
	for _, k := range order {
		group := groups[k]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		names := make([]string, len(group))
		for i, c := range group {
			names[i] = c.Name
		}
		merged := Column{
			Name:        "[" + strings.Join(names, " ") + "]",
			Type:        group[0].Type,
			Annotations: group[0].Annotations,
			Merged:      true,
		}
		out = append(out, merged)
	}
	return out
}
