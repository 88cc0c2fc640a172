package schema_test

import (
	"slices"
	"sort"
	"testing"

	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAbsorbsSingleColumnKeys(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "u", Columns: []schema.Column{
				{Name: "k", Type: "int"},
				{Name: "v", Type: "text"},
			}},
		},
		[]schema.PrimaryKey{{Table: "u", Columns: []string{"k"}}},
		nil,
	)

	require.Len(t, s.PKeys, 0, "single-column PK must be absorbed, not left as a constraint")
	assert.Contains(t, s.Tables[0].Columns[0].Annotations, "primary key")
}

func TestNewKeepsMultiColumnKeys(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "t", Columns: []schema.Column{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}}},
		},
		[]schema.PrimaryKey{{Table: "t", Columns: []string{"a", "b"}}},
		nil,
	)

	require.Len(t, s.PKeys, 1)
	assert.False(t, s.CanSplit())
}

func TestForeignKeyAnnotation(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "o", Columns: []schema.Column{{Name: "id", Type: "int"}}},
			{Name: "l", Columns: []schema.Column{{Name: "oid", Type: "int"}}},
		},
		nil,
		[]schema.ForeignKey{{FromTable: "l", FromColumns: []string{"oid"}, ToTable: "o", ToColumns: []string{"id"}}},
	)

	require.Len(t, s.FKeys, 0)
	assert.Contains(t, s.Tables[1].Columns[0].Annotations, "foreign key (oid) references o(id)")
}

func TestColumnIdentifierQualifiesOnlyWhenAmbiguous(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "t1", Columns: []schema.Column{{Name: "name", Type: "text"}}},
			{Name: "t2", Columns: []schema.Column{{Name: "name", Type: "text"}}},
			{Name: "t3", Columns: []schema.Column{{Name: "unique_col", Type: "int"}}},
		},
		nil, nil,
	)

	assert.Equal(t, "t1.name", s.ColumnIdentifier(s.Tables[0], s.Tables[0].Columns[0]))
	assert.Equal(t, "t2.name", s.ColumnIdentifier(s.Tables[1], s.Tables[1].Columns[0]))
	assert.Equal(t, "unique_col", s.ColumnIdentifier(s.Tables[2], s.Tables[2].Columns[0]))
}

func TestIdentifiersCoverTablesColumnsAnnotations(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "u", Columns: []schema.Column{
				{Name: "k", Type: "int"},
				{Name: "v", Type: "text"},
			}},
		},
		[]schema.PrimaryKey{{Table: "u", Columns: []string{"k"}}},
		nil,
	)

	ids := s.Identifiers()
	assert.Contains(t, ids, "table u")
	assert.Contains(t, ids, "k")
	assert.Contains(t, ids, "v")
	assert.Contains(t, ids, "primary key")
}

func TestFactsS1(t *testing.T) {
	s := schema.New(
		[]schema.Table{{Name: "t", Columns: []schema.Column{{Name: "c", Type: "int"}}}},
		nil, nil,
	)

	trueFacts, falseFacts := s.Facts()
	assert.Contains(t, trueFacts, schema.Fact{A: "table t", B: "c"})
	assert.Contains(t, trueFacts, schema.Fact{A: "c", B: "int"})
	assert.Empty(t, falseFacts, "single table/column/type schema has no false facts to express")
}

func TestFactsS4CrossTableFalse(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "o", Columns: []schema.Column{{Name: "id", Type: "int"}}},
			{Name: "l", Columns: []schema.Column{{Name: "oid", Type: "int"}}},
		},
		nil, nil,
	)

	trueFacts, falseFacts := s.Facts()
	assert.Contains(t, trueFacts, schema.Fact{A: "table o", B: "id"})
	assert.Contains(t, falseFacts, schema.Fact{A: "table l", B: "id"})
	assert.NotContains(t, trueFacts, schema.Fact{A: "table l", B: "id"})
}

func TestMergeColumnsGroupsByTypeAndAnnotations(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "t", Columns: []schema.Column{
				{Name: "a", Type: "int", Annotations: []string{"not null"}},
				{Name: "b", Type: "int", Annotations: []string{"not null"}},
				{Name: "c", Type: "int", Annotations: []string{"not null"}},
			}},
		},
		nil, nil,
	)

	s.MergeColumns()
	require.Len(t, s.Tables[0].Columns, 1)
	merged := s.Tables[0].Columns[0]
	assert.True(t, merged.Merged)
	assert.Equal(t, "[a b c]", merged.Name)
}

func TestMergeColumnsIsIdempotent(t *testing.T) {
	build := func() *schema.Schema {
		return schema.New(
			[]schema.Table{
				{Name: "t", Columns: []schema.Column{
					{Name: "a", Type: "int", Annotations: []string{"not null"}},
					{Name: "b", Type: "int", Annotations: []string{"not null"}},
					{Name: "c", Type: "text"},
				}},
			},
			nil, nil,
		)
	}

	once := build()
	once.MergeColumns()

	twice := build()
	twice.MergeColumns()
	twice.MergeColumns()

	assert.Equal(t, once.Tables[0].Columns, twice.Tables[0].Columns)
}

type fixedCounter struct {
	perWord map[string]int
}

func (f fixedCounter) Count(_ string, text string) (int, error) {
	if n, ok := f.perWord[text]; ok {
		return n, nil
	}
	return len([]rune(text)), nil
}

func TestPrefixesPrunesSingleTokenAndDominated(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "t", Columns: []schema.Column{
				{Name: "buildUpPlayA", Type: "int"},
				{Name: "buildUpPlayB", Type: "int"},
				{Name: "buildUpPlayC", Type: "int"},
			}},
		},
		nil, nil,
	)

	counter := fixedCounter{perWord: map[string]int{
		"buildUpPlay": 2, // multi-token: eligible
		"bu":          1, // single token: ineligible regardless of frequency
	}}

	prefixes, err := s.Prefixes("test-model", counter)
	require.NoError(t, err)
	assert.Contains(t, prefixes, "buildUpPlay")
	assert.NotContains(t, prefixes, "bu")

	sorted := append([]string(nil), prefixes...)
	sort.Strings(sorted)
	assert.Equal(t, sorted, slices.Compact(append([]string(nil), sorted...)), "prefixes must be a well-formed, duplicate-free slice")
}

func TestByTableSplitsIndependentSchema(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "o", Columns: []schema.Column{{Name: "id", Type: "int"}}},
			{Name: "l", Columns: []schema.Column{{Name: "oid", Type: "int"}}},
		},
		nil, nil,
	)

	require.True(t, s.CanSplit())
	parts := s.ByTable()
	require.Len(t, parts, 2)
	assert.Equal(t, "o", parts[0].Tables[0].Name)
	assert.Equal(t, "l", parts[1].Tables[0].Name)
}
