package shortcutgen_test

import (
	"testing"

	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/steveyegge/schemacompress/internal/shortcutgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter struct {
	perWord map[string]int
}

func (f fixedCounter) Count(_ string, text string) (int, error) {
	if n, ok := f.perWord[text]; ok {
		return n, nil
	}
	return len([]rune(text)), nil
}

func TestGenerateS5BuildUpPlay(t *testing.T) {
	s := schema.New(
		[]schema.Table{
			{Name: "t", Columns: []schema.Column{
				{Name: "buildUpPlayA", Type: "int"},
				{Name: "buildUpPlayB", Type: "int"},
				{Name: "buildUpPlayC", Type: "int"},
				{Name: "buildUpPlayD", Type: "int"},
				{Name: "buildUpPlayE", Type: "int"},
			}},
		},
		nil, nil,
	)

	counter := fixedCounter{perWord: map[string]int{"buildUpPlay": 2}}
	candidates, err := shortcutgen.Generate(s, "test-model", counter, nil)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, "PA", candidates[0].Placeholder)
	assert.Equal(t, "buildUpPlay", candidates[0].Substring)
}

func TestGenerateCapsAtPoolSize(t *testing.T) {
	pool := []string{"P1", "P2"}
	cols := []schema.Column{
		{Name: "aaaaaaX", Type: "int"}, {Name: "aaaaaaY", Type: "int"},
		{Name: "bbbbbbX", Type: "int"}, {Name: "bbbbbbY", Type: "int"},
		{Name: "ccccccX", Type: "int"}, {Name: "ccccccY", Type: "int"},
	}
	s := schema.New([]schema.Table{{Name: "t", Columns: cols}}, nil, nil)

	candidates, err := shortcutgen.Generate(s, "m", fixedCounter{}, pool)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(candidates), len(pool))
}

func TestGenerateEmptyWhenNoRepeatedPrefixes(t *testing.T) {
	s := schema.New(
		[]schema.Table{{Name: "t", Columns: []schema.Column{{Name: "c", Type: "int"}}}},
		nil, nil,
	)
	candidates, err := shortcutgen.Generate(s, "m", fixedCounter{}, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
