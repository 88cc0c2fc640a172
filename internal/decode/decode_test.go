package decode_test

import (
	"testing"

	"github.com/steveyegge/schemacompress/internal/decode"
	"github.com/steveyegge/schemacompress/internal/ilp"
	"github.com/steveyegge/schemacompress/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runeCounter struct{}

func (runeCounter) Count(_ string, text string) (int, error) {
	return len([]rune(text)), nil
}

func TestDecodeMIPStartReproducesNaiveRenderingS1(t *testing.T) {
	s := schema.New(
		[]schema.Table{{Name: "t", Columns: []schema.Column{{Name: "c", Type: "int"}}}},
		nil, nil,
	)
	m, p, err := ilp.Build(s, "test-model", runeCounter{}, nil, ilp.DefaultOptions())
	require.NoError(t, err)

	text, err := decode.Decode(m, p.Start)
	require.NoError(t, err)
	assert.Equal(t, "table t(c(int))", text)
}

func TestDecodeMIPStartReproducesNaiveRenderingS2(t *testing.T) {
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
	m, p, err := ilp.Build(s, "test-model", runeCounter{}, nil, ilp.DefaultOptions())
	require.NoError(t, err)

	text, err := decode.Decode(m, p.Start)
	require.NoError(t, err)
	assert.Equal(t, "table u(k(int primary key)v(text))", text)
}

func TestDecodeRejectsOutOfRangeAssignment(t *testing.T) {
	s := schema.New(
		[]schema.Table{{Name: "t", Columns: []schema.Column{{Name: "c", Type: "int"}}}},
		nil, nil,
	)
	m, _, err := ilp.Build(s, "test-model", runeCounter{}, nil, ilp.DefaultOptions())
	require.NoError(t, err)

	_, err = decode.Decode(m, []float64{})
	assert.Error(t, err)
}
