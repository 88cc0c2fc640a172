package tokenizer_test

import (
	"errors"
	"testing"

	"github.com/steveyegge/schemacompress/internal/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicDeterministic(t *testing.T) {
	h := tokenizer.Heuristic{}
	a, err := h.Count("any-model", "buildUpPlay")
	require.NoError(t, err)
	b, err := h.Count("any-model", "buildUpPlay")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Greater(t, a, 0)
}

func TestHeuristicEmptyString(t *testing.T) {
	h := tokenizer.Heuristic{}
	n, err := h.Count("m", "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestHeuristicShortStringSingleToken(t *testing.T) {
	h := tokenizer.Heuristic{}
	n, err := h.Count("m", "(")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHeuristicLongerStringMoreTokens(t *testing.T) {
	h := tokenizer.Heuristic{}
	short, err := h.Count("m", "id")
	require.NoError(t, err)
	long, err := h.Count("m", "identification_number")
	require.NoError(t, err)
	assert.Greater(t, long, short)
}

type erroringOracle struct{}

func (erroringOracle) Count(string, string) (int, error) {
	return 0, errors.New("oracle unavailable")
}

func TestMemoizedCachesSuccessfulCalls(t *testing.T) {
	calls := 0
	oracle := tokenizer.Func(func(model, text string) (int, error) {
		calls++
		return len(text), nil
	})
	m := tokenizer.Memoize(oracle)

	n1, err := m.Count("gpt", "hello")
	require.NoError(t, err)
	n2, err := m.Count("gpt", "hello")
	require.NoError(t, err)

	assert.Equal(t, n1, n2)
	assert.Equal(t, 1, calls, "second call for the same (model, text) must be served from cache")
}

func TestMemoizedDistinguishesModelAndText(t *testing.T) {
	calls := 0
	oracle := tokenizer.Func(func(model, text string) (int, error) {
		calls++
		return 1, nil
	})
	m := tokenizer.Memoize(oracle)

	_, _ = m.Count("gpt", "hello")
	_, _ = m.Count("claude", "hello")
	_, _ = m.Count("gpt", "world")

	assert.Equal(t, 3, calls)
}

func TestMemoizedPropagatesErrors(t *testing.T) {
	m := tokenizer.Memoize(erroringOracle{})
	_, err := m.Count("m", "x")
	assert.Error(t, err)
}
