// Package tokenizer defines the external tokenizer oracle contract
// (spec.md §6: "count_tokens(model_name, text) -> non-negative
// integer, pure and deterministic") plus a memoizing decorator and one
// concrete, dependency-free default implementation.
//
// The real oracle for a production deployment is whatever the chosen
// LLM's own tokenizer reports; nothing in this package depends on a
// specific model family, and callers are expected to supply their own
// Oracle when one is available.
package tokenizer

import "sync"

// Oracle maps (model name, string) to a token count. Implementations
// must be deterministic and side-effect free, since internal/ilp calls
// Count on the order of |identifiers| * |shortcuts| times per
// compression (spec.md §5) and assumes repeat calls are cheap once
// memoized.
type Oracle interface {
	Count(modelName, text string) (int, error)
}

// Func adapts a plain function to the Oracle interface.
type Func func(modelName, text string) (int, error)

// Count implements Oracle.
func (f Func) Count(modelName, text string) (int, error) {
	return f(modelName, text)
}

type memoKey struct {
	model, text string
}

// Memoized wraps an Oracle with a cache keyed by (model_name, string),
// exactly as spec.md §5 recommends. Safe for concurrent use so that
// internal/batch can share one memoized oracle across worker
// goroutines compressing independent schemas.
type Memoized struct {
	inner Oracle
	mu    sync.Mutex
	cache map[memoKey]int
}

// Memoize returns a Memoized wrapper around inner.
func Memoize(inner Oracle) *Memoized {
	return &Memoized{inner: inner, cache: make(map[memoKey]int)}
}

// Count implements Oracle, serving from cache when possible.
func (m *Memoized) Count(modelName, text string) (int, error) {
	key := memoKey{modelName, text}

	m.mu.Lock()
	if n, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return n, nil
	}
	m.mu.Unlock()

	n, err := m.inner.Count(modelName, text)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	m.cache[key] = n
	m.mu.Unlock()
	return n, nil
}
