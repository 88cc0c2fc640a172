package tokenizer

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

// Retrying wraps an Oracle that calls out to a remote tokenizer
// endpoint with exponential backoff, so a transient network error
// during a batch run doesn't fail the whole schema outright. Retries
// stop when the backoff policy stops or its context is canceled; the
// error backoff.Retry reports at that point is returned.
type Retrying struct {
	inner      Oracle
	maxElapsed backoff.BackOff
}

// NewRetrying builds a Retrying oracle around inner that retries
// according to policy (for an ExponentialBackOff, bounded by its
// MaxElapsedTime) and stops early once ctx is canceled.
func NewRetrying(ctx context.Context, inner Oracle, policy backoff.BackOff) *Retrying {
	return &Retrying{inner: inner, maxElapsed: backoff.WithContext(policy, ctx)}
}

// Count implements Oracle, retrying inner.Count on error according to
// the configured backoff policy.
func (r *Retrying) Count(modelName, text string) (int, error) {
	var n int
	op := func() error {
		var err error
		n, err = r.inner.Count(modelName, text)
		return err
	}
	if err := backoff.Retry(op, r.maxElapsed); err != nil {
		return 0, err
	}
	return n, nil
}
