package export

import (
	"context"
	"strconv"
)

// ErrorPolicy governs what a batch compression run does when one
// schema in the batch fails (precondition violation, infeasible
// solve, or tokenizer oracle failure).
type ErrorPolicy string

const (
	// PolicyFailFast aborts the whole batch on the first failure.
	PolicyFailFast ErrorPolicy = "fail-fast"
	// PolicyBestEffort compresses every schema it can and records
	// failures in the manifest instead of aborting.
	PolicyBestEffort ErrorPolicy = "best-effort"
	// PolicyPartial behaves like PolicyBestEffort but also marks the
	// manifest incomplete so downstream tooling knows not to treat it
	// as a full run.
	PolicyPartial ErrorPolicy = "partial"
)

// Config-key names understood by ConfigStore.
const (
	ConfigKeyErrorPolicy        = "export.error_policy"
	ConfigKeyAutoErrorPolicy    = "export.auto_error_policy"
	ConfigKeyRetryAttempts      = "export.retry_attempts"
	ConfigKeyRetryBackoffMS     = "export.retry_backoff_ms"
	ConfigKeySkipTokenizerFails = "export.skip_tokenizer_failures"
	ConfigKeyWriteManifest      = "export.write_manifest"
)

// Defaults applied when a key is absent, malformed, or out of range.
const (
	DefaultErrorPolicy        = PolicyBestEffort
	DefaultRetryAttempts      = 3
	DefaultRetryBackoffMS     = 100
	DefaultSkipEncodingErrors = false
	DefaultWriteManifest      = true
)

// ConfigStore is the minimal key-value contract export needs. A batch
// run may back this with a file, a database row, or an in-memory map;
// export never assumes which.
type ConfigStore interface {
	GetConfig(ctx context.Context, key string) (string, error)
}

// Config holds the resolved settings for one batch export run.
type Config struct {
	Policy             ErrorPolicy
	RetryAttempts      int
	RetryBackoffMS     int
	SkipEncodingErrors bool
	WriteManifest      bool
	IsAuto             bool
}

// LoadConfig resolves export settings from store, applying defaults
// for anything absent or invalid. isAuto selects the
// ConfigKeyAutoErrorPolicy key in preference to ConfigKeyErrorPolicy
// (an unattended batch run may want a stricter or looser default than
// an interactively invoked one); when isAuto is set but no auto key is
// present, it falls back to the general policy key.
func LoadConfig(ctx context.Context, store ConfigStore, isAuto bool) (Config, error) {
	cfg := Config{
		Policy:             DefaultErrorPolicy,
		RetryAttempts:      DefaultRetryAttempts,
		RetryBackoffMS:     DefaultRetryBackoffMS,
		SkipEncodingErrors: DefaultSkipEncodingErrors,
		WriteManifest:      DefaultWriteManifest,
		IsAuto:             isAuto,
	}

	policyKey := ConfigKeyErrorPolicy
	if isAuto {
		policyKey = ConfigKeyAutoErrorPolicy
	}
	if raw, err := store.GetConfig(ctx, policyKey); err != nil {
		return cfg, err
	} else if raw == "" && isAuto {
		if fallback, err := store.GetConfig(ctx, ConfigKeyErrorPolicy); err != nil {
			return cfg, err
		} else if isValidPolicy(fallback) {
			cfg.Policy = ErrorPolicy(fallback)
		}
	} else if isValidPolicy(raw) {
		cfg.Policy = ErrorPolicy(raw)
	}

	if raw, err := store.GetConfig(ctx, ConfigKeyRetryAttempts); err != nil {
		return cfg, err
	} else if n, ok := parsePositiveInt(raw); ok {
		cfg.RetryAttempts = n
	}

	if raw, err := store.GetConfig(ctx, ConfigKeyRetryBackoffMS); err != nil {
		return cfg, err
	} else if n, ok := parsePositiveInt(raw); ok {
		cfg.RetryBackoffMS = n
	}

	if raw, err := store.GetConfig(ctx, ConfigKeySkipTokenizerFails); err != nil {
		return cfg, err
	} else if b, ok := parseBool(raw); ok {
		cfg.SkipEncodingErrors = b
	}

	if raw, err := store.GetConfig(ctx, ConfigKeyWriteManifest); err != nil {
		return cfg, err
	} else if b, ok := parseBool(raw); ok {
		cfg.WriteManifest = b
	}

	return cfg, nil
}

func isValidPolicy(raw string) bool {
	switch ErrorPolicy(raw) {
	case PolicyFailFast, PolicyBestEffort, PolicyPartial:
		return true
	default:
		return false
	}
}

func parsePositiveInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func parseBool(raw string) (bool, bool) {
	if raw == "" {
		return false, false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return b, true
}
