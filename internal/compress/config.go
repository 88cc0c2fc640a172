package compress

// Config is the compression orchestrator's configuration record
// (spec.md §4.6): `{depth, context_k, timeout_seconds, use_mip_start,
// use_hints, use_merge, upper_bound}`, plus Split/ModelName, which the
// distilled spec folds into "an input schema and a configuration
// record" without naming explicitly.
type Config struct {
	Depth          int
	ContextK       int
	TimeoutSeconds int
	UseMIPStart    bool
	UseHints       bool
	UseMerge       bool
	// UpperBound raises the naive renderer's length bound when it is
	// larger than render.Render's MaxLength; zero or a smaller value
	// leaves MaxLength unmodified.
	UpperBound int

	// Split requests per-table independent compression (spec.md
	// §4.6); forbidden when the schema retains any multi-column PK or
	// FK, since such a constraint spans tables.
	Split bool

	// ModelName names the tokenizer model passed to every Count call.
	ModelName string

	// ShortcutPool overrides shortcutgen.DefaultPool; nil keeps the
	// default nine-placeholder pool.
	ShortcutPool []string
}

// DefaultConfig mirrors ilp.DefaultOptions: shallow nesting, top-8
// context hints, mip start and hints both on, no merge, no split.
func DefaultConfig() Config {
	return Config{
		Depth:          3,
		ContextK:       8,
		TimeoutSeconds: 30,
		UseMIPStart:    true,
		UseHints:       true,
		UseMerge:       false,
		ModelName:      "default",
	}
}
