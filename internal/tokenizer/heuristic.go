package tokenizer

import "unicode"

// Heuristic is a dependency-free approximation of a subword tokenizer.
// It is deterministic and pure, satisfying the Oracle contract, but it
// is not a faithful model of any specific named model's BPE vocabulary
// — no pure-Go BPE tokenizer ships in this module's dependency graph
// (see DESIGN.md). It exists so the compressor is runnable without an
// external tokenizer service, and so tests have a concrete oracle to
// exercise: every exported identifier boundary (case change, digit
// run, punctuation) starts a new token, and runs longer than
// MaxRunLen runes are split further, which is the same shape a real BPE
// tokenizer produces for unseen identifiers.
type Heuristic struct {
	// MaxRunLen bounds how many runes a single sub-token may cover
	// before being split further. Zero selects a sane default.
	MaxRunLen int
}

const defaultMaxRunLen = 4

// Count implements Oracle. modelName is accepted but ignored: the
// heuristic oracle does not vary by model.
func (h Heuristic) Count(_ string, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	runLen := h.MaxRunLen
	if runLen <= 0 {
		runLen = defaultMaxRunLen
	}

	segments := splitIdentifier(text)
	total := 0
	for _, seg := range segments {
		n := len([]rune(seg))
		if n == 0 {
			continue
		}
		total += (n + runLen - 1) / runLen
	}
	if total == 0 {
		total = 1
	}
	return total, nil
}

// splitIdentifier breaks text at case changes, digit/letter
// boundaries, and non-alphanumeric runs, mirroring how subword
// tokenizers tend to isolate punctuation and camelCase humps as their
// own tokens.
func splitIdentifier(text string) []string {
	runes := []rune(text)
	var segments []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			segments = append(segments, string(cur))
			cur = nil
		}
	}

	classOf := func(r rune) int {
		switch {
		case unicode.IsUpper(r):
			return 1
		case unicode.IsLower(r):
			return 2
		case unicode.IsDigit(r):
			return 3
		default:
			return 4
		}
	}

	var prevClass int
	for i, r := range runes {
		class := classOf(r)
		if class == 4 {
			flush()
			segments = append(segments, string(r))
			prevClass = 0
			continue
		}
		if i > 0 && class != prevClass {
			// lower->upper or letter<->digit starts a new segment;
			// an upper->lower transition belongs to the preceding
			// capital (start of a word, e.g. "ID" + "s").
			startNew := true
			if prevClass == 1 && class == 2 && len(cur) > 0 {
				startNew = false
			}
			if startNew {
				flush()
			}
		}
		cur = append(cur, r)
		prevClass = class
	}
	flush()
	return segments
}
