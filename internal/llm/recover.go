package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidFormat indicates no recovery strategy produced a JSON object.
var ErrInvalidFormat = errors.New("model output is not a valid JSON object")

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

var straightenQuotes = strings.NewReplacer(
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
)

// RecoverJSON coerces raw model output into a JSON object, tolerating the
// deviations models commonly introduce despite being told not to: markdown
// code fences and typographic quotation marks.
//
// Strategies run in a fixed order and the first to produce a parseable object
// wins. The order is load-bearing: reordering changes outcomes on ambiguous
// inputs, e.g. text carrying both a fenced block and stray braces outside it.
//
//  1. take the interior of the first fenced code block if present, otherwise
//     the whole text, as the candidate
//  2. strict parse of the candidate
//  3. straighten typographic quotes in the candidate and parse again
//  4. greedy first-`{`-to-last-`}` span of the original text
//
// On success the matched span is returned verbatim, not re-marshaled.
func RecoverJSON(raw string) (json.RawMessage, error) {
	candidate := raw
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	}

	if obj, ok := parseObject(candidate); ok {
		return obj, nil
	}
	if obj, ok := parseObject(straightenQuotes.Replace(candidate)); ok {
		return obj, nil
	}
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			if obj, ok := parseObject(raw[start : end+1]); ok {
				return obj, nil
			}
		}
	}

	return nil, ErrInvalidFormat
}

// parseObject accepts s only if it is strict JSON whose root is an object.
func parseObject(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return json.RawMessage(s), true
}
