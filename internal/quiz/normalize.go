package quiz

import (
	"fmt"
	"strings"
)

// Canonical true/false literals. The content generator emits Spanish
// true/false questions whose keys show up as booleans, full words, or
// single letters; everything collapses to these two strings.
const (
	CanonTrue  = "verdadero"
	CanonFalse = "falso"
)

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSingle maps a raw single-valued answer (bool or string) to its
// canonical comparable string. Idempotent: feeding the output back in
// returns the same string.
func NormalizeSingle(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return CanonTrue
		}
		return CanonFalse
	case string:
		s := normalizeToken(t)
		switch s {
		case "verdadero", "true", "v", "t":
			return CanonTrue
		case "falso", "false", "f":
			return CanonFalse
		}
		return s
	default:
		return normalizeToken(fmt.Sprint(t))
	}
}

// NormalizeSet maps a raw multi-valued answer to a set of option ids.
// Elements are lower-cased and trimmed but NOT run through the true/false
// synonym table: multi-select keys are always option letters.
func NormalizeSet(v any) map[string]struct{} {
	out := map[string]struct{}{}
	add := func(s string) {
		if s = normalizeToken(s); s != "" {
			out[s] = struct{}{}
		}
	}
	switch t := v.(type) {
	case nil:
	case []string:
		for _, e := range t {
			add(e)
		}
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				add(s)
			} else {
				add(fmt.Sprint(e))
			}
		}
	case map[string]struct{}:
		for e := range t {
			add(e)
		}
	case string:
		// a lone id from a client that didn't wrap it in a list
		add(t)
	}
	return out
}

// Equal reports whether a submitted answer matches the grading key for a
// question of the given kind. A nil/empty submission is never correct.
func Equal(kind Kind, correct, submitted any) bool {
	if submitted == nil {
		return false
	}
	switch kind {
	case MultipleChoice:
		got := NormalizeSet(submitted)
		if len(got) == 0 {
			return false
		}
		return setEqual(got, NormalizeSet(correct))
	default:
		got := NormalizeSingle(submitted)
		return got != "" && got == NormalizeSingle(correct)
	}
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
