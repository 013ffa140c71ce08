package mutate

import (
	"strings"
)

var invisibles = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
	"\u21b5", "",
)

// sanitize returns a cleaned copy of a json like value.  Strings lose
// zero width characters and surrounding space.  Objects lose the keys
// whose cleaned value is empty.  List elements are cleaned in place but
// kept.
func sanitize(v any) any {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(invisibles.Replace(x))
	case map[string]any:
		return sanitizeMap(x)
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = sanitize(e)
		}
		return res
	default:
		return v
	}
}

// sanitizeMap cleans the values of m, dropping empty ones.  The result is
// never nil.
func sanitizeMap(m map[string]any) map[string]any {
	res := make(map[string]any, len(m))
	for k, v := range m {
		v = sanitize(v)
		if isEmpty(v) {
			continue
		}
		res[k] = v
	}
	return res
}

// isSomething reports whether v is worth storing.
func isSomething(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case map[string]any:
		return len(x) != 0
	}
	return true
}

// isEmpty reports whether an object member is dropped when cleaning:
// nothing, an empty string, or an empty object or list.
func isEmpty(v any) bool {
	if l, ok := v.([]any); ok {
		return len(l) == 0
	}
	return !isSomething(v)
}
