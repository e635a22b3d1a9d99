package cachegraph

import "strings"

// Key identifies a cached view, e.g. "providers/p1/models".
type Key string

// Edge declares that invalidating a key matching From must also invalidate
// the key rendered from To. Patterns are slash-separated; a "{name}" segment
// binds the corresponding key segment and may be referenced in To. A "*"
// segment in From matches anything; in To it expands to every tracked key
// matching the pattern.
type Edge struct {
	From string
	To   string
}

// Join builds a key from segments.
func Join(segments ...string) Key {
	return Key(strings.Join(segments, "/"))
}

func match(pattern string, key Key) (map[string]string, bool) {
	ps := strings.Split(pattern, "/")
	ks := strings.Split(string(key), "/")
	if len(ps) != len(ks) {
		return nil, false
	}

	bindings := make(map[string]string)
	for i, p := range ps {
		switch {
		case p == "*":
		case isVar(p):
			bindings[p[1:len(p)-1]] = ks[i]
		case p != ks[i]:
			return nil, false
		}
	}
	return bindings, true
}

func render(pattern string, bindings map[string]string) string {
	ps := strings.Split(pattern, "/")
	for i, p := range ps {
		if isVar(p) {
			if v, ok := bindings[p[1:len(p)-1]]; ok {
				ps[i] = v
			} else {
				ps[i] = "*"
			}
		}
	}
	return strings.Join(ps, "/")
}

func isVar(segment string) bool {
	return len(segment) > 2 && segment[0] == '{' && segment[len(segment)-1] == '}'
}

func isPattern(s string) bool {
	for _, seg := range strings.Split(s, "/") {
		if seg == "*" || isVar(seg) {
			return true
		}
	}
	return false
}
