package normalize

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Hint describes the entity a response is expected to carry.
type Hint struct {
	// Entity is the singular wrapper key, e.g. "provider".
	Entity string
	// Collection is the plural wrapper key, e.g. "providers".
	Collection string
	// Identity lists the fields a bare entity object must carry.
	Identity []string
	// Required lists the fields every heuristic collection member must carry.
	Required []string
	// AnyOf lists fields of which a heuristic collection member must carry at least one.
	AnyOf []string
}

// Resembles reports whether r is an object that plausibly is the hinted entity.
func (h Hint) Resembles(r gjson.Result) bool {
	if !r.IsObject() {
		return false
	}
	for _, f := range h.Required {
		if !r.Get(escape(f)).Exists() {
			return false
		}
	}
	if len(h.AnyOf) == 0 {
		return true
	}
	for _, f := range h.AnyOf {
		if r.Get(escape(f)).Exists() {
			return true
		}
	}
	return false
}

func (h Hint) hasIdentity(r gjson.Result) bool {
	if !r.IsObject() {
		return false
	}
	for _, f := range h.Identity {
		if !r.Get(escape(f)).Exists() {
			return false
		}
	}
	return true
}

func (h Hint) hasIdentityFold(r gjson.Result) bool {
	if !r.IsObject() {
		return false
	}
	for _, f := range h.Identity {
		if _, ok := lookupFold(r, f); !ok {
			return false
		}
	}
	return true
}

// resemblesFold is Resembles with identity fields required and field names
// matched under any letter case.
func (h Hint) resemblesFold(r gjson.Result) bool {
	if !h.hasIdentityFold(r) {
		return false
	}
	for _, f := range h.Required {
		if _, ok := lookupFold(r, f); !ok {
			return false
		}
	}
	if len(h.AnyOf) == 0 {
		return true
	}
	for _, f := range h.AnyOf {
		if _, ok := lookupFold(r, f); ok {
			return true
		}
	}
	return false
}

// fields lists every field name the hint refers to.
func (h Hint) fields() []string {
	out := make([]string, 0, len(h.Identity)+len(h.Required)+len(h.AnyOf))
	out = append(out, h.Identity...)
	out = append(out, h.Required...)
	return append(out, h.AnyOf...)
}

// Field returns the first of names present on r.
func Field(r gjson.Result, names ...string) gjson.Result {
	for _, n := range names {
		if v := r.Get(escape(n)); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// Describe summarizes the top-level shape of raw for diagnostics.
func Describe(raw []byte) string {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return "empty body"
	}
	if !gjson.ValidBytes(raw) {
		return "invalid json"
	}
	doc := gjson.ParseBytes(raw)
	switch {
	case doc.IsArray():
		return "array(" + strconv.Itoa(len(doc.Array())) + ")"
	case doc.IsObject():
		keys := make([]string, 0)
		doc.ForEach(func(k, _ gjson.Result) bool {
			keys = append(keys, k.String())
			return true
		})
		return "object{" + strings.Join(keys, ",") + "}"
	case doc.Type == gjson.Null:
		return "null"
	default:
		return strings.ToLower(doc.Type.String())
	}
}

func lookupFold(r gjson.Result, key string) (gjson.Result, bool) {
	if v := r.Get(escape(key)); v.Exists() {
		return v, true
	}
	var found gjson.Result
	ok := false
	r.ForEach(func(k, v gjson.Result) bool {
		if strings.EqualFold(k.String(), key) {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// escape quotes gjson/sjson path metacharacters so key is matched literally.
func escape(key string) string {
	var b strings.Builder
	for _, c := range key {
		switch c {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
