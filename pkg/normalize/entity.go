package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrUnrecognized indicates a response did not contain the expected entity.
var ErrUnrecognized = errors.New("unrecognized response shape")

// NormalizationError reports an entity that could not be resolved from a
// read response.
type NormalizationError struct {
	Entity string
	Shape  string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s: %s (%s)", e.Entity, ErrUnrecognized, e.Shape)
}

func (e *NormalizationError) Unwrap() error {
	return ErrUnrecognized
}

// EntityShape tags how a single entity was located within a response.
type EntityShape int

const (
	Unresolved EntityShape = iota
	Direct
	Wrapped
	Nested
	Synthesized
)

func (s EntityShape) String() string {
	switch s {
	case Direct:
		return "direct"
	case Wrapped:
		return "wrapped"
	case Nested:
		return "nested"
	case Synthesized:
		return "synthesized"
	default:
		return "unresolved"
	}
}

// EntityOutcome is the result of entity resolution.
type EntityOutcome struct {
	Shape EntityShape
	Key   string
	Value gjson.Result
}

// EntityStrategy recognizes one entity shape.
type EntityStrategy interface {
	Shape() EntityShape
	Resolve(doc gjson.Result, hint Hint) (EntityOutcome, bool)
}

// ReadChain resolves entities from read responses.
var ReadChain = []EntityStrategy{
	DirectStrategy{},
	WrappedStrategy{},
}

// WriteChain resolves entities from create and update responses.
var WriteChain = []EntityStrategy{
	DirectStrategy{},
	WrappedStrategy{},
	NestedScanStrategy{},
}

// Entity resolves the hinted entity from a read response. It fails with a
// *NormalizationError when no strategy recognizes the document.
func Entity(raw []byte, hint Hint) (EntityOutcome, error) {
	if gjson.ValidBytes(raw) {
		doc := gjson.ParseBytes(raw)
		if out, ok := resolve(ReadChain, doc, hint); ok {
			return out, nil
		}
	}
	return EntityOutcome{}, &NormalizationError{Entity: hint.Entity, Shape: Describe(raw)}
}

// WriteResult resolves the hinted entity from a create or update response.
// It never fails: when no strategy recognizes the document, the entity is
// synthesized from request merged with any identity found in the response.
func WriteResult(raw, request []byte, hint Hint) EntityOutcome {
	var doc gjson.Result
	if gjson.ValidBytes(raw) {
		doc = gjson.ParseBytes(raw)
		if out, ok := resolve(WriteChain, doc, hint); ok {
			return out
		}
	}
	return synthesize(doc, request, hint)
}

func resolve(chain []EntityStrategy, doc gjson.Result, hint Hint) (EntityOutcome, bool) {
	for _, s := range chain {
		if out, ok := s.Resolve(doc, hint); ok {
			return out, true
		}
	}
	return EntityOutcome{}, false
}

// DirectStrategy accepts an object carrying the identity fields itself.
type DirectStrategy struct{}

func (DirectStrategy) Shape() EntityShape { return Direct }

func (DirectStrategy) Resolve(doc gjson.Result, hint Hint) (EntityOutcome, bool) {
	if !hint.hasIdentity(doc) {
		return EntityOutcome{}, false
	}
	return EntityOutcome{Shape: Direct, Value: doc}, true
}

// WrappedStrategy unwraps an object held under the singular entity key.
type WrappedStrategy struct{}

func (WrappedStrategy) Shape() EntityShape { return Wrapped }

func (WrappedStrategy) Resolve(doc gjson.Result, hint Hint) (EntityOutcome, bool) {
	if !doc.IsObject() || hint.Entity == "" {
		return EntityOutcome{}, false
	}
	v, ok := lookupFold(doc, hint.Entity)
	if !ok || !v.IsObject() {
		return EntityOutcome{}, false
	}
	return EntityOutcome{Shape: Wrapped, Key: hint.Entity, Value: v}, true
}

// NestedScanStrategy searches one level of nested objects for the first one
// carrying the identity, required, and any-of fields under any letter case.
// Matched field names are rewritten to their canonical form.
type NestedScanStrategy struct{}

func (NestedScanStrategy) Shape() EntityShape { return Nested }

func (NestedScanStrategy) Resolve(doc gjson.Result, hint Hint) (EntityOutcome, bool) {
	if !doc.IsObject() {
		return EntityOutcome{}, false
	}

	var out EntityOutcome
	found := false
	doc.ForEach(func(k, v gjson.Result) bool {
		if !hint.resemblesFold(v) {
			return true
		}
		out = EntityOutcome{Shape: Nested, Key: k.String(), Value: canonicalize(v, hint.fields())}
		found = true
		return false
	})
	return out, found
}

func canonicalize(obj gjson.Result, canonical []string) gjson.Result {
	data := []byte("{}")
	obj.ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		for _, c := range canonical {
			if strings.EqualFold(name, c) {
				name = c
				break
			}
		}
		if updated, err := sjson.SetRawBytes(data, escape(name), []byte(v.Raw)); err == nil {
			data = updated
		}
		return true
	})
	return gjson.ParseBytes(data)
}

func synthesize(doc gjson.Result, request []byte, hint Hint) EntityOutcome {
	data := []byte("{}")
	if gjson.ValidBytes(request) && gjson.ParseBytes(request).IsObject() {
		data = append([]byte(nil), request...)
	}

	if id, ok := partialIdentity(doc, hint); ok {
		if updated, err := sjson.SetBytes(data, "id", id); err == nil {
			data = updated
		}
	}

	return EntityOutcome{Shape: Synthesized, Value: gjson.ParseBytes(data)}
}

// partialIdentity finds an id in the response, at the top level or one
// level down, under "id", "<entity>_id", or "<entity>Id".
func partialIdentity(doc gjson.Result, hint Hint) (string, bool) {
	if !doc.IsObject() {
		return "", false
	}
	keys := []string{"id"}
	if hint.Entity != "" {
		keys = append(keys, hint.Entity+"_id", hint.Entity+"Id")
	}

	if id, ok := identityIn(doc, keys); ok {
		return id, true
	}

	var id string
	found := false
	doc.ForEach(func(_, v gjson.Result) bool {
		if v.IsObject() {
			id, found = identityIn(v, keys)
		}
		return !found
	})
	return id, found
}

func identityIn(obj gjson.Result, keys []string) (string, bool) {
	for _, k := range keys {
		v, ok := lookupFold(obj, k)
		if !ok {
			continue
		}
		if v.Type == gjson.String || v.Type == gjson.Number {
			if s := v.String(); s != "" {
				return s, true
			}
		}
	}
	return "", false
}
