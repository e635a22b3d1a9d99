// Package normalize extracts entities and collections from response bodies
// whose shape is not fixed by the remote contract.
//
// Detection runs as an ordered chain of strategies; the first one that
// recognizes the document wins. Collections never fail: an unrecognized
// document resolves to the Empty shape.
package normalize

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Shape tags how a collection was located within a response.
type Shape int

const (
	Empty Shape = iota
	DirectArray
	WrappedByKey
	HeuristicScan
)

func (s Shape) String() string {
	switch s {
	case DirectArray:
		return "direct-array"
	case WrappedByKey:
		return "wrapped-by-key"
	case HeuristicScan:
		return "heuristic-scan"
	default:
		return "empty"
	}
}

// Outcome is the result of collection detection. Key names the wrapper
// field for WrappedByKey and HeuristicScan.
type Outcome struct {
	Shape Shape
	Key   string
	Items []gjson.Result
}

// Strategy recognizes one collection shape.
type Strategy interface {
	Shape() Shape
	Detect(doc gjson.Result, hint Hint) (Outcome, bool)
}

// CollectionChain is the detection order applied by Collection.
var CollectionChain = []Strategy{
	DirectArrayStrategy{},
	WrappedByKeyStrategy{},
	HeuristicScanStrategy{},
}

// Collection locates the hinted collection within raw.
func Collection(raw []byte, hint Hint) Outcome {
	if !gjson.ValidBytes(raw) {
		return Outcome{Shape: Empty}
	}
	doc := gjson.ParseBytes(raw)
	for _, s := range CollectionChain {
		if out, ok := s.Detect(doc, hint); ok {
			return out
		}
	}
	return Outcome{Shape: Empty}
}

// DirectArrayStrategy accepts a bare array verbatim.
type DirectArrayStrategy struct{}

func (DirectArrayStrategy) Shape() Shape { return DirectArray }

func (DirectArrayStrategy) Detect(doc gjson.Result, _ Hint) (Outcome, bool) {
	if !doc.IsArray() {
		return Outcome{}, false
	}
	return Outcome{Shape: DirectArray, Items: doc.Array()}, true
}

// WrappedByKeyStrategy accepts an object holding an array under the
// collection name.
type WrappedByKeyStrategy struct{}

func (WrappedByKeyStrategy) Shape() Shape { return WrappedByKey }

func (WrappedByKeyStrategy) Detect(doc gjson.Result, hint Hint) (Outcome, bool) {
	if !doc.IsObject() || hint.Collection == "" {
		return Outcome{}, false
	}

	var out Outcome
	found := false
	doc.ForEach(func(k, v gjson.Result) bool {
		if strings.EqualFold(k.String(), hint.Collection) && v.IsArray() {
			out = Outcome{Shape: WrappedByKey, Key: k.String(), Items: v.Array()}
			found = true
			return false
		}
		return true
	})
	return out, found
}

// HeuristicScanStrategy accepts the first field, in document order, whose
// value is a non-empty array of objects that all resemble the hinted entity.
type HeuristicScanStrategy struct{}

func (HeuristicScanStrategy) Shape() Shape { return HeuristicScan }

func (HeuristicScanStrategy) Detect(doc gjson.Result, hint Hint) (Outcome, bool) {
	if !doc.IsObject() {
		return Outcome{}, false
	}

	var out Outcome
	found := false
	doc.ForEach(func(k, v gjson.Result) bool {
		if !v.IsArray() {
			return true
		}
		items := v.Array()
		if len(items) == 0 {
			return true
		}
		for _, item := range items {
			if !hint.Resembles(item) {
				return true
			}
		}
		out = Outcome{Shape: HeuristicScan, Key: k.String(), Items: items}
		found = true
		return false
	})
	return out, found
}
