package normalize_test

import (
	"testing"

	"github.com/JaimeStill/agent-lab-client/pkg/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var providerHint = normalize.Hint{
	Entity:     "provider",
	Collection: "providers",
	Identity:   []string{"id", "name"},
	Required:   []string{"name"},
	AnyOf:      []string{"id", "type"},
}

func ids(items []gjson.Result) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Get("id").String())
	}
	return out
}

func TestCollection(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantShape normalize.Shape
		wantKey   string
		wantIDs   []string
	}{
		{
			"bare array",
			`[{"id":"p1","name":"A"},{"id":"p2","name":"B"}]`,
			normalize.DirectArray, "", []string{"p1", "p2"},
		},
		{
			"empty array",
			`[]`,
			normalize.DirectArray, "", []string{},
		},
		{
			"wrapped by collection key",
			`{"providers":[{"id":"p1","name":"A"}],"total":1}`,
			normalize.WrappedByKey, "providers", []string{"p1"},
		},
		{
			"wrapped key matches case-insensitively",
			`{"Providers":[{"id":"p1","name":"A"}]}`,
			normalize.WrappedByKey, "Providers", []string{"p1"},
		},
		{
			"heuristic data field",
			`{"data":[{"id":"p1","name":"A"},{"name":"B","type":"openai"}]}`,
			normalize.HeuristicScan, "data", []string{"p1", ""},
		},
		{
			"heuristic skips non-matching arrays",
			`{"tags":["a","b"],"empty":[],"items":[{"id":"p9","name":"Z"}]}`,
			normalize.HeuristicScan, "items", []string{"p9"},
		},
		{
			"heuristic rejects members without name",
			`{"data":[{"id":"p1"}]}`,
			normalize.Empty, "", []string{},
		},
		{
			"empty object",
			`{}`,
			normalize.Empty, "", []string{},
		},
		{
			"null",
			`null`,
			normalize.Empty, "", []string{},
		},
		{
			"empty body",
			``,
			normalize.Empty, "", []string{},
		},
		{
			"invalid json",
			`{"providers":`,
			normalize.Empty, "", []string{},
		},
		{
			"scalar",
			`42`,
			normalize.Empty, "", []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := normalize.Collection([]byte(tt.raw), providerHint)

			assert.Equal(t, tt.wantShape, out.Shape, "shape = %s", out.Shape)
			assert.Equal(t, tt.wantKey, out.Key)
			assert.Equal(t, tt.wantIDs, ids(out.Items))
		})
	}
}

func TestCollection_DirectArrayIsIdentity(t *testing.T) {
	raw := `[{"id":"p1","name":"A","extra":{"x":1}},{"anything":true},7]`

	out := normalize.Collection([]byte(raw), providerHint)

	require.Equal(t, normalize.DirectArray, out.Shape)
	require.Len(t, out.Items, 3)
	assert.JSONEq(t, `{"id":"p1","name":"A","extra":{"x":1}}`, out.Items[0].Raw)
	assert.JSONEq(t, `{"anything":true}`, out.Items[1].Raw)
	assert.Equal(t, "7", out.Items[2].Raw)
}

func TestCollection_WrappedKeyWinsOverHeuristic(t *testing.T) {
	raw := `{"data":[{"id":"x","name":"X"}],"providers":[{"id":"p1","name":"A"}]}`

	out := normalize.Collection([]byte(raw), providerHint)

	assert.Equal(t, normalize.WrappedByKey, out.Shape)
	assert.Equal(t, []string{"p1"}, ids(out.Items))
}

func TestStrategies_Independently(t *testing.T) {
	doc := gjson.Parse(`{"results":[{"id":"p1","name":"A"}]}`)

	_, ok := normalize.DirectArrayStrategy{}.Detect(doc, providerHint)
	assert.False(t, ok)

	_, ok = normalize.WrappedByKeyStrategy{}.Detect(doc, providerHint)
	assert.False(t, ok)

	out, ok := normalize.HeuristicScanStrategy{}.Detect(doc, providerHint)
	require.True(t, ok)
	assert.Equal(t, "results", out.Key)
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "direct-array", normalize.DirectArray.String())
	assert.Equal(t, "wrapped-by-key", normalize.WrappedByKey.String())
	assert.Equal(t, "heuristic-scan", normalize.HeuristicScan.String())
	assert.Equal(t, "empty", normalize.Empty.String())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{``, "empty body"},
		{`   `, "empty body"},
		{`{"a":`, "invalid json"},
		{`[1,2,3]`, "array(3)"},
		{`{"b":1,"a":2}`, "object{b,a}"},
		{`null`, "null"},
		{`"x"`, "string"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Describe([]byte(tt.raw)))
		})
	}
}
