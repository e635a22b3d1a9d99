package normalize_test

import (
	"testing"

	"github.com/JaimeStill/agent-lab-client/pkg/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPayload(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *normalize.Payload)
		want  string
	}{
		{
			"empty",
			func(p *normalize.Payload) {},
			`{}`,
		},
		{
			"aliased",
			func(p *normalize.Payload) {
				p.Set("name", "X").SetAliased(true, "isActive", "is_active")
			},
			`{"name":"X","isActive":true,"is_active":true}`,
		},
		{
			"trimmed value",
			func(p *normalize.Payload) {
				p.SetTrimmed(ptr("  http://h  "), "endpoint")
			},
			`{"endpoint":"http://h"}`,
		},
		{
			"blank trimmed value is absent",
			func(p *normalize.Payload) {
				p.SetTrimmed(ptr("   "), "endpoint").SetTrimmed(nil, "apiKey", "api_key")
			},
			`{}`,
		},
		{
			"non-empty",
			func(p *normalize.Payload) {
				p.SetNonEmpty("", "description").SetNonEmpty("d", "summary")
			},
			`{"summary":"d"}`,
		},
		{
			"keys with path characters are literal",
			func(p *normalize.Payload) {
				p.Set("a.b", 1)
			},
			`{"a.b":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := normalize.NewPayload()
			tt.build(p)

			data, err := p.Bytes()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
