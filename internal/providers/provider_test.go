package providers_test

import (
	"testing"

	"github.com/JaimeStill/agent-lab-client/internal/providers"
	"github.com/stretchr/testify/assert"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name string
		want providers.Type
	}{
		{"ollama", providers.TypeOllama},
		{"  OpenAI ", providers.TypeOpenAI},
		{"Anthropic", providers.TypeAnthropic},
		{"Claude-3 Opus", providers.TypeAnthropic},
		{"my gpt proxy", providers.TypeOpenAI},
		{"claude-gpt hybrid", providers.TypeAnthropic},
		{"My Custom Box", providers.TypeCustom},
		{"local ollama server", providers.TypeCustom},
		{"", providers.TypeCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := providers.InferType(tt.name)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, providers.InferType(tt.name), "inference must be stable")
		})
	}
}

func TestType_Valid(t *testing.T) {
	for _, v := range []providers.Type{
		providers.TypeOllama,
		providers.TypeOpenAI,
		providers.TypeAnthropic,
		providers.TypeCustom,
	} {
		assert.True(t, v.Valid(), v)
	}
	assert.False(t, providers.Type("bedrock").Valid())
	assert.False(t, providers.Type("").Valid())
}
