package providers

import "strings"

// Type classifies a provider by the backend family it talks to.
type Type string

const (
	TypeOllama    Type = "ollama"
	TypeOpenAI    Type = "openai"
	TypeAnthropic Type = "anthropic"
	TypeCustom    Type = "custom"
)

// Valid reports whether t is a known classification.
func (t Type) Valid() bool {
	switch t {
	case TypeOllama, TypeOpenAI, TypeAnthropic, TypeCustom:
		return true
	default:
		return false
	}
}

// InferType derives a provider's type from its name. Exact names win over
// substring matches; anything unrecognized is custom.
func InferType(name string) Type {
	n := strings.ToLower(strings.TrimSpace(name))

	switch n {
	case "ollama":
		return TypeOllama
	case "openai":
		return TypeOpenAI
	case "anthropic":
		return TypeAnthropic
	}

	switch {
	case strings.Contains(n, "claude"):
		return TypeAnthropic
	case strings.Contains(n, "gpt"):
		return TypeOpenAI
	default:
		return TypeCustom
	}
}

// Provider represents a configured upstream LLM backend.
type Provider struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Type     Type   `json:"type,omitempty" yaml:"type,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	APIKey   string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	IsActive bool   `json:"isActive" yaml:"isActive"`
}

// CreateCommand contains the data required to create a new provider.
// Type is always re-derived from Name; a caller-supplied value is ignored.
type CreateCommand struct {
	Name     string `json:"name"`
	Type     Type   `json:"type,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
	IsActive bool   `json:"isActive"`
}

// UpdateCommand contains the fields to change on an existing provider.
// Nil fields are left untouched. Type is re-derived only when Name is set.
type UpdateCommand struct {
	Name     *string `json:"name,omitempty"`
	Type     *Type   `json:"type,omitempty"`
	Endpoint *string `json:"endpoint,omitempty"`
	APIKey   *string `json:"apiKey,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
