package models

// Model represents an inference target belonging to exactly one provider.
type Model struct {
	ID          string `json:"id" yaml:"id"`
	ProviderID  string `json:"providerId" yaml:"providerId"`
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoint    string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	APIKey      string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	IsActive    bool   `json:"isActive" yaml:"isActive"`
}

// CreateCommand contains the data required to create a new model.
// Endpoint and APIKey are trimmed; blank values are not sent.
type CreateCommand struct {
	ProviderID  string `json:"providerId"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	Endpoint    string `json:"endpoint,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// UpdateCommand contains the fields to change on an existing model.
// Nil fields are left untouched.
type UpdateCommand struct {
	ProviderID  *string `json:"providerId,omitempty"`
	Name        *string `json:"name,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Description *string `json:"description,omitempty"`
	Endpoint    *string `json:"endpoint,omitempty"`
	APIKey      *string `json:"apiKey,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
