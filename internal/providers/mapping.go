package providers

import (
	"strings"

	"github.com/JaimeStill/agent-lab-client/pkg/normalize"
	"github.com/tidwall/gjson"
)

var hint = normalize.Hint{
	Entity:     "provider",
	Collection: "providers",
	Identity:   []string{"id", "name"},
	Required:   []string{"name"},
	AnyOf:      []string{"id", "type"},
}

func decode(r gjson.Result) Provider {
	p := Provider{
		ID:       r.Get("id").String(),
		Name:     r.Get("name").String(),
		Endpoint: normalize.Field(r, "endpoint", "base_url", "baseUrl").String(),
		APIKey:   normalize.Field(r, "apiKey", "api_key").String(),
		IsActive: normalize.Field(r, "isActive", "is_active").Bool(),
	}

	// A nameless partial entity keeps an empty type.
	if t := Type(strings.ToLower(r.Get("type").String())); t.Valid() {
		p.Type = t
	} else if p.Name != "" {
		p.Type = InferType(p.Name)
	}
	return p
}

func createPayload(cmd CreateCommand) ([]byte, error) {
	return normalize.NewPayload().
		Set("name", cmd.Name).
		Set("type", string(InferType(cmd.Name))).
		SetNonEmpty(cmd.Endpoint, "endpoint").
		SetNonEmpty(cmd.APIKey, "apiKey", "api_key").
		SetAliased(cmd.IsActive, "isActive", "is_active").
		Bytes()
}

func updatePayload(cmd UpdateCommand) ([]byte, error) {
	p := normalize.NewPayload()

	if cmd.Name != nil {
		p.Set("name", *cmd.Name).Set("type", string(InferType(*cmd.Name)))
	}
	if cmd.Endpoint != nil {
		p.Set("endpoint", *cmd.Endpoint)
	}
	if cmd.APIKey != nil {
		p.SetAliased(*cmd.APIKey, "apiKey", "api_key")
	}
	if cmd.IsActive != nil {
		p.SetAliased(*cmd.IsActive, "isActive", "is_active")
	}

	return p.Bytes()
}
