package models

import (
	"strings"

	"github.com/JaimeStill/agent-lab-client/pkg/normalize"
	"github.com/tidwall/gjson"
)

var hint = normalize.Hint{
	Entity:     "model",
	Collection: "models",
	Identity:   []string{"id", "name"},
	Required:   []string{"name"},
	AnyOf:      []string{"providerId", "provider_id"},
}

func decode(r gjson.Result) Model {
	m := Model{
		ID:          r.Get("id").String(),
		ProviderID:  normalize.Field(r, "providerId", "provider_id").String(),
		Name:        r.Get("name").String(),
		DisplayName: normalize.Field(r, "displayName", "display_name").String(),
		Description: r.Get("description").String(),
		Endpoint:    strings.TrimSpace(r.Get("endpoint").String()),
		APIKey:      strings.TrimSpace(normalize.Field(r, "apiKey", "api_key").String()),
		IsActive:    normalize.Field(r, "isActive", "is_active").Bool(),
	}
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}
	return m
}

func createPayload(cmd CreateCommand) ([]byte, error) {
	display := cmd.DisplayName
	if strings.TrimSpace(display) == "" {
		display = cmd.Name
	}

	return normalize.NewPayload().
		Set("name", cmd.Name).
		Set("displayName", display).
		SetNonEmpty(cmd.Description, "description").
		SetTrimmed(&cmd.Endpoint, "endpoint").
		SetTrimmed(&cmd.APIKey, "apiKey", "api_key").
		SetAliased(cmd.IsActive, "isActive", "is_active").
		SetAliased(cmd.ProviderID, "providerId", "provider_id").
		Bytes()
}

func updatePayload(cmd UpdateCommand) ([]byte, error) {
	p := normalize.NewPayload()

	if cmd.Name != nil {
		p.Set("name", *cmd.Name)
	}
	if cmd.DisplayName != nil {
		p.Set("displayName", *cmd.DisplayName)
	}
	if cmd.Description != nil {
		p.Set("description", *cmd.Description)
	}
	p.SetTrimmed(cmd.Endpoint, "endpoint")
	p.SetTrimmed(cmd.APIKey, "apiKey", "api_key")
	if cmd.IsActive != nil {
		p.SetAliased(*cmd.IsActive, "isActive", "is_active")
	}
	if cmd.ProviderID != nil {
		p.SetAliased(*cmd.ProviderID, "providerId", "provider_id")
	}

	return p.Bytes()
}
