package main

import (
	"github.com/JaimeStill/agent-lab-client/internal/providers"
	"github.com/spf13/cobra"
)

func newProvidersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "providers",
		Aliases: []string{"provider"},
		Short:   "Manage providers",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List providers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := a.catalog.Providers(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(list)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one provider",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.catalog.Provider(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(p)
			},
		},
		newProviderCreateCmd(a),
		newProviderUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a provider",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := requireArg(args, "id")
				if err != nil {
					return err
				}
				return a.catalog.DeleteProvider(cmd.Context(), id)
			},
		},
	)
	return cmd
}

func newProviderCreateCmd(a *app) *cobra.Command {
	var c providers.CreateCommand

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a provider",
		Long: `Create a provider. The provider type is derived from its name:
"ollama", "openai" and "anthropic" map directly, names containing "claude"
are anthropic, names containing "gpt" are openai, anything else is custom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.CreateProvider(cmd.Context(), c)
			if err != nil {
				return err
			}
			return a.print(p)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&c.Name, "name", "", "provider name")
	flags.StringVar(&c.Endpoint, "endpoint", "", "provider endpoint URL")
	flags.StringVar(&c.APIKey, "api-key", "", "provider API key")
	flags.BoolVar(&c.IsActive, "active", true, "mark the provider active")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProviderUpdateCmd(a *app) *cobra.Command {
	var (
		name, endpoint, apiKey string
		active                 bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a provider",
		Long:  `Update a provider. Only flags that are given are sent.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c providers.UpdateCommand
			flags := cmd.Flags()
			if flags.Changed("name") {
				c.Name = &name
			}
			if flags.Changed("endpoint") {
				c.Endpoint = &endpoint
			}
			if flags.Changed("api-key") {
				c.APIKey = &apiKey
			}
			if flags.Changed("active") {
				c.IsActive = &active
			}

			p, err := a.catalog.UpdateProvider(cmd.Context(), args[0], c)
			if err != nil {
				return err
			}
			return a.print(p)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "provider name")
	flags.StringVar(&endpoint, "endpoint", "", "provider endpoint URL")
	flags.StringVar(&apiKey, "api-key", "", "provider API key")
	flags.BoolVar(&active, "active", true, "mark the provider active")
	return cmd
}
