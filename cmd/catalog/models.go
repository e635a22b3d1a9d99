package main

import (
	"github.com/JaimeStill/agent-lab-client/internal/models"
	"github.com/spf13/cobra"
)

func newModelsCmd(a *app) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:     "models",
		Aliases: []string{"model"},
		Short:   "Manage models",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List models, optionally for one provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				result []models.Model
				err    error
			)
			if provider != "" {
				result, err = a.catalog.ProviderModels(cmd.Context(), provider)
			} else {
				result, err = a.catalog.Models(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.print(result)
		},
	}
	list.Flags().StringVar(&provider, "provider", "", "only list models of this provider id")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := a.catalog.Model(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.print(m)
			},
		},
		newModelCreateCmd(a),
		newModelUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a model",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := requireArg(args, "id")
				if err != nil {
					return err
				}
				return a.catalog.DeleteModel(cmd.Context(), id)
			},
		},
	)
	return cmd
}

func newModelCreateCmd(a *app) *cobra.Command {
	var c models.CreateCommand

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.catalog.CreateModel(cmd.Context(), c)
			if err != nil {
				return err
			}
			return a.print(m)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&c.ProviderID, "provider", "", "owning provider id")
	flags.StringVar(&c.Name, "name", "", "model name")
	flags.StringVar(&c.DisplayName, "display-name", "", "display name (defaults to name)")
	flags.StringVar(&c.Description, "description", "", "model description")
	flags.StringVar(&c.Endpoint, "endpoint", "", "model endpoint override")
	flags.StringVar(&c.APIKey, "api-key", "", "model API key override")
	flags.BoolVar(&c.IsActive, "active", true, "mark the model active")
	cmd.MarkFlagRequired("provider")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newModelUpdateCmd(a *app) *cobra.Command {
	var (
		provider, name, displayName, description, endpoint, apiKey string
		active                                                     bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a model",
		Long:  `Update a model. Only flags that are given are sent.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c models.UpdateCommand
			flags := cmd.Flags()
			set := func(flag string, dst **string, v *string) {
				if flags.Changed(flag) {
					*dst = v
				}
			}
			set("provider", &c.ProviderID, &provider)
			set("name", &c.Name, &name)
			set("display-name", &c.DisplayName, &displayName)
			set("description", &c.Description, &description)
			set("endpoint", &c.Endpoint, &endpoint)
			set("api-key", &c.APIKey, &apiKey)
			if flags.Changed("active") {
				c.IsActive = &active
			}

			m, err := a.catalog.UpdateModel(cmd.Context(), args[0], c)
			if err != nil {
				return err
			}
			return a.print(m)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&provider, "provider", "", "move the model to this provider id")
	flags.StringVar(&name, "name", "", "model name")
	flags.StringVar(&displayName, "display-name", "", "display name")
	flags.StringVar(&description, "description", "", "model description")
	flags.StringVar(&endpoint, "endpoint", "", "model endpoint override")
	flags.StringVar(&apiKey, "api-key", "", "model API key override")
	flags.BoolVar(&active, "active", true, "mark the model active")
	return cmd
}
