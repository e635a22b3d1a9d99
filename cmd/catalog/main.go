package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	a := &app{out: stdout, errOut: stderr}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Manage LLM providers and models",
		Long: `Read and modify the providers and models registered with a remote
catalog service, and forward evaluation runs to it.

Connection settings come from config.toml, CLIENT_* environment variables,
or the flags below, in increasing order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "config.toml", "path to the TOML configuration file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	flags.StringVar(&opts.baseURL, "base-url", "", "remote service base URL")
	flags.StringVar(&opts.apiVersion, "api-version", "", "remote API version (v1 or legacy)")
	flags.StringVarP(&opts.output, "output", "o", string(formatJSON), "output format (json or yaml)")

	root.AddCommand(
		newProvidersCmd(a),
		newModelsCmd(a),
		newEvalCmd(a),
	)
	return root
}

func requireArg(args []string, name string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", fmt.Errorf("%s required", name)
	}
	return args[0], nil
}
