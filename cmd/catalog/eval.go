package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newEvalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run evaluations",
	}

	var file string
	run := &cobra.Command{
		Use:   "run",
		Short: "Submit an evaluation request",
		Long: `Submit a JSON evaluation request to the remote service and print the
response unchanged. The request is read from --file, or from stdin when
--file is "-" or omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readRequest(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			result, err := a.catalog.RunEvaluation(cmd.Context(), json.RawMessage(body))
			if err != nil {
				return err
			}
			return a.print(result)
		},
	}
	run.Flags().StringVarP(&file, "file", "f", "-", "request file, or - for stdin")

	cmd.AddCommand(run)
	return cmd
}

func readRequest(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read request: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return data, nil
}
