package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Load intents and examples from a YAML corpus file",
		Long: `Reads a document of the form

  intents:
    - name: greeting
      response: Hi there
      examples: [hello, good morning]

and adds every intent with its examples. Existing data is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := newServer()
			if err != nil {
				return err
			}
			defer server.Close()

			ctx := context.Background()
			if err := server.Migrate(ctx); err != nil {
				return err
			}

			result, err := server.Import(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d intents, %d examples, skipped %d\n",
				result.Intents, result.Examples, result.Skipped)
			return nil
		},
	}
}
