package main

import (
	"context"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and seed the configuration document",
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
			if err := server.Bootstrap(ctx, configPath); err != nil {
				return err
			}

			logger.Info("Database is up to date")
			return nil
		},
	}
}
