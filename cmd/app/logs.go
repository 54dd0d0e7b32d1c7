package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"intentbot/pkg/logstream"
	websocketPkg "intentbot/pkg/websocket"
	"os"
	"os/signal"
	"syscall"
)

func logsCmd() *cobra.Command {
	var (
		serverURL string
		token     string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Follow the live log of a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := websocketPkg.NewLogTail(serverURL, token)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return client.Stream(ctx, func(e logstream.Entry) {
				fmt.Fprintln(out, websocketPkg.FormatEntry(e))
			})
		},
	}

	cmd.Flags().StringVar(&serverURL, "url", "http://localhost:3000", "base url of the server")
	cmd.Flags().StringVar(&token, "token", os.Getenv("INTENTBOT_SESSION"), "admin session cookie value")
	return cmd
}
