package main

import (
	"context"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"intentbot/internal/config"
	"intentbot/pkg/log"
	"intentbot/pkg/logstream"
	"intentbot/pkg/redis"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	logger     *logrus.Logger
	hub        = logstream.NewHub()
	configPath string
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Error loading .env file: %v", err)
	}

	logger = log.NewLogger(hub)

	root := &cobra.Command{
		Use:   "intentbot",
		Short: "Webhook chatbot answering from a fuzzy matched intent corpus",
		RunE:  runServe,
	}

	defaultConfig := os.Getenv("CONFIG_FILE")
	if defaultConfig == "" {
		defaultConfig = "config.yaml"
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig, "path to the initial configuration document")

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(importCmd())
	root.AddCommand(logsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook and admin API",
		RunE:  runServe,
	}
}

func newServer(extra ...config.ServerOption) (*config.Server, error) {
	options := []config.ServerOption{
		config.WithLogger(logger),
		config.WithDatabase(),
		config.WithUtils(),
		config.WithBcryptUtils(),
	}
	return config.NewServer(append(options, extra...)...)
}

func runServe(cmd *cobra.Command, args []string) error {
	server, err := newServer(
		config.WithFiber(config.NewFiber(logger)),
		config.WithValidator(config.NewValidator()),
		config.WithRedisServer(redis.New()),
		config.WithTokenSigner(),
		config.WithS3Client(),
		config.WithNotifier(),
		config.WithLogHub(hub),
	)
	if err != nil {
		logger.Errorf("Failed to build server: %v", err)
		return err
	}

	ctx := context.Background()
	if err := server.Migrate(ctx); err != nil {
		logger.Errorf("Failed to migrate database: %v", err)
		return err
	}
	if err := server.Bootstrap(ctx, configPath); err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		return err
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	logger.Info("Server started successfully")

	select {
	case err := <-errChan:
		if err != nil {
			logger.Errorf("Error starting server: %v", err)
			return err
		}
	case <-sigChan:
	}

	logger.Info("Shutting down server...")
	return server.Shutdown(10 * time.Second)
}
