package config

import (
	"context"
	"crypto/rand"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"intentbot/database"
	"intentbot/database/postgres"
	"intentbot/database/sqlite"
	authHandler "intentbot/internal/api/auth/handler"
	authService "intentbot/internal/api/auth/service"
	chatbotHandler "intentbot/internal/api/chatbot/handler"
	chatbotRepository "intentbot/internal/api/chatbot/repository"
	chatbotService "intentbot/internal/api/chatbot/service"
	intents "intentbot/internal/api/intent"
	intentHandler "intentbot/internal/api/intent/handler"
	intentRepository "intentbot/internal/api/intent/repository"
	intentService "intentbot/internal/api/intent/service"
	logsHandler "intentbot/internal/api/logs/handler"
	settingsHandler "intentbot/internal/api/settings/handler"
	settingsRepository "intentbot/internal/api/settings/repository"
	settingsService "intentbot/internal/api/settings/service"
	"intentbot/internal/entity"
	"intentbot/internal/middleware"
	"intentbot/internal/resolver"
	"intentbot/pkg/bcrypt"
	jwtPkg "intentbot/pkg/jwt"
	"intentbot/pkg/logstream"
	"intentbot/pkg/notify"
	"intentbot/pkg/redis"
	"intentbot/pkg/s3"
	"intentbot/pkg/utils"
	"os"
	"strings"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	tokenSigner jwtPkg.ITokenSigner
	s3Client    s3.ItfS3
	notifier    notify.INotifier
	hub         logstream.IHub

	intentRepo intentRepository.Repository
	settings   settingsService.ISettingsService
	intents    intentService.IIntentService
	chatbot    chatbotService.IChatbotService
	webhook    *chatbotHandler.ChatbotHandler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.bcryptUtils == nil {
		server.bcryptUtils = bcrypt.New()
	}

	server.buildServices()

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase opens the store selected by DB_DRIVER, postgres by default.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		var (
			db  *sqlx.DB
			err error
		)

		switch driver := strings.ToLower(os.Getenv("DB_DRIVER")); driver {
		case "", "postgres":
			db, err = postgres.New()
		case "sqlite":
			path := os.Getenv("SQLITE_PATH")
			if path == "" {
				path = "./storage/intentbot.db"
			}
			db, err = sqlite.New(path)
		default:
			err = fmt.Errorf("unsupported DB_DRIVER %q", driver)
		}

		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithDB(db *sqlx.DB) ServerOption {
	return func(s *Server) error {
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

// WithTokenSigner reads JWT_ACCESS_TOKEN_SECRET. Without it a random secret
// is generated, so sessions do not survive a restart.
func WithTokenSigner() ServerOption {
	return func(s *Server) error {
		signer, err := jwtPkg.New()
		if err == nil {
			s.tokenSigner = signer
			return nil
		}

		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		if s.log != nil {
			s.log.Warn("JWT_ACCESS_TOKEN_SECRET not set, using a random session secret")
		}
		s.tokenSigner = jwtPkg.NewWithSecret(secret, jwtPkg.DefaultTTL)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if client == nil && s.log != nil {
			s.log.Info("AWS_BUCKET_NAME not set, backups disabled")
		}
		s.s3Client = client
		return nil
	}
}

func WithNotifier() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before notifier")
		}
		s.notifier = notify.New(s.log)
		return nil
	}
}

func WithLogHub(hub logstream.IHub) ServerOption {
	return func(s *Server) error {
		s.hub = hub
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) buildServices() {
	s.intentRepo = intentRepository.New(s.db, s.log)
	settingsRepo := settingsRepository.New(s.db, s.log)
	res := resolver.New(s.intentRepo.Corpus(), nil)

	s.settings = settingsService.NewSettingsService(s.log, settingsRepo, s.intentRepo, s.bcryptUtils, s.utils, s.s3Client)
	s.intents = intentService.NewIntentService(s.log, s.intentRepo, res, s.utils)
	s.chatbot = chatbotService.NewChatbotService(s.log, chatbotRepository.New(s.db, s.log), res, s.notifier, s.utils)
	s.middleware = middleware.New(s.log, s.settings, s.tokenSigner, s.redisServer)
}

// Migrate creates missing tables.
func (s *Server) Migrate(ctx context.Context) error {
	return database.Migrate(ctx, s.db)
}

// Bootstrap seeds the runtime configuration from path on first start.
func (s *Server) Bootstrap(ctx context.Context, path string) error {
	cfg, err := s.settings.Bootstrap(ctx, path)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"unique_id": cfg.String(entity.ConfigUniqueID),
		"score":     cfg[entity.ConfigScore],
	}).Info("Configuration loaded")
	return nil
}

// Import loads intents and examples from a YAML corpus file.
func (s *Server) Import(ctx context.Context, path string) (*intents.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := intents.ParseImportDocument(data)
	if err != nil {
		return nil, err
	}

	return s.intents.ImportIntents(ctx, doc)
}

func (s *Server) RegisterHandler() {
	authServices := authService.New(s.log, s.settings, s.bcryptUtils, s.tokenSigner, s.redisServer)
	s.webhook = chatbotHandler.New(s.log, s.middleware, s.chatbot)

	s.handlers = append(s.handlers,
		authHandler.New(s.log, authServices, s.validator, s.middleware),
		intentHandler.New(s.log, s.validator, s.middleware, s.intents),
		settingsHandler.New(s.log, s.validator, s.middleware, s.settings),
		s.webhook,
	)
	if s.hub != nil {
		s.handlers = append(s.handlers, logsHandler.New(s.log, s.middleware, s.hub))
	}
}

func (s *Server) Run() error {
	if err := s.mount(); err != nil {
		return err
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	s.log.Infof("Listening on :%s", port)
	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) mount() error {
	if s.engine == nil {
		return fmt.Errorf("fiber app is required")
	}
	if s.webhook == nil {
		return fmt.Errorf("handlers are not registered")
	}

	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	s.setupHealthCheck()
	s.webhook.StartWebhook(s.engine)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
	return nil
}

// Close releases the database for commands that never start the HTTP server.
func (s *Server) Close() error {
	return s.db.Close()
}

// Shutdown stops accepting requests, waits for pending notifications and
// closes the database.
func (s *Server) Shutdown(timeout time.Duration) error {
	var err error
	if s.engine != nil {
		err = s.engine.ShutdownWithTimeout(timeout)
	}
	s.chatbot.Wait()
	if closeErr := s.db.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
