package builder

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/roeev/docuchat/internal/api"
	chatapi "github.com/roeev/docuchat/internal/api/chat"
	"github.com/roeev/docuchat/internal/config"
	"github.com/roeev/docuchat/internal/inference"
	"github.com/roeev/docuchat/internal/integration/llama"
	"github.com/roeev/docuchat/internal/pkg/normalizer"
	"github.com/roeev/docuchat/internal/pkg/prompt"
	"github.com/roeev/docuchat/internal/pkg/validator"
	"github.com/roeev/docuchat/internal/repository"
	chatusecase "github.com/roeev/docuchat/internal/usecase/chat"
)

// Build constructs the application with all its dependencies
func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.Bool("mocks_enabled", cfg.EnableMocks),
	)

	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database migrations completed")

	db, err := setupDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}
	logger.Info("Database connection established")

	if err := os.MkdirAll(cfg.FileUploadCfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	chatRepo := repository.NewChatPostgres(db)
	promptRepo := repository.NewPromptPostgres(db)

	var engine inference.Engine
	if cfg.EnableMocks {
		logger.Warn("Using mock inference engine")
		engine = llama.NewMockConnector(logger)
	} else {
		engine = llama.NewConnector(cfg.LlamaConnectorCfg, logger)
	}
	gateway := inference.NewGateway(engine, cfg.LlamaConnectorCfg.InferTimeout)

	usecase := chatusecase.NewUsecase(
		chatRepo,
		promptRepo,
		normalizer.New(),
		prompt.New(cfg.PromptCfg.MaxLength),
		gateway,
		logger,
	)

	handler := chatapi.NewHandler(
		usecase,
		cfg.FileUploadCfg,
		validator.NewValidator(cfg.FileUploadCfg),
	)

	router := api.SetupRouter(handler, logger)

	server := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
