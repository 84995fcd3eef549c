package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/api"
	employeeapi "github.com/MisticalPy/solution-to-combat-burnout/internal/api/employee"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/config"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/excel"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/integration/analysis"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/pkg/formatter"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/repository"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/usecase/survey"
)

// Build assembles the companion API application.
func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	employeeRepo := repository.NewEmployeePostgres(db)
	logger.Info("Repositories initialized")

	employeeHandler := employeeapi.NewHandler(employeeRepo)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(employeeHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the survey Telegram bot.
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	employeeRepo := repository.NewEmployeePostgres(db)
	logger.Info("Repositories initialized")

	var analysisConnector survey.AnalysisConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for analysis service")
		analysisConnector = analysis.NewMockConnector(logger)
	} else {
		logger.Info("Using real connector for analysis service")
		analysisConnector = analysis.NewConnector(cfg.AnalysisConnectorCfg, cfg.SymptomChecklist, logger)
	}

	sessionStore, err := setupSessionStore(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("setup session store: %w", err)
	}

	datasetReader := excel.NewReader(cfg.EmployeeFile)

	surveyUC := survey.NewUsecase(
		sessionStore,
		employeeRepo,
		analysisConnector,
		datasetReader,
		logger,
	)
	logger.Info("Use cases initialized")

	bot, err := telegram.NewBot(&cfg.TelegramCfg, surveyUC, formatter.NewFactory(), logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}
