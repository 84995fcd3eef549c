package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/config"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/bot"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/handlers"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	surveyUC handlers.SurveyUsecase,
	formatterFactory handlers.FormatterFactory,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, surveyUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, formatterFactory, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, formatterFactory handlers.FormatterFactory, logger *zap.Logger) {
	api := b.GetAPI()
	surveyUC := b.GetSurveyUsecase()
	kb := b.GetKeyboard()

	b.RegisterHandler(handlers.NewCallbackHandler(api, surveyUC, formatterFactory, kb, logger))
	b.RegisterHandler(handlers.NewNameHandler(api, surveyUC, logger))
	b.RegisterHandler(handlers.NewSurnameHandler(api, surveyUC, kb, logger))
	b.RegisterHandler(handlers.NewAnswerHandler(api, surveyUC, kb, logger))
	b.RegisterHandler(handlers.NewDoneHandler(api, surveyUC, kb, logger))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 5),
	)
}
