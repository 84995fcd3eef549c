package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/config"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/handlers"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/keyboard"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/middleware"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/render"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	handlers    map[string]handlers.Handler
	surveyUC    handlers.SurveyUsecase
	keyboard    *keyboard.Builder
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	surveyUC handlers.SurveyUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		surveyUC: surveyUC,
		keyboard: keyboard.NewBuilder(),
		logger:   logger,
		handlers: make(map[string]handlers.Handler),
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through the middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	// Voice input is acknowledged, not processed.
	if message.Voice != nil {
		b.sendMessageTo(message.Chat.ID, render.MsgVoiceNotSupported, nil)
		return
	}

	userID := message.From.ID
	session, err := b.surveyUC.GetSession(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			b.sendMessageTo(message.Chat.ID, render.ErrNoActiveSurvey, nil)
			return
		}
		ctxzap.Error(ctx, "failed to get survey session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		b.sendMessageTo(message.Chat.ID, render.ErrGeneric, nil)
		return
	}

	handler, exists := b.handlers[string(session.Stage)]
	if !exists {
		ctxzap.Warn(ctx, "no handler for stage",
			zap.String("stage", string(session.Stage)),
			zap.Int64("user_id", userID),
		)
		b.sendMessageTo(message.Chat.ID, render.ErrGeneric, nil)
		return
	}

	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		UserID:    message.From.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("stage", string(session.Stage)),
			zap.Int64("user_id", userID),
		)
		b.sendMessageTo(message.Chat.ID, render.ErrGeneric, nil)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.handleStartCommand(ctx, message)
	case "help":
		b.sendMessageTo(message.Chat.ID, render.MsgHelp, nil)
	case "go_test":
		b.handleGoTestCommand(ctx, message)
	case "web":
		b.sendMessageTo(message.Chat.ID, "🌐 Веб-версия опроса:", b.keyboard.WebAppKeyboard(b.cfg.WebAppURL))
	default:
		b.sendMessageTo(message.Chat.ID, "❌ Неизвестная команда. Используйте /help", nil)
	}
}

// handleStartCommand drops any in-flight survey and greets from scratch.
func (b *Bot) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := b.surveyUC.Reset(ctx, message.From.ID); err != nil && !errors.Is(err, entity.ErrSessionNotFound) {
		ctxzap.Warn(ctx, "failed to reset survey session",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID),
		)
	}

	b.sendMessageTo(message.Chat.ID, render.MsgWelcome, b.keyboard.StartKeyboard())
}

// handleGoTestCommand starts a fresh survey, replacing any previous one.
func (b *Bot) handleGoTestCommand(ctx context.Context, message *tgbotapi.Message) {
	if _, err := b.surveyUC.Start(ctx, message.From.ID); err != nil {
		ctxzap.Error(ctx, "failed to start survey",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID),
		)
		b.sendMessageTo(message.Chat.ID, render.ErrGeneric, nil)
		return
	}

	b.sendMessageTo(message.Chat.ID, render.MsgAskName, nil)
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := keyboard.ParseCallback(query.Data); err != nil {
		ctxzap.Error(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(query.ID, "❌ Неверные данные")
		return
	}

	handler, exists := b.handlers[handlers.HandlerStateCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		b.answerCallback(query.ID, "❌ Обработчик не найден")
		return
	}

	msg := &handlers.Message{
		ChatID:       query.Message.Chat.ID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	// Answer right away so Telegram does not consider the query stale;
	// the survey logic runs asynchronously.
	b.answerCallback(query.ID, "")

	b.wg.Add(1)
	go func(ctx context.Context, m *handlers.Message) {
		defer b.wg.Done()
		if err := handler.Handle(ctx, m); err != nil {
			ctxzap.Error(ctx, "callback handler error",
				zap.Error(err),
				zap.Int64("user_id", m.UserID),
			)
			b.sendMessageTo(m.ChatID, render.ErrGeneric, nil)
		}
	}(ctx, msg)
}

// sendMessageTo sends a plain message to chat
func (b *Bot) sendMessageTo(chatID int64, text string, replyMarkup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	state := handler.GetState()

	if !handlers.IsValidState(state) {
		b.logger.Fatal("invalid handler state",
			zap.String("state", state),
		)
	}

	b.handlers[state] = handler
	b.logger.Info("handler registered",
		zap.String("state", state),
	)
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetKeyboard returns the keyboard builder (for handlers)
func (b *Bot) GetKeyboard() *keyboard.Builder {
	return b.keyboard
}

// GetSurveyUsecase returns the survey usecase (for handlers)
func (b *Bot) GetSurveyUsecase() handlers.SurveyUsecase {
	return b.surveyUC
}

// GetConfig returns the bot config (for handlers)
func (b *Bot) GetConfig() *config.TelegramConfig {
	return b.cfg
}
