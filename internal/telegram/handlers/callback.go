package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/keyboard"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/render"
)

// CallbackHandler handles all inline button clicks
type CallbackHandler struct {
	BaseHandler
	bot       *tgbotapi.BotAPI
	surveyUC  SurveyUsecase
	formatter FormatterFactory
	keyboard  *keyboard.Builder
	logger    *zap.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(
	bot *tgbotapi.BotAPI,
	surveyUC SurveyUsecase,
	formatterFactory FormatterFactory,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:       bot,
		surveyUC:  surveyUC,
		formatter: formatterFactory,
		keyboard:  kb,
		logger:    logger,
	}
}

// Handle routes a button click by its action prefix.
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return fmt.Errorf("parse callback: %w", err)
	}

	switch data.Action {
	case keyboard.ActionCommand:
		return h.handleCommand(ctx, msg, data.Value)
	case keyboard.ActionAnswer:
		return h.handleAnswer(ctx, msg, data.Value)
	case keyboard.ActionDownload:
		return h.handleDownload(ctx, msg, data.Value)
	default:
		ctxzap.Warn(ctx, "unknown callback action",
			zap.String("action", data.Action),
			zap.Int64("user_id", msg.UserID),
		)
		return nil
	}
}

func (h *CallbackHandler) handleCommand(ctx context.Context, msg *Message, value string) error {
	switch value {
	case keyboard.ValueStartDialog:
		if _, err := h.surveyUC.Start(ctx, msg.UserID); err != nil {
			h.HandleError(ctx, msg.ChatID, err)
			return nil
		}
		h.sendMessage(msg.ChatID, render.MsgAskName, nil)
	case keyboard.ValueHelp:
		h.sendMessage(msg.ChatID, render.MsgHelp, nil)
	default:
		ctxzap.Warn(ctx, "unknown command callback", zap.String("value", value))
	}
	return nil
}

func (h *CallbackHandler) handleAnswer(ctx context.Context, msg *Message, value string) error {
	var answer string
	switch value {
	case keyboard.ValueYes:
		answer = "да"
	case keyboard.ValueNo:
		answer = "нет"
	default:
		ctxzap.Warn(ctx, "unknown answer callback", zap.String("value", value))
		return nil
	}

	step, err := h.surveyUC.SubmitAnswer(ctx, msg.UserID, answer)
	if err != nil {
		// Stale or duplicate button presses land here; a finished
		// survey keeps its result, so just tell the user.
		if errors.Is(err, entity.ErrSurveyFinished) {
			h.sendMessage(msg.ChatID, render.MsgSurveyFinished, nil)
			return nil
		}
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	sendStep(ctx, h.bot, h.keyboard, msg.ChatID, step, h.logger)
	return nil
}

func (h *CallbackHandler) handleDownload(ctx context.Context, msg *Message, value string) error {
	session, err := h.surveyUC.GetSession(ctx, msg.UserID)
	if err != nil || session.LastResult == nil {
		h.sendMessage(msg.ChatID, render.ErrNoResult, nil)
		return nil
	}

	f, err := h.formatter.Create(entity.ResultFormat(value))
	if err != nil {
		ctxzap.Warn(ctx, "unknown download format", zap.String("format", value))
		h.sendMessage(msg.ChatID, render.ErrGeneric, nil)
		return nil
	}

	data, err := f.Format(render.RenderReport(session.LastResult))
	if err != nil {
		ctxzap.Error(ctx, "report formatting failed",
			zap.Error(err),
			zap.String("format", value),
		)
		h.sendMessage(msg.ChatID, render.ErrGeneric, nil)
		return nil
	}

	filename := fmt.Sprintf("burnout_report_%s%s",
		time.Now().Format("2006-01-02"), f.FileExtension())

	if err := h.messageSender.SendDocument(msg.ChatID, filename, data); err != nil {
		h.sendMessage(msg.ChatID, render.ErrGeneric, nil)
	}
	return nil
}
