package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/keyboard"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/render"
)

// SurnameHandler handles AWAITING_SURNAME state
type SurnameHandler struct {
	BaseHandler
	bot      *tgbotapi.BotAPI
	surveyUC SurveyUsecase
	keyboard *keyboard.Builder
	logger   *zap.Logger
}

// NewSurnameHandler creates a new surname handler
func NewSurnameHandler(
	bot *tgbotapi.BotAPI,
	surveyUC SurveyUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *SurnameHandler {
	return &SurnameHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAwaitingSurname,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:      bot,
		surveyUC: surveyUC,
		keyboard: kb,
		logger:   logger,
	}
}

// Handle records the surname, triggers question generation and serves
// the first question. Generation can take a while, so the user gets an
// immediate progress note.
func (h *SurnameHandler) Handle(ctx context.Context, msg *Message) error {
	h.sendMessage(msg.ChatID, render.MsgPreparingQuestions, nil)

	step, err := h.surveyUC.SubmitSurname(ctx, msg.UserID, msg.Text)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "survey questions ready",
		zap.Int64("user_id", msg.UserID),
		zap.Int("total", step.Total),
	)

	sendStep(ctx, h.bot, h.keyboard, msg.ChatID, step, h.logger)
	return nil
}
