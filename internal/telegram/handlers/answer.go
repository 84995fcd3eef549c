package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/keyboard"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/render"
)

// AnswerHandler handles AWAITING_ANSWER state. Users normally answer
// through the inline buttons, but typed "да"/"нет" works too.
type AnswerHandler struct {
	BaseHandler
	bot      *tgbotapi.BotAPI
	surveyUC SurveyUsecase
	keyboard *keyboard.Builder
	logger   *zap.Logger
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(
	bot *tgbotapi.BotAPI,
	surveyUC SurveyUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *AnswerHandler {
	return &AnswerHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAwaitingAnswer,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:      bot,
		surveyUC: surveyUC,
		keyboard: kb,
		logger:   logger,
	}
}

// Handle records one answer and serves the next question or the result.
func (h *AnswerHandler) Handle(ctx context.Context, msg *Message) error {
	step, err := h.surveyUC.SubmitAnswer(ctx, msg.UserID, msg.Text)
	if err != nil {
		// A non-binary reply keeps the survey where it is; repeat the
		// buttons so the user can answer properly.
		if errors.Is(err, entity.ErrInvalidAnswer) {
			h.sendMessage(msg.ChatID, render.ErrInvalidAnswer, h.keyboard.AnswerKeyboard())
			return nil
		}
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	sendStep(ctx, h.bot, h.keyboard, msg.ChatID, step, h.logger)
	return nil
}
