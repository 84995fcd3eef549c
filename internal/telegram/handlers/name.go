package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/render"
)

// NameHandler handles AWAITING_NAME state
type NameHandler struct {
	BaseHandler
	surveyUC SurveyUsecase
	logger   *zap.Logger
}

// NewNameHandler creates a new name handler
func NewNameHandler(bot *tgbotapi.BotAPI, surveyUC SurveyUsecase, logger *zap.Logger) *NameHandler {
	return &NameHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAwaitingName,
			messageSender: NewMessageSender(bot, logger),
		},
		surveyUC: surveyUC,
		logger:   logger,
	}
}

// Handle records the user's first name and asks for the surname.
func (h *NameHandler) Handle(ctx context.Context, msg *Message) error {
	if err := h.surveyUC.SubmitName(ctx, msg.UserID, msg.Text); err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	session, err := h.surveyUC.GetSession(ctx, msg.UserID)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "name accepted", zap.Int64("user_id", msg.UserID))

	h.sendMessage(msg.ChatID, render.RenderAskSurname(session.Name), nil)
	return nil
}
