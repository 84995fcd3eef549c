package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/keyboard"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/render"
)

// DoneHandler handles DONE state: the survey is over, text input only
// gets a pointer back to /go_test and the download buttons.
type DoneHandler struct {
	BaseHandler
	surveyUC SurveyUsecase
	keyboard *keyboard.Builder
}

// NewDoneHandler creates a new done handler
func NewDoneHandler(bot *tgbotapi.BotAPI, surveyUC SurveyUsecase, kb *keyboard.Builder, logger *zap.Logger) *DoneHandler {
	return &DoneHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateDone,
			messageSender: NewMessageSender(bot, logger),
		},
		surveyUC: surveyUC,
		keyboard: kb,
	}
}

// Handle reminds the user the survey is finished.
func (h *DoneHandler) Handle(ctx context.Context, msg *Message) error {
	session, err := h.surveyUC.GetSession(ctx, msg.UserID)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if session.LastResult != nil {
		h.sendMessage(msg.ChatID, render.MsgSurveyFinished, h.keyboard.DownloadKeyboard())
		return nil
	}

	h.sendMessage(msg.ChatID, render.MsgSurveyFinished, nil)
	return nil
}
