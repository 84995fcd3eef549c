package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/keyboard"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/telegram/render"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/usecase/survey"
)

// sendStep renders the outcome of an accepted survey input: either the
// next question with yes/no buttons, or the final transcript followed
// by the analysis. The transcript goes out with retries so a flaky
// network does not swallow the user's results.
func sendStep(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	kb *keyboard.Builder,
	chatID int64,
	step *survey.Step,
	logger *zap.Logger,
) {
	if !step.Done {
		text := render.RenderQuestion(step.Number, step.Total, step.Question)
		sendCriticalMessage(bot, chatID, text, kb.AnswerKeyboard(), logger)
		return
	}

	sendResult(ctx, bot, kb, chatID, step.Result, logger)
}

// sendResult delivers the final transcript and analysis.
func sendResult(
	_ context.Context,
	bot *tgbotapi.BotAPI,
	kb *keyboard.Builder,
	chatID int64,
	result *survey.Result,
	logger *zap.Logger,
) {
	sendCriticalMessage(bot, chatID, render.RenderTranscript(result), nil, logger)

	switch {
	case result.Analysis != "":
		sendCriticalMessage(bot, chatID, result.Analysis, nil, logger)
	case result.StoreUnavailable:
		sendCriticalMessage(bot, chatID, render.MsgStoreUnavailable, nil, logger)
	case !result.EmployeeFound:
		sendCriticalMessage(bot, chatID, render.MsgEmployeeNotFound, nil, logger)
	default:
		sendCriticalMessage(bot, chatID, render.ErrAnalysisFailed, nil, logger)
	}

	sendCriticalMessage(bot, chatID, render.MsgDownloadPrompt, kb.DownloadKeyboard(), logger)
}
