package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the welcome screen buttons.
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Пройти опрос", EncodeCallback(ActionCommand, ValueStartDialog)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Справка", EncodeCallback(ActionCommand, ValueHelp)),
		),
	)
}

// AnswerKeyboard creates the yes/no buttons shown under every question.
func (b *Builder) AnswerKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да", EncodeCallback(ActionAnswer, ValueYes)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет", EncodeCallback(ActionAnswer, ValueNo)),
		),
	)
}

// DownloadKeyboard creates report download buttons.
func (b *Builder) DownloadKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Markdown", EncodeCallback(ActionDownload, "markdown")),
			tgbotapi.NewInlineKeyboardButtonData("📕 PDF", EncodeCallback(ActionDownload, "pdf")),
			tgbotapi.NewInlineKeyboardButtonData("📘 DOCX", EncodeCallback(ActionDownload, "docx")),
		),
	)
}

// WebAppKeyboard creates the button that opens the companion web view.
func (b *Builder) WebAppKeyboard(url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🌐 Открыть веб-версию", url),
		),
	)
}
