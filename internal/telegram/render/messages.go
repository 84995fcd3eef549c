package render

import (
	"fmt"
	"strings"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/usecase/survey"
)

const (
	// Welcome and help
	MsgWelcome = `👋 Привет! Я бот для оценки эмоционального выгорания.

Я задам 15 коротких вопросов с ответами «Да» или «Нет», а затем подготовлю персональный анализ на основе данных о твоей работе.

⏱ Опрос займёт не больше пяти минут.`

	MsgHelp = `🤖 Команды бота:

/start - Приветствие и кнопка запуска
/go_test - Начать опрос заново
/web - Открыть веб-версию
/help - Показать эту справку

Как это работает:
1. Представься: имя и фамилия
2. Ответь «Да» или «Нет» на 15 вопросов
3. Получи расшифровку ответов и анализ

Начни с /go_test`

	// Survey dialogue
	MsgAskName    = `📝 Давай знакомиться! Напиши своё имя.`
	MsgAskSurname = `Приятно познакомиться, %s! Теперь напиши фамилию.`

	MsgPreparingQuestions = `⏳ Подбираю вопросы, это займёт несколько секунд...`

	MsgQuestion = `❓ Вопрос %d/%d

%s`

	MsgAnswerHint = `Ответь «Да» или «Нет» — кнопками или текстом.`

	// Completion
	MsgTranscriptHeader = `✅ Опрос завершён! Твои ответы:`

	MsgAnalysisPending = `🔬 Анализирую результаты...`

	MsgSurveyFinished = `Опрос уже завершён. Нажми /go_test, чтобы пройти его заново.`

	MsgEmployeeNotFound = `ℹ️ Я не нашёл твоих данных в базе сотрудников, поэтому анализ провести не получилось. Расшифровка ответов выше.`

	MsgStoreUnavailable = `⚠️ База данных сотрудников сейчас недоступна, поэтому анализ провести не получилось. Расшифровка ответов выше — попробуй пройти опрос позже.`

	MsgDownloadPrompt = `Можешь скачать отчёт в удобном формате:`

	MsgVoiceNotSupported = `🎤 Голосовые сообщения я пока не понимаю. Напиши, пожалуйста, текстом.`

	// Errors
	ErrGeneric            = `❌ Произошла ошибка. Попробуйте ещё раз или нажмите /go_test`
	ErrNoActiveSurvey     = `❌ Нет активного опроса. Нажмите /go_test, чтобы начать.`
	ErrInvalidName        = `❌ Имя должно состоять из букв. Попробуй ещё раз.`
	ErrInvalidAnswer      = `❌ Я понимаю только «Да» или «Нет». Воспользуйся кнопками под вопросом.`
	ErrQuestionGeneration = `❌ Не удалось подготовить вопросы. Отправь фамилию ещё раз, я попробую снова.`
	ErrAnalysisFailed     = `❌ Не удалось получить анализ результатов. Расшифровка ответов сохранена.`
	ErrNetworkIssue       = `❌ Проблема с соединением. Попробуй чуть позже.`
	ErrTimeout            = `❌ Операция заняла слишком много времени. Попробуй ещё раз.`
	ErrNoResult           = `❌ Готового отчёта нет. Сначала пройди опрос: /go_test`
)

// RenderAskSurname greets the user by name and asks for the surname.
func RenderAskSurname(name string) string {
	return fmt.Sprintf(MsgAskSurname, name)
}

// RenderQuestion formats one survey question with its position.
func RenderQuestion(number, total int, question string) string {
	return fmt.Sprintf(MsgQuestion, number, total, question)
}

const noAnswer = "Нет ответа"

// RenderTranscript formats the question/answer log of a finished survey.
func RenderTranscript(result *survey.Result) string {
	var sb strings.Builder
	sb.WriteString(MsgTranscriptHeader)
	sb.WriteString("\n\n")

	for i, entry := range result.Answers {
		answer := entry.Answer
		if answer == "" {
			answer = noAnswer
		}
		sb.WriteString(fmt.Sprintf("%d. %s — %s\n", i+1, entry.Question, answer))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// RenderReport builds the plain-text report used by the download
// formatters: transcript plus analysis, when there is one.
func RenderReport(result *survey.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Сотрудник: %s %s\n\n", result.Surname, result.Name))
	sb.WriteString("Ответы на вопросы:\n")

	for i, entry := range result.Answers {
		sb.WriteString(fmt.Sprintf("%d. %s — %s\n", i+1, entry.Question, entry.Answer))
	}

	if result.Analysis != "" {
		sb.WriteString("\nАнализ:\n")
		sb.WriteString(result.Analysis)
		sb.WriteString("\n")
	}

	return sb.String()
}
