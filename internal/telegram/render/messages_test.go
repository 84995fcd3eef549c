package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/usecase/survey"
)

func TestRenderQuestion(t *testing.T) {
	text := RenderQuestion(3, 15, "Вы часто чувствуете усталость?")

	assert.Contains(t, text, "Вопрос 3/15")
	assert.Contains(t, text, "Вы часто чувствуете усталость?")
}

func TestRenderTranscript(t *testing.T) {
	result := &survey.Result{
		Name:    "Иван",
		Surname: "Иванов",
		Answers: []survey.AnswerEntry{
			{Question: "Вы устали?", Answer: "Да"},
			{Question: "Вы спите достаточно?", Answer: "Нет"},
			{Question: "Вы довольны работой?"},
		},
	}

	text := RenderTranscript(result)

	assert.True(t, strings.HasPrefix(text, MsgTranscriptHeader))
	assert.Contains(t, text, "1. Вы устали? — Да")
	assert.Contains(t, text, "2. Вы спите достаточно? — Нет")
	assert.Contains(t, text, "3. Вы довольны работой? — Нет ответа")
}

func TestRenderReportIncludesAnalysisWhenPresent(t *testing.T) {
	result := &survey.Result{
		Name:     "Иван",
		Surname:  "Иванов",
		Answers:  []survey.AnswerEntry{{Question: "Вы устали?", Answer: "Да"}},
		Analysis: "Рекомендуется отпуск.",
	}

	text := RenderReport(result)
	assert.Contains(t, text, "Сотрудник: Иванов Иван")
	assert.Contains(t, text, "Рекомендуется отпуск.")

	result.Analysis = ""
	text = RenderReport(result)
	assert.NotContains(t, text, "Анализ:")
}
