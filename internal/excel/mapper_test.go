package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeaders() []string {
	return []string{
		"ФИО", "юр.лицо", "пол", "Город", "Должность", "Стаж", "возраст",
		"В подчиненнии сотрудники", "июнь", "июль", "август", "сентябрь", "октябрь",
		"Прохождение аттестации (прошел/не прошел/нет аттестации)", "Обучение",
		"Отпуск (когда ходил в последний раз)",
		"Больничный (брал или нет в 2025 году)", "Выговор (да/нет)",
		"Участие в активностях корпоративных",
	}
}

func TestMapRowFullRecord(t *testing.T) {
	values := map[string]string{
		"ФИО":       "  Иванов   Иван  ",
		"юр.лицо":   "ООО Ромашка",
		"пол":       "м",
		"Город":     "Москва",
		"Должность": "инженер",
		"Стаж":      "5 лет",
		"возраст":   "35.0",
		"В подчиненнии сотрудники": "нет",
		"июнь":   "высокая",
		"июль":   "средняя",
		"август": "низкая",
		"Прохождение аттестации (прошел/не прошел/нет аттестации)": "прошел",
		"Больничный (брал или нет в 2025 году)":                    "Да",
		"Выговор (да/нет)":                                         "нет",
		"Участие в активностях корпоративных":                      "+",
	}

	emp, ok := mapRow(sampleHeaders(), values)
	require.True(t, ok)

	assert.Equal(t, "Иванов Иван", emp.FIO, "whitespace runs must collapse")
	require.NotNil(t, emp.Age)
	assert.Equal(t, 35, *emp.Age, "float-formatted cells must parse")
	require.NotNil(t, emp.City)
	assert.Equal(t, "Москва", *emp.City)

	assert.True(t, emp.SickLeave2025)
	assert.False(t, emp.Reprimand)
	assert.True(t, emp.CorporateActivities, "+ counts as affirmative")

	assert.Nil(t, emp.SeptemberPerformance, "empty cells stay nil")
	assert.Nil(t, emp.Notes)
}

func TestMapRowDropsSentinelRows(t *testing.T) {
	for _, fio := range []string{"ФИО", "фио", "NaN", "None", "", "   "} {
		_, ok := mapRow(sampleHeaders(), map[string]string{"ФИО": fio})
		assert.False(t, ok, "fio %q must be dropped", fio)
	}
}

func TestMapRowIsIdempotentOnCleanInput(t *testing.T) {
	values := map[string]string{
		"ФИО":     "Петров Петр",
		"Город":   "Казань",
		"возраст": "41",
	}

	first, ok := mapRow(sampleHeaders(), values)
	require.True(t, ok)
	second, ok := mapRow(sampleHeaders(), values)
	require.True(t, ok)

	assert.Equal(t, first, second)
}

func TestMapRowAggregatesUnknownColumnsIntoNotes(t *testing.T) {
	headers := append(sampleHeaders(), "Хобби", "Комментарий")
	values := map[string]string{
		"ФИО":         "Сидорова Анна",
		"Хобби":       "шахматы",
		"Комментарий": "перевод из другого филиала",
	}

	emp, ok := mapRow(headers, values)
	require.True(t, ok)
	require.NotNil(t, emp.Notes)
	assert.Equal(t, "Хобби: шахматы; Комментарий: перевод из другого филиала", *emp.Notes)
}

func TestParseFlagVocabulary(t *testing.T) {
	for _, v := range []string{"да", "ДА", "yes", "TRUE", "1", "+"} {
		assert.True(t, parseFlag(v), "value %q", v)
	}
	for _, v := range []string{"нет", "no", "false", "0", "-", "", "иногда"} {
		assert.False(t, parseFlag(v), "value %q", v)
	}
}

func TestCleanStringStripsNonPrintable(t *testing.T) {
	assert.Equal(t, "Иванов Иван", cleanString("Иванов\x00 \tИван\n"))
	assert.Equal(t, "", cleanString("  \t\n "))
}

func TestParseAge(t *testing.T) {
	age := parseAge("42")
	require.NotNil(t, age)
	assert.Equal(t, 42, *age)

	assert.Nil(t, parseAge(""))
	assert.Nil(t, parseAge("сорок"))
}
