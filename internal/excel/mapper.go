package excel

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

// columnMapping matches spreadsheet headers of the reference dataset to
// employee fields. Column order in the file is irrelevant; columns outside
// the mapping are folded into notes.
var columnMapping = map[string]string{
	"ФИО":                      "fio",
	"юр.лицо":                  "legal_entity",
	"пол":                      "gender",
	"Город":                    "city",
	"Должность":                "position",
	"Стаж":                     "experience",
	"возраст":                  "age",
	"В подчиненнии сотрудники": "subordinates",
	"июнь":                     "june_performance",
	"июль":                     "july_performance",
	"август":                   "august_performance",
	"сентябрь":                 "september_performance",
	"октябрь":                  "october_performance",
	"Прохождение аттестации (прошел/не прошел/нет аттестации)": "certification",
	"Обучение": "training",
	"Отпуск (когда ходил в последний раз)":    "last_vacation",
	"Больничный (брал или нет в 2025 году)":   "sick_leave_2025",
	"Выговор (да/нет)":                        "reprimand",
	"Участие в активностях корпоративных":     "corporate_activities",
}

// affirmative is the token set that coerces a flag column to true.
var affirmative = map[string]bool{
	"да":   true,
	"yes":  true,
	"true": true,
	"1":    true,
	"+":    true,
}

// fioSentinels mark rows that are stray headers or placeholders, not people.
var fioSentinels = map[string]bool{
	"фио":  true,
	"nan":  true,
	"none": true,
	"":     true,
}

// cleanString strips non-printable characters (whitespace excepted),
// collapses whitespace runs to single spaces and trims the result.
func cleanString(value string) string {
	var sb strings.Builder
	for _, r := range value {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// optionalString maps an empty cleaned value to nil instead of "".
func optionalString(value string) *string {
	cleaned := cleanString(value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func parseFlag(value string) bool {
	return affirmative[strings.ToLower(cleanString(value))]
}

func parseAge(value string) *int {
	cleaned := cleanString(value)
	if cleaned == "" {
		return nil
	}
	// Numeric cells sometimes format as "35.0".
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		age := int(f)
		return &age
	}
	return nil
}

// mapRow converts one raw spreadsheet row into an employee record.
// headers preserves column order so the notes aggregation is deterministic.
// Returns false when the row is a stray header or blank row and must be
// dropped silently.
func mapRow(headers []string, values map[string]string) (entity.Employee, bool) {
	var emp entity.Employee

	fio := cleanString(values["ФИО"])
	if fioSentinels[strings.ToLower(fio)] {
		return emp, false
	}
	emp.FIO = fio

	emp.LegalEntity = optionalString(values["юр.лицо"])
	emp.Gender = optionalString(values["пол"])
	emp.City = optionalString(values["Город"])
	emp.Position = optionalString(values["Должность"])
	emp.Experience = optionalString(values["Стаж"])
	emp.Age = parseAge(values["возраст"])
	emp.Subordinates = optionalString(values["В подчиненнии сотрудники"])

	emp.JunePerformance = optionalString(values["июнь"])
	emp.JulyPerformance = optionalString(values["июль"])
	emp.AugustPerformance = optionalString(values["август"])
	emp.SeptemberPerformance = optionalString(values["сентябрь"])
	emp.OctoberPerformance = optionalString(values["октябрь"])

	emp.Certification = optionalString(values["Прохождение аттестации (прошел/не прошел/нет аттестации)"])
	emp.Training = optionalString(values["Обучение"])
	emp.LastVacation = optionalString(values["Отпуск (когда ходил в последний раз)"])

	emp.SickLeave2025 = parseFlag(values["Больничный (брал или нет в 2025 году)"])
	emp.Reprimand = parseFlag(values["Выговор (да/нет)"])
	emp.CorporateActivities = parseFlag(values["Участие в активностях корпоративных"])

	// Unmapped columns are aggregated into notes as "column: value"
	// fragments; empty values do not contribute.
	var notes []string
	for _, header := range headers {
		if _, mapped := columnMapping[header]; mapped {
			continue
		}
		value := cleanString(values[header])
		if value == "" {
			continue
		}
		notes = append(notes, header+": "+value)
	}
	if len(notes) > 0 {
		joined := strings.Join(notes, "; ")
		emp.Notes = &joined
	}

	return emp, true
}
