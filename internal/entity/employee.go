package entity

import (
	"fmt"
	"strings"
	"time"
)

// Employee represents one row of the employee dataset persisted in the
// employees table. Optional text columns are pointers so that an absent
// spreadsheet cell stays NULL instead of an empty string.
type Employee struct {
	ID           int64
	FIO          string
	LegalEntity  *string
	Gender       *string
	City         *string
	Position     *string
	Experience   *string
	Age          *int
	Subordinates *string

	JunePerformance      *string
	JulyPerformance      *string
	AugustPerformance    *string
	SeptemberPerformance *string
	OctoberPerformance   *string

	Certification *string
	Training      *string
	LastVacation  *string

	SickLeave2025       bool
	Reprimand           bool
	CorporateActivities bool

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IngestReport summarizes one bulk insert of spreadsheet rows.
type IngestReport struct {
	BatchID   string
	Succeeded int
	Failed    int
}

// OK reports whether at least one row made it into the store.
func (r IngestReport) OK() bool {
	return r.Succeeded > 0
}

const fieldUnset = "Не указано"

func renderOptional(v *string) string {
	if v == nil || *v == "" {
		return fieldUnset
	}
	return *v
}

func renderBool(v bool) string {
	if v {
		return "Да"
	}
	return "Нет"
}

// Summary renders the employee card passed to the analysis model.
// The layout mirrors the report shown to HR: one "field  value" line
// per attribute, performance grades month by month.
func (e *Employee) Summary() string {
	var sb strings.Builder
	divider := strings.Repeat("=", 60)

	sb.WriteString(divider + "\n")
	sb.WriteString(fmt.Sprintf("СОТРУДНИК: %s\n", e.FIO))
	sb.WriteString(divider + "\n")

	age := fieldUnset
	if e.Age != nil {
		age = fmt.Sprintf("%d", *e.Age)
	}

	lines := []struct {
		name  string
		value string
	}{
		{"ФИО", e.FIO},
		{"Юридическое лицо", renderOptional(e.LegalEntity)},
		{"Пол", renderOptional(e.Gender)},
		{"Город", renderOptional(e.City)},
		{"Должность", renderOptional(e.Position)},
		{"Стаж", renderOptional(e.Experience)},
		{"Возраст", age},
		{"Подчиненные", renderOptional(e.Subordinates)},
		{"Производительность (июнь)", renderOptional(e.JunePerformance)},
		{"Производительность (июль)", renderOptional(e.JulyPerformance)},
		{"Производительность (август)", renderOptional(e.AugustPerformance)},
		{"Производительность (сентябрь)", renderOptional(e.SeptemberPerformance)},
		{"Производительность (октябрь)", renderOptional(e.OctoberPerformance)},
		{"Аттестация", renderOptional(e.Certification)},
		{"Обучение", renderOptional(e.Training)},
		{"Последний отпуск", renderOptional(e.LastVacation)},
		{"Больничный в 2025", renderBool(e.SickLeave2025)},
		{"Выговор", renderBool(e.Reprimand)},
		{"Участие в активностях", renderBool(e.CorporateActivities)},
	}

	for _, l := range lines {
		sb.WriteString(fmt.Sprintf(" %-30s %s\n", l.name, l.value))
	}

	if e.Notes != nil && *e.Notes != "" {
		sb.WriteString(fmt.Sprintf(" %-30s %s\n", "Заметки", *e.Notes))
	}

	sb.WriteString(divider)
	return sb.String()
}
