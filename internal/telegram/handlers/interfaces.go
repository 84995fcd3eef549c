package handlers

import (
	"context"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/pkg/formatter"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/usecase/survey"
)

// SurveyUsecase is the dialogue-facing surface of the survey logic.
type SurveyUsecase interface {
	Start(ctx context.Context, userID int64) (*survey.Session, error)
	GetSession(ctx context.Context, userID int64) (*survey.Session, error)
	SubmitName(ctx context.Context, userID int64, text string) error
	SubmitSurname(ctx context.Context, userID int64, text string) (*survey.Step, error)
	SubmitAnswer(ctx context.Context, userID int64, text string) (*survey.Step, error)
	Reset(ctx context.Context, userID int64) error
}

// FormatterFactory builds report formatters for download buttons.
type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
