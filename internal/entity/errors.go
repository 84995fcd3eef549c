package entity

import "errors"

// Domain errors
var (
	// Survey errors
	ErrSessionNotFound  = errors.New("survey session not found")
	ErrInvalidName      = errors.New("name must contain only letters")
	ErrNoActiveSurvey   = errors.New("no active survey")
	ErrSurveyFinished   = errors.New("survey already finished")
	ErrQuestionsParse   = errors.New("generated questions could not be parsed")
	ErrNoQuestions      = errors.New("question list is empty")
	ErrInvalidAnswer    = errors.New("answer must be yes or no")

	// Employee errors
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmptyFIO         = errors.New("employee fio is empty")

	// Store errors
	ErrStoreUnavailable = errors.New("database unavailable")

	// Analysis errors
	ErrAnalysisFailed = errors.New("analysis request failed")
)
