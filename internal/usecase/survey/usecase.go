package survey

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
	"github.com/MisticalPy/solution-to-combat-burnout/internal/repository"
)

// Step is what the dialogue layer renders after each accepted input:
// either the next question with its position, or the final result.
type Step struct {
	Question string
	Number   int // 1-based position of Question
	Total    int
	Done     bool
	Result   *Result
}

var (
	affirmativeAnswers = map[string]struct{}{
		"да": {}, "yes": {}, "true": {}, "1": {}, "+": {},
	}
	negativeAnswers = map[string]struct{}{
		"нет": {}, "no": {}, "false": {}, "0": {}, "-": {},
	}
)

const (
	answerYes = "Да"
	answerNo  = "Нет"
)

// SurveyUsecase implements the survey dialogue business logic
type SurveyUsecase struct {
	store        Store
	employeeRepo repository.EmployeeRepository
	analysis     AnalysisConnector
	dataset      DatasetReader
	logger       *zap.Logger

	// one writer per user at a time
	userMu sync.Mutex
	users  map[int64]*userLock

	ingestMu sync.Mutex
}

// userLock is a refcounted per-user mutex. The entry leaves the map as
// soon as the last holder releases it, so the map does not accumulate
// a key per user ever seen.
type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewUsecase creates a new survey use case
func NewUsecase(
	store Store,
	employeeRepo repository.EmployeeRepository,
	analysis AnalysisConnector,
	dataset DatasetReader,
	logger *zap.Logger,
) *SurveyUsecase {
	return &SurveyUsecase{
		store:        store,
		employeeRepo: employeeRepo,
		analysis:     analysis,
		dataset:      dataset,
		logger:       logger,
		users:        make(map[int64]*userLock),
	}
}

func (uc *SurveyUsecase) lockUser(userID int64) func() {
	uc.userMu.Lock()
	l, ok := uc.users[userID]
	if !ok {
		l = &userLock{}
		uc.users[userID] = l
	}
	l.refs++
	uc.userMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		uc.userMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(uc.users, userID)
		}
		uc.userMu.Unlock()
	}
}

// Start replaces any existing session with a fresh one and asks for the
// user's first name.
func (uc *SurveyUsecase) Start(ctx context.Context, userID int64) (*Session, error) {
	defer uc.lockUser(userID)()

	session := &Session{
		UserID:    userID,
		Stage:     StageAwaitingName,
		CreatedAt: time.Now(),
	}

	if err := uc.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "survey started", zap.Int64("user_id", userID))

	return session, nil
}

// GetSession returns the current session for the user.
func (uc *SurveyUsecase) GetSession(ctx context.Context, userID int64) (*Session, error) {
	return uc.store.Get(ctx, userID)
}

// Reset drops the user's session entirely.
func (uc *SurveyUsecase) Reset(ctx context.Context, userID int64) error {
	defer uc.lockUser(userID)()

	if err := uc.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// SubmitName records the first name and moves the dialogue to the
// surname question.
func (uc *SurveyUsecase) SubmitName(ctx context.Context, userID int64, text string) error {
	defer uc.lockUser(userID)()

	session, err := uc.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	if session.Stage != StageAwaitingName {
		return entity.ErrNoActiveSurvey
	}

	name, ok := cleanNamePart(text)
	if !ok {
		return entity.ErrInvalidName
	}

	session.Name = name
	session.Stage = StageAwaitingSurname

	if err := uc.store.Put(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// SubmitSurname records the surname, asks the analysis service for a
// fresh question set and, if that worked, serves the first question.
// On a generation or parse failure the session stays where it was so a
// repeated surname retries the whole thing.
func (uc *SurveyUsecase) SubmitSurname(ctx context.Context, userID int64, text string) (*Step, error) {
	defer uc.lockUser(userID)()

	session, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session.Stage != StageAwaitingSurname {
		return nil, entity.ErrNoActiveSurvey
	}

	// Surnames get no alphabet guard: compound ones ("ван дер Берг",
	// "Салтыков-Щедрин") are stored as typed, whitespace collapsed.
	surname := strings.Join(strings.Fields(text), " ")
	if surname == "" {
		return nil, entity.ErrInvalidName
	}

	questions, err := uc.analysis.GenerateQuestions(ctx)
	if err != nil {
		ctxzap.Error(ctx, "question generation failed",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	session.Surname = surname
	session.Questions = questions
	session.QuestionIndex = 0
	session.Answers = nil
	session.Stage = StageAwaitingAnswer

	if err := uc.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	ctxzap.Info(ctx, "questions generated",
		zap.Int64("user_id", userID),
		zap.Int("count", len(questions)),
	)

	return &Step{
		Question: questions[0],
		Number:   1,
		Total:    len(questions),
	}, nil
}

// SubmitAnswer records one yes/no answer and advances the survey. Input
// outside the yes/no vocabulary is rejected without advancing. The last
// answer triggers completion: employee lookup and analysis.
func (uc *SurveyUsecase) SubmitAnswer(ctx context.Context, userID int64, text string) (*Step, error) {
	defer uc.lockUser(userID)()

	session, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch session.Stage {
	case StageAwaitingAnswer:
	case StageDone:
		return nil, entity.ErrSurveyFinished
	default:
		return nil, entity.ErrNoActiveSurvey
	}

	question, ok := session.CurrentQuestion()
	if !ok {
		return nil, entity.ErrNoQuestions
	}

	answer, ok := normalizeAnswer(text)
	if !ok {
		return nil, entity.ErrInvalidAnswer
	}

	session.Answers = append(session.Answers, AnswerEntry{
		Question: question,
		Answer:   answer,
	})
	session.QuestionIndex++

	if next, ok := session.CurrentQuestion(); ok {
		if err := uc.store.Put(ctx, session); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}

		return &Step{
			Question: next,
			Number:   session.QuestionIndex + 1,
			Total:    len(session.Questions),
		}, nil
	}

	result := uc.finish(ctx, session)

	session.Stage = StageDone
	session.LastResult = result

	if err := uc.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &Step{Done: true, Result: result, Total: len(session.Questions)}, nil
}

// finish builds the final result. The transcript is always produced;
// employee lookup and analysis are best effort and their failures are
// reflected in the result rather than aborting the survey.
func (uc *SurveyUsecase) finish(ctx context.Context, session *Session) *Result {
	result := &Result{
		Name:        session.Name,
		Surname:     session.Surname,
		Answers:     append([]AnswerEntry(nil), session.Answers...),
		CompletedAt: time.Now(),
	}

	if err := uc.ensureDataset(ctx); err != nil {
		ctxzap.Error(ctx, "dataset ingestion failed", zap.Error(err))
		result.StoreUnavailable = true
		return result
	}

	query := strings.TrimSpace(session.Surname + " " + session.Name)
	employees, err := uc.employeeRepo.FindByName(ctx, query)
	if err != nil {
		ctxzap.Error(ctx, "employee lookup failed",
			zap.Error(err),
			zap.String("query", query),
		)
		result.StoreUnavailable = true
		return result
	}

	if len(employees) == 0 {
		ctxzap.Info(ctx, "employee not found", zap.String("query", query))
		return result
	}

	result.EmployeeFound = true
	employee := employees[0]

	analysis, err := uc.analysis.GenerateAnalysis(ctx, employee.Summary())
	if err != nil {
		ctxzap.Error(ctx, "analysis generation failed",
			zap.Error(err),
			zap.String("fio", employee.FIO),
		)
		return result
	}

	result.Analysis = analysis
	return result
}

// ensureDataset loads the employee spreadsheet into the store on first
// use. The check runs on every completion so a failed load gets another
// chance next time.
func (uc *SurveyUsecase) ensureDataset(ctx context.Context) error {
	uc.ingestMu.Lock()
	defer uc.ingestMu.Unlock()

	if err := uc.employeeRepo.Ping(ctx); err != nil {
		return err
	}

	count, err := uc.employeeRepo.CountEmployees(ctx)
	if err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	if count > 0 {
		return nil
	}

	employees, err := uc.dataset.Read(ctx)
	if err != nil {
		return fmt.Errorf("read employee dataset: %w", err)
	}

	batchID := uuid.New().String()
	succeeded, failed := uc.employeeRepo.InsertMany(ctx, employees)

	ctxzap.Info(ctx, "employee dataset ingested",
		zap.String("batch_id", batchID),
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)

	report := entity.IngestReport{BatchID: batchID, Succeeded: succeeded, Failed: failed}
	if !report.OK() {
		return fmt.Errorf("ingestion batch %s: no rows inserted", batchID)
	}

	return nil
}

// cleanNamePart trims the input and verifies it looks like a name:
// letters, with hyphens allowed inside double-barrelled names.
func cleanNamePart(text string) (string, bool) {
	name := strings.TrimSpace(text)
	if name == "" {
		return "", false
	}

	for _, r := range name {
		if !unicode.IsLetter(r) && r != '-' {
			return "", false
		}
	}

	return name, true
}

// normalizeAnswer maps free-form yes/no input onto canonical transcript
// values. Anything else is rejected.
func normalizeAnswer(text string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if _, ok := affirmativeAnswers[normalized]; ok {
		return answerYes, true
	}
	if _, ok := negativeAnswers[normalized]; ok {
		return answerNo, true
	}

	return "", false
}
