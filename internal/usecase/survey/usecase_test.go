package survey

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MisticalPy/solution-to-combat-burnout/internal/entity"
)

type fakeStore struct {
	sessions map[int64]*Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[int64]*Session)}
}

func (s *fakeStore) Get(_ context.Context, userID int64) (*Session, error) {
	session, ok := s.sessions[userID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *fakeStore) Put(_ context.Context, session *Session) error {
	copied := *session
	s.sessions[session.UserID] = &copied
	return nil
}

func (s *fakeStore) Clear(_ context.Context, userID int64) error {
	delete(s.sessions, userID)
	return nil
}

type fakeAnalysis struct {
	questions    []string
	questionsErr error
	analysis     string
	analysisErr  error

	questionCalls int
	analysisCalls int
}

func (f *fakeAnalysis) GenerateQuestions(_ context.Context) ([]string, error) {
	f.questionCalls++
	if f.questionsErr != nil {
		return nil, f.questionsErr
	}
	return f.questions, nil
}

func (f *fakeAnalysis) GenerateAnalysis(_ context.Context, _ string) (string, error) {
	f.analysisCalls++
	if f.analysisErr != nil {
		return "", f.analysisErr
	}
	return f.analysis, nil
}

type fakeEmployeeRepo struct {
	count      int64
	employees  []entity.Employee
	findErr    error
	pingErr    error
	inserted   []entity.Employee
	lastQuery  string
	insertFail int
}

func (f *fakeEmployeeRepo) InsertMany(_ context.Context, employees []entity.Employee) (int, int) {
	f.inserted = append(f.inserted, employees...)
	ok := len(employees) - f.insertFail
	if ok < 0 {
		ok = 0
	}
	f.count += int64(ok)
	return ok, f.insertFail
}

func (f *fakeEmployeeRepo) FindByName(_ context.Context, query string) ([]entity.Employee, error) {
	f.lastQuery = query
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.employees, nil
}

func (f *fakeEmployeeRepo) CountEmployees(_ context.Context) (int64, error) {
	return f.count, nil
}

func (f *fakeEmployeeRepo) Ping(_ context.Context) error {
	return f.pingErr
}

type fakeDataset struct {
	employees []entity.Employee
	err       error
	reads     int
}

func (f *fakeDataset) Read(_ context.Context) ([]entity.Employee, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.employees, nil
}

func testQuestions(n int) []string {
	questions := make([]string, n)
	for i := range questions {
		questions[i] = fmt.Sprintf("Вопрос номер %d?", i+1)
	}
	return questions
}

func testCtx() context.Context {
	return ctxzap.ToContext(context.Background(), zap.NewNop())
}

func newTestUsecase(analysis *fakeAnalysis, repo *fakeEmployeeRepo, dataset *fakeDataset) *SurveyUsecase {
	if analysis == nil {
		analysis = &fakeAnalysis{questions: testQuestions(15), analysis: "Всё в порядке."}
	}
	if repo == nil {
		repo = &fakeEmployeeRepo{count: 1, employees: []entity.Employee{{ID: 1, FIO: "Иванов Иван"}}}
	}
	if dataset == nil {
		dataset = &fakeDataset{}
	}
	return NewUsecase(newFakeStore(), repo, analysis, dataset, zap.NewNop())
}

func TestFullSurveyFlow(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(15), analysis: "Рекомендуется отпуск."}
	repo := &fakeEmployeeRepo{count: 1, employees: []entity.Employee{{ID: 1, FIO: "Иванов Иван"}}}
	uc := newTestUsecase(analysis, repo, nil)

	const userID int64 = 100

	session, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, StageAwaitingName, session.Stage)

	require.NoError(t, uc.SubmitName(ctx, userID, " Иван "))

	step, err := uc.SubmitSurname(ctx, userID, "Иванов")
	require.NoError(t, err)
	assert.Equal(t, 1, step.Number)
	assert.Equal(t, 15, step.Total)
	assert.Equal(t, "Вопрос номер 1?", step.Question)

	for i := 0; i < 14; i++ {
		answer := "да"
		if i%2 == 1 {
			answer = "нет"
		}
		step, err = uc.SubmitAnswer(ctx, userID, answer)
		require.NoError(t, err)
		require.False(t, step.Done)
		assert.Equal(t, i+2, step.Number, "question numbering must be monotonic")
	}

	step, err = uc.SubmitAnswer(ctx, userID, "да")
	require.NoError(t, err)
	require.True(t, step.Done)
	require.NotNil(t, step.Result)

	result := step.Result
	assert.Len(t, result.Answers, 15)
	assert.Equal(t, "Вопрос номер 1?", result.Answers[0].Question)
	assert.Equal(t, "Да", result.Answers[0].Answer)
	assert.Equal(t, "Нет", result.Answers[1].Answer)
	assert.True(t, result.EmployeeFound)
	assert.Equal(t, "Рекомендуется отпуск.", result.Analysis)
	assert.Equal(t, "Иванов Иван", repo.lastQuery)

	stored, err := uc.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, StageDone, stored.Stage)
	require.NotNil(t, stored.LastResult)
	assert.Equal(t, result.Analysis, stored.LastResult.Analysis)
}

func TestSubmitAnswerRejectsNonBinaryInput(t *testing.T) {
	ctx := testCtx()
	uc := newTestUsecase(nil, nil, nil)

	const userID int64 = 101
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Анна"))
	_, err = uc.SubmitSurname(ctx, userID, "Сидорова")
	require.NoError(t, err)

	_, err = uc.SubmitAnswer(ctx, userID, "наверное")
	assert.ErrorIs(t, err, entity.ErrInvalidAnswer)

	// the rejected answer must not advance the survey
	step, err := uc.SubmitAnswer(ctx, userID, "ДА")
	require.NoError(t, err)
	assert.Equal(t, 2, step.Number)
}

func TestSubmitSurnameRetriesAfterGenerationFailure(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questionsErr: entity.ErrQuestionsParse}
	uc := newTestUsecase(analysis, nil, nil)

	const userID int64 = 102
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Петр"))

	_, err = uc.SubmitSurname(ctx, userID, "Петров")
	require.ErrorIs(t, err, entity.ErrQuestionsParse)

	// the session stays on the surname stage, a resend retries generation
	analysis.questionsErr = nil
	analysis.questions = testQuestions(15)

	step, err := uc.SubmitSurname(ctx, userID, "Петров")
	require.NoError(t, err)
	assert.Equal(t, 1, step.Number)
	assert.Equal(t, 2, analysis.questionCalls)
}

func TestSubmitNameValidation(t *testing.T) {
	ctx := testCtx()
	uc := newTestUsecase(nil, nil, nil)

	const userID int64 = 103
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.SubmitName(ctx, userID, "   "), entity.ErrInvalidName)
	assert.ErrorIs(t, uc.SubmitName(ctx, userID, "Иван123"), entity.ErrInvalidName)
	assert.NoError(t, uc.SubmitName(ctx, userID, "Анна-Мария"))
}

func TestSubmitAnswerWithoutSession(t *testing.T) {
	uc := newTestUsecase(nil, nil, nil)

	_, err := uc.SubmitAnswer(testCtx(), 104, "да")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSubmitAnswerAfterFinish(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(1), analysis: "ok"}
	uc := newTestUsecase(analysis, nil, nil)

	const userID int64 = 105
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Иван"))
	_, err = uc.SubmitSurname(ctx, userID, "Иванов")
	require.NoError(t, err)

	step, err := uc.SubmitAnswer(ctx, userID, "да")
	require.NoError(t, err)
	require.True(t, step.Done)

	_, err = uc.SubmitAnswer(ctx, userID, "да")
	assert.ErrorIs(t, err, entity.ErrSurveyFinished)
}

func TestFinishWithoutEmployeeStillProducesTranscript(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(2), analysis: "unused"}
	repo := &fakeEmployeeRepo{count: 1, employees: nil}
	uc := newTestUsecase(analysis, repo, nil)

	const userID int64 = 106
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Ольга"))
	_, err = uc.SubmitSurname(ctx, userID, "Новикова")
	require.NoError(t, err)

	_, err = uc.SubmitAnswer(ctx, userID, "да")
	require.NoError(t, err)
	step, err := uc.SubmitAnswer(ctx, userID, "нет")
	require.NoError(t, err)

	require.True(t, step.Done)
	assert.Len(t, step.Result.Answers, 2)
	assert.False(t, step.Result.EmployeeFound)
	assert.False(t, step.Result.StoreUnavailable)
	assert.Empty(t, step.Result.Analysis)
	assert.Zero(t, analysis.analysisCalls)
}

func TestFinishReportsStoreOutage(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(1), analysis: "unused"}
	repo := &fakeEmployeeRepo{pingErr: entity.ErrStoreUnavailable}
	uc := newTestUsecase(analysis, repo, nil)

	const userID int64 = 111
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Пётр"))
	_, err = uc.SubmitSurname(ctx, userID, "Сидоров")
	require.NoError(t, err)

	step, err := uc.SubmitAnswer(ctx, userID, "да")
	require.NoError(t, err)

	// The outage is marked distinctly from "not in the dataset" so
	// the user does not get told their record is missing.
	require.True(t, step.Done)
	assert.True(t, step.Result.StoreUnavailable)
	assert.False(t, step.Result.EmployeeFound)
	assert.Len(t, step.Result.Answers, 1)
	assert.Zero(t, analysis.analysisCalls)
}

func TestFinishMarksOutageOnLookupFailure(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(1)}
	repo := &fakeEmployeeRepo{count: 1, findErr: entity.ErrStoreUnavailable}
	uc := newTestUsecase(analysis, repo, nil)

	const userID int64 = 112
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Анна"))
	_, err = uc.SubmitSurname(ctx, userID, "Попова")
	require.NoError(t, err)

	step, err := uc.SubmitAnswer(ctx, userID, "нет")
	require.NoError(t, err)

	require.True(t, step.Done)
	assert.True(t, step.Result.StoreUnavailable)
	assert.False(t, step.Result.EmployeeFound)
}

func TestFinishSurvivesAnalysisFailure(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(1), analysisErr: entity.ErrAnalysisFailed}
	uc := newTestUsecase(analysis, nil, nil)

	const userID int64 = 107
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Иван"))
	_, err = uc.SubmitSurname(ctx, userID, "Иванов")
	require.NoError(t, err)

	step, err := uc.SubmitAnswer(ctx, userID, "да")
	require.NoError(t, err)

	require.True(t, step.Done)
	assert.Len(t, step.Result.Answers, 1)
	assert.True(t, step.Result.EmployeeFound)
	assert.Empty(t, step.Result.Analysis)
}

func TestEnsureDatasetIngestsOnEmptyStore(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(1), analysis: "ok"}
	repo := &fakeEmployeeRepo{count: 0}
	dataset := &fakeDataset{employees: []entity.Employee{
		{FIO: "Иванов Иван"},
		{FIO: "Петров Петр"},
	}}
	uc := newTestUsecase(analysis, repo, dataset)

	const userID int64 = 108
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Иван"))
	_, err = uc.SubmitSurname(ctx, userID, "Иванов")
	require.NoError(t, err)

	step, err := uc.SubmitAnswer(ctx, userID, "да")
	require.NoError(t, err)
	require.True(t, step.Done)

	assert.Equal(t, 1, dataset.reads)
	assert.Len(t, repo.inserted, 2)
}

func TestStartReplacesFinishedSession(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(1), analysis: "ok"}
	uc := newTestUsecase(analysis, nil, nil)

	const userID int64 = 109
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Иван"))
	_, err = uc.SubmitSurname(ctx, userID, "Иванов")
	require.NoError(t, err)
	_, err = uc.SubmitAnswer(ctx, userID, "да")
	require.NoError(t, err)

	session, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, StageAwaitingName, session.Stage)
	assert.Empty(t, session.Answers)
	assert.Nil(t, session.LastResult)
}

func TestResetDropsSession(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(15)}
	uc := newTestUsecase(analysis, nil, nil)

	const userID int64 = 110
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Иван"))

	require.NoError(t, uc.Reset(ctx, userID))

	_, err = uc.GetSession(ctx, userID)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSubmitSurnameAcceptsCompoundSurname(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(15)}
	uc := newTestUsecase(analysis, nil, nil)

	const userID int64 = 113
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Мария"))

	step, err := uc.SubmitSurname(ctx, userID, "  ван   дер Берг ")
	require.NoError(t, err)
	assert.Equal(t, 1, step.Number)

	session, err := uc.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "ван дер Берг", session.Surname)
}

func TestSubmitSurnameRejectsBlankInput(t *testing.T) {
	ctx := testCtx()
	uc := newTestUsecase(nil, nil, nil)

	const userID int64 = 114
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Иван"))

	_, err = uc.SubmitSurname(ctx, userID, "   ")
	assert.ErrorIs(t, err, entity.ErrInvalidName)
}

func TestConcurrentStageReadsDuringAnswers(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(15), analysis: "ok"}
	repo := &fakeEmployeeRepo{count: 1, employees: []entity.Employee{{ID: 1, FIO: "Иванов Иван"}}}
	uc := NewUsecase(NewMemoryStore(time.Hour), repo, analysis, &fakeDataset{}, zap.NewNop())

	const userID int64 = 115
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Иван"))
	_, err = uc.SubmitSurname(ctx, userID, "Иванов")
	require.NoError(t, err)

	// Dispatcher-style readers: GetSession plus field reads, outside
	// the per-user lock, concurrent with answer submissions.
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}

				session, err := uc.GetSession(ctx, userID)
				if err != nil {
					continue
				}
				_ = session.Stage
				_, _ = session.CurrentQuestion()
				_ = len(session.Answers)
			}
		}()
	}

	for i := 0; i < 15; i++ {
		_, err := uc.SubmitAnswer(ctx, userID, "да")
		require.NoError(t, err)
	}

	close(done)
	wg.Wait()

	session, err := uc.GetSession(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, StageDone, session.Stage)
}

func TestUserLocksAreEvicted(t *testing.T) {
	ctx := testCtx()
	analysis := &fakeAnalysis{questions: testQuestions(1), analysis: "ok"}
	uc := newTestUsecase(analysis, nil, nil)

	const userID int64 = 116
	_, err := uc.Start(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, uc.SubmitName(ctx, userID, "Иван"))
	_, err = uc.SubmitSurname(ctx, userID, "Иванов")
	require.NoError(t, err)
	_, err = uc.SubmitAnswer(ctx, userID, "да")
	require.NoError(t, err)

	uc.userMu.Lock()
	defer uc.userMu.Unlock()
	assert.Empty(t, uc.users)
}

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"да", "Да", true},
		{"ДА", "Да", true},
		{" Yes ", "Да", true},
		{"1", "Да", true},
		{"+", "Да", true},
		{"нет", "Нет", true},
		{"No", "Нет", true},
		{"0", "Нет", true},
		{"-", "Нет", true},
		{"может быть", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := normalizeAnswer(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}
