package survey

import (
	"context"
	"time"
)

// Stage describes where a user is in the survey dialogue. The set of
// values is closed: transitions only ever move forward, a /go_test
// command replaces the session wholesale.
type Stage string

const (
	StageAwaitingName    Stage = "AWAITING_NAME"
	StageAwaitingSurname Stage = "AWAITING_SURNAME"
	StageAwaitingAnswer  Stage = "AWAITING_ANSWER"
	StageDone            Stage = "DONE"
)

// AnswerEntry is one asked question together with the recorded answer.
type AnswerEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Result is what a finished survey produces: the full transcript and,
// when the analysis service cooperated, its conclusion. The transcript
// part is always present even when the analysis failed.
type Result struct {
	Name          string        `json:"name"`
	Surname       string        `json:"surname"`
	Answers       []AnswerEntry `json:"answers"`
	Analysis      string        `json:"analysis"`
	EmployeeFound bool          `json:"employee_found"`
	// StoreUnavailable distinguishes "the database was down" from
	// "the employee is not in the dataset".
	StoreUnavailable bool      `json:"store_unavailable,omitempty"`
	CompletedAt      time.Time `json:"completed_at"`
}

// Session holds one user's survey progress. It is JSON-serializable so
// the same struct works for both the in-memory and the redis store.
type Session struct {
	UserID        int64         `json:"user_id"`
	Stage         Stage         `json:"stage"`
	Name          string        `json:"name"`
	Surname       string        `json:"surname"`
	Questions     []string      `json:"questions,omitempty"`
	QuestionIndex int           `json:"question_index"`
	Answers       []AnswerEntry `json:"answers,omitempty"`
	LastResult    *Result       `json:"last_result,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Clone returns a deep copy. Stores hand out clones so no two
// goroutines ever share a mutable session.
func (s *Session) Clone() *Session {
	c := *s
	c.Questions = append([]string(nil), s.Questions...)
	c.Answers = append([]AnswerEntry(nil), s.Answers...)
	if s.LastResult != nil {
		r := *s.LastResult
		r.Answers = append([]AnswerEntry(nil), s.LastResult.Answers...)
		c.LastResult = &r
	}
	return &c
}

// CurrentQuestion returns the question waiting for an answer.
func (s *Session) CurrentQuestion() (string, bool) {
	if s.Stage != StageAwaitingAnswer || s.QuestionIndex >= len(s.Questions) {
		return "", false
	}
	return s.Questions[s.QuestionIndex], true
}

// Store defines the interface for session persistence
type Store interface {
	// Get retrieves a session by user ID or entity.ErrSessionNotFound
	Get(ctx context.Context, userID int64) (*Session, error)

	// Put saves a session
	Put(ctx context.Context, session *Session) error

	// Clear removes a session
	Clear(ctx context.Context, userID int64) error
}
