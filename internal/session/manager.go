package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/quizbot/pkg/models"
)

var (
	// ErrSessionNotFound is returned for a user with no active session
	ErrSessionNotFound = errors.New("no active quiz session")
	// ErrStaleSubmission is returned for an answer to a question that is
	// not the current one, including questions already answered
	ErrStaleSubmission = errors.New("question already answered or not current")
)

// QuizStore loads quiz records by id. Implementations return
// database.ErrQuizNotFound (or their own not-found error) for unknown
// ids.
type QuizStore interface {
	Get(ctx context.Context, quizID int64) (*models.Quiz, error)
}

// Answer is one recorded selection
type Answer struct {
	QuestionIndex int
	SelectedIndex int
}

// Session tracks one user's progress through a quiz. Cursor is the
// index of the next unanswered question; Answers holds at most one
// entry per question index, all below Cursor. The quiz itself is not
// owned: it is looked up by id on every use.
type Session struct {
	mu       sync.Mutex
	UserID   int64
	QuizID   int64
	Cursor   int
	Answers  []Answer
	lastSeen time.Time
}

// Progress describes what the user should see next: either the current
// question or completion.
type Progress struct {
	QuizID   int64
	Index    int // index of Question, meaningless when Done
	Total    int
	Question *models.Question // nil when Done
	Done     bool
}

// Score is the result of scoring a session against its quiz
type Score struct {
	QuizID      int64
	Correct     int
	Total       int
	PerQuestion []bool
}

// Manager owns all live sessions. Operations for the same user are
// serialized on the session's lock; different users proceed
// independently. Sessions are volatile: they live for the process
// lifetime only.
type Manager struct {
	mu       sync.Mutex
	store    QuizStore
	sessions map[int64]*Session
}

// NewManager creates a session manager backed by the given quiz store
func NewManager(store QuizStore) *Manager {
	return &Manager{store: store, sessions: make(map[int64]*Session)}
}

// Start creates a session for the user on the given quiz, silently
// replacing any existing one, and returns the first question (or
// immediate completion for an empty quiz).
func (m *Manager) Start(ctx context.Context, userID, quizID int64) (*Progress, error) {
	quiz, err := m.store.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[userID] = &Session{UserID: userID, QuizID: quizID, lastSeen: time.Now()}
	m.mu.Unlock()

	return progressAt(quiz, 0), nil
}

// Submit records the user's answer to the current question and advances
// the cursor. A submission for any other question index, answered or
// not, is rejected with ErrStaleSubmission and mutates nothing.
func (m *Manager) Submit(ctx context.Context, userID int64, questionIndex, selectedIndex int) (*Progress, error) {
	s := m.lookup(userID)
	if s == nil {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quiz, err := m.store.Get(ctx, s.QuizID)
	if err != nil {
		return nil, err
	}

	if s.Cursor >= len(quiz.Questions) || questionIndex != s.Cursor {
		return nil, ErrStaleSubmission
	}

	s.Answers = append(s.Answers, Answer{QuestionIndex: questionIndex, SelectedIndex: selectedIndex})
	s.Cursor++
	s.lastSeen = time.Now()

	return progressAt(quiz, s.Cursor), nil
}

// Score grades the session against its quiz. A question counts as
// correct only when it was answered, its answer index is known, and the
// two match; unreached questions score as incorrect.
func (m *Manager) Score(ctx context.Context, userID int64) (*Score, error) {
	s := m.lookup(userID)
	if s == nil {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quiz, err := m.store.Get(ctx, s.QuizID)
	if err != nil {
		return nil, err
	}

	selected := make(map[int]int, len(s.Answers))
	for _, a := range s.Answers {
		selected[a.QuestionIndex] = a.SelectedIndex
	}

	score := &Score{
		QuizID:      s.QuizID,
		Total:       len(quiz.Questions),
		PerQuestion: make([]bool, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		sel, answered := selected[i]
		if answered && q.HasAnswer() && sel == *q.AnswerIndex {
			score.PerQuestion[i] = true
			score.Correct++
		}
	}
	return score, nil
}

// ExpireIdle drops sessions with no activity for longer than maxIdle
// and returns the number removed
func (m *Manager) ExpireIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for userID, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, userID)
			removed++
		}
	}
	return removed
}

func (m *Manager) lookup(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

func progressAt(quiz *models.Quiz, cursor int) *Progress {
	p := &Progress{QuizID: quiz.ID, Index: cursor, Total: len(quiz.Questions)}
	if cursor >= len(quiz.Questions) {
		p.Done = true
		return p
	}
	q := quiz.Questions[cursor]
	p.Question = &q
	return p
}
