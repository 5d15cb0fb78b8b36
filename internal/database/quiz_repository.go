package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/quizbot/pkg/models"
)

// ErrQuizNotFound is returned when no quiz exists for a requested id
var ErrQuizNotFound = errors.New("quiz not found")

// quizData is the JSON envelope stored in the data column
type quizData struct {
	Questions []models.Question `json:"questions"`
}

// QuizRepository handles database operations for quizzes
type QuizRepository struct{}

// NewQuizRepository creates a new repository instance
func NewQuizRepository() *QuizRepository {
	return &QuizRepository{}
}

// Create stores a new quiz and returns its assigned id
func (r *QuizRepository) Create(ctx context.Context, name string, questions []models.Question) (int64, error) {
	data, err := json.Marshal(quizData{Questions: questions})
	if err != nil {
		return 0, fmt.Errorf("failed to encode quiz: %w", err)
	}

	if DB.DriverName() == "postgres" {
		var id int64
		err = DB.QueryRowContext(ctx,
			"INSERT INTO quizzes (name, data) VALUES ($1, $2) RETURNING id",
			name, string(data)).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to create quiz: %w", err)
		}
		return id, nil
	}

	result, err := DB.ExecContext(ctx,
		"INSERT INTO quizzes (name, data) VALUES (?, ?)", name, string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to create quiz: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// Get returns the quiz with the given id, or ErrQuizNotFound
func (r *QuizRepository) Get(ctx context.Context, quizID int64) (*models.Quiz, error) {
	query := "SELECT name, data FROM quizzes WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
	}

	var name, data string
	err := DB.QueryRowContext(ctx, query, quizID).Scan(&name, &data)
	if err == sql.ErrNoRows {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	var qd quizData
	if err := json.Unmarshal([]byte(data), &qd); err != nil {
		return nil, fmt.Errorf("failed to decode quiz %d: %w", quizID, err)
	}

	return &models.Quiz{ID: quizID, Name: name, Questions: qd.Questions}, nil
}

// QuizSummary is a stored quiz without its question payload
type QuizSummary struct {
	ID            int64
	Name          string
	QuestionCount int
	CreatedAt     time.Time
}

// List returns summaries of all stored quizzes, newest first
func (r *QuizRepository) List(ctx context.Context) ([]QuizSummary, error) {
	rows, err := DB.QueryContext(ctx,
		"SELECT id, name, data, created_at FROM quizzes ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var summaries []QuizSummary
	for rows.Next() {
		var s QuizSummary
		var data string
		if err := rows.Scan(&s.ID, &s.Name, &data, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz row: %w", err)
		}
		var qd quizData
		if err := json.Unmarshal([]byte(data), &qd); err == nil {
			s.QuestionCount = len(qd.Questions)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
