package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/quizbot/pkg/models"
)

// ResultRepository handles database operations for quiz results
type ResultRepository struct{}

// NewResultRepository creates a new repository instance
func NewResultRepository() *ResultRepository {
	return &ResultRepository{}
}

// Create records the final score of a completed session
func (r *ResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	query := "INSERT INTO results (user_id, quiz_id, correct, total) VALUES (?, ?, ?, ?)"
	if DB.DriverName() == "postgres" {
		for i := 1; strings.Contains(query, "?"); i++ {
			query = strings.Replace(query, "?", fmt.Sprintf("$%d", i), 1)
		}
	}

	_, err := DB.ExecContext(ctx, query,
		result.UserID, result.QuizID, result.Correct, result.Total)
	if err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

// GetAll returns all recorded results, newest first
func (r *ResultRepository) GetAll(ctx context.Context) ([]models.QuizResult, error) {
	var results []models.QuizResult
	err := DB.SelectContext(ctx, &results,
		"SELECT id, user_id, quiz_id, correct, total, taken_at FROM results ORDER BY taken_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	return results, nil
}
