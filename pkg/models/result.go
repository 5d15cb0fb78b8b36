package models

import "time"

// QuizResult records the final score of one completed quiz session
type QuizResult struct {
	ID      int64     `json:"id" db:"id"`
	UserID  int64     `json:"user_id" db:"user_id"`
	QuizID  int64     `json:"quiz_id" db:"quiz_id"`
	Correct int       `json:"correct" db:"correct"`
	Total   int       `json:"total" db:"total"`
	TakenAt time.Time `json:"taken_at" db:"taken_at"`
}
