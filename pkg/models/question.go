package models

// Question represents a single multiple-choice question extracted from a document.
// AnswerIndex is nil when the correct option is unknown; the JSON field is
// omitted in that case, matching the stored quiz format.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex *int     `json:"answer_index,omitempty"`
}

// HasAnswer reports whether a valid correct-option index is known
func (q Question) HasAnswer() bool {
	return q.AnswerIndex != nil && *q.AnswerIndex >= 0 && *q.AnswerIndex < len(q.Options)
}

// SetAnswer records idx as the correct option
func (q *Question) SetAnswer(idx int) {
	q.AnswerIndex = &idx
}
