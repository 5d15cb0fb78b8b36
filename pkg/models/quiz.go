package models

// Quiz is a named, ordered collection of questions identified by a store id
type Quiz struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Questions []Question `json:"questions"`
}
