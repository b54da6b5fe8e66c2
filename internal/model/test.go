package model

import "time"

// Test is an ordered question set created whole by the authoring flow.
// Only IsActive changes after creation.
type Test struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Subject         string     `json:"subject"`
	Instructions    string     `json:"instructions,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Questions       []Question `json:"questions"`
	TotalPoints     float64    `json:"totalPoints"`
	IsActive        bool       `json:"isActive"`
	CreatedBy       string     `json:"createdBy"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// QuestionByID returns the question with the given id, or nil.
func (t *Test) QuestionByID(id string) *Question {
	for i := range t.Questions {
		if t.Questions[i].ID == id {
			return &t.Questions[i]
		}
	}
	return nil
}

// SumPoints returns the aggregate point total of all questions.
func (t *Test) SumPoints() float64 {
	var total float64
	for i := range t.Questions {
		total += t.Questions[i].Points
	}
	return total
}
