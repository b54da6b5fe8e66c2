package model

import "time"

// Submission is one candidate's completed attempt. Created once, atomically,
// and never mutated afterwards.
type Submission struct {
	ID             string                    `json:"id"`
	TestID         string                    `json:"testId"`
	TestTitle      string                    `json:"testTitle"` // Denormalized for display stability
	StudentID      string                    `json:"studentId"`
	StudentName    string                    `json:"studentName"`
	Answers        map[string]AnswerValue    `json:"answers"`
	Results        map[string]QuestionResult `json:"results"` // One entry per question in the test
	Score          float64                   `json:"score"`
	TotalPoints    float64                   `json:"totalPoints"` // Copied from the test at submit time
	ElapsedSeconds int                       `json:"elapsedSeconds"`
	Violations     []ViolationEvent          `json:"violations,omitempty"`
	SubmittedAt    time.Time                 `json:"submittedAt"`
}
