package model

import "time"

// LeaderboardEntry is derived from a test's submissions on every read.
// Never persisted.
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	StudentID      string    `json:"studentId"`
	StudentName    string    `json:"studentName"`
	Score          float64   `json:"score"`
	TotalPoints    float64   `json:"totalPoints"`
	Percentage     float64   `json:"percentage"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	SubmittedAt    time.Time `json:"submittedAt"`
}
