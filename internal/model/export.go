package model

import "time"

// ExportKind names one downloadable report flavor.
type ExportKind string

const (
	ExportResults    ExportKind = "results"
	ExportProctor    ExportKind = "proctor"
	ExportAttainment ExportKind = "attainment"
)

// ExportDocument is the envelope for every downloadable report. Field names
// are stable within a build; consumers parse summary/details by export kind.
type ExportDocument struct {
	ID         string      `json:"id,omitempty" bson:"_id,omitempty"`
	Kind       ExportKind  `json:"kind" bson:"kind"`
	Scope      string      `json:"scope,omitempty" bson:"scope,omitempty"` // Optional filter label
	Summary    interface{} `json:"summary" bson:"summary"`
	Details    interface{} `json:"details" bson:"details"`
	ExportedAt time.Time   `json:"exportedAt" bson:"exportedAt"`
}

// ResultsSummary heads a results export.
type ResultsSummary struct {
	TestID       string  `json:"testId"`
	TestTitle    string  `json:"testTitle"`
	Submissions  int     `json:"submissions"`
	AverageScore float64 `json:"averageScore"`
	HighestScore float64 `json:"highestScore"`
	LowestScore  float64 `json:"lowestScore"`
}

// ProctorExportSummary heads a proctor export.
type ProctorExportSummary struct {
	Submissions int            `json:"submissions"`
	Summary     ProctorSummary `json:"summary"`
}

// AttainmentSummary heads an attainment export.
type AttainmentSummary struct {
	Axis     OutcomeAxis `json:"axis"`
	Outcomes int         `json:"outcomes"`
}
