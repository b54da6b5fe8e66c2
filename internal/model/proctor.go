package model

import "time"

// ViolationKind identifies one category of observed anti-cheat event.
type ViolationKind string

const (
	ViolationTabSwitch      ViolationKind = "tab_switch"
	ViolationCopyPaste      ViolationKind = "copy_paste"
	ViolationRightClick     ViolationKind = "right_click"
	ViolationFullscreenExit ViolationKind = "fullscreen_exit"
)

// ViolationKinds lists every kind in report order.
var ViolationKinds = []ViolationKind{
	ViolationTabSwitch,
	ViolationCopyPaste,
	ViolationRightClick,
	ViolationFullscreenExit,
}

// ViolationEvent is one observed violation. Events are never deduplicated
// or rate-limited; a burst of identical events stays a burst.
type ViolationEvent struct {
	Kind   ViolationKind `json:"kind"`
	At     time.Time     `json:"at"`
	Detail string        `json:"detail,omitempty"`
}

// RiskLevel is a coarse tier derived from event counts.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// ProctorSummary aggregates violation counts over a submission set.
type ProctorSummary struct {
	TotalEvents  int                   `json:"totalEvents"`
	CountsByKind map[ViolationKind]int `json:"countsByKind"`
	Risk         RiskLevel             `json:"risk"`
}

// StudentRisk is the per-candidate view over a single submission.
type StudentRisk struct {
	SubmissionID string    `json:"submissionId"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	TestID       string    `json:"testId"`
	EventCount   int       `json:"eventCount"`
	Risk         RiskLevel `json:"risk"`
}
