package service

import (
	"testing"
	"time"

	"examportal/internal/model"
)

func TestAggregateRiskBoundaries(t *testing.T) {
	tests := []struct {
		total int
		want  model.RiskLevel
	}{
		{0, model.RiskLow},
		{5, model.RiskLow},
		{6, model.RiskMedium},
		{20, model.RiskMedium},
		{21, model.RiskHigh},
		{50, model.RiskHigh},
		{51, model.RiskCritical},
		{500, model.RiskCritical},
	}
	for _, tc := range tests {
		if got := AggregateRisk(tc.total); got != tc.want {
			t.Errorf("AggregateRisk(%d) = %s, want %s", tc.total, got, tc.want)
		}
	}
}

func TestStudentRiskLevelBoundaries(t *testing.T) {
	tests := []struct {
		count int
		want  model.RiskLevel
	}{
		{0, model.RiskLow},
		{2, model.RiskLow},
		{3, model.RiskMedium},
		{5, model.RiskMedium},
		{6, model.RiskHigh},
		{10, model.RiskHigh},
		{11, model.RiskCritical},
	}
	for _, tc := range tests {
		if got := StudentRiskLevel(tc.count); got != tc.want {
			t.Errorf("StudentRiskLevel(%d) = %s, want %s", tc.count, got, tc.want)
		}
	}
}

func violations(kinds ...model.ViolationKind) []model.ViolationEvent {
	events := make([]model.ViolationEvent, 0, len(kinds))
	for _, k := range kinds {
		events = append(events, model.ViolationEvent{Kind: k, At: time.Now()})
	}
	return events
}

func TestClassifyAggregate(t *testing.T) {
	svc := NewProctorService(nil)

	subs := []*model.Submission{
		{ID: "s1", Violations: violations(model.ViolationTabSwitch, model.ViolationTabSwitch, model.ViolationCopyPaste)},
		{ID: "s2", Violations: violations(model.ViolationFullscreenExit)},
		{ID: "s3"},
	}

	summary := svc.ClassifyAggregate(subs)
	if summary.TotalEvents != 4 {
		t.Errorf("TotalEvents = %d, want 4", summary.TotalEvents)
	}
	if summary.Risk != model.RiskLow {
		t.Errorf("Risk = %s, want %s", summary.Risk, model.RiskLow)
	}
	if summary.CountsByKind[model.ViolationTabSwitch] != 2 {
		t.Errorf("tab_switch count = %d, want 2", summary.CountsByKind[model.ViolationTabSwitch])
	}
	// Kinds with no events still appear with a zero count.
	if got, ok := summary.CountsByKind[model.ViolationRightClick]; !ok || got != 0 {
		t.Errorf("right_click count = %d (present=%v), want 0 present", got, ok)
	}
}

func TestClassifyAggregateEmptySet(t *testing.T) {
	svc := NewProctorService(nil)

	summary := svc.ClassifyAggregate(nil)
	if summary.TotalEvents != 0 {
		t.Errorf("TotalEvents = %d, want 0", summary.TotalEvents)
	}
	if summary.Risk != model.RiskLow {
		t.Errorf("Risk = %s, want %s", summary.Risk, model.RiskLow)
	}
	if len(summary.CountsByKind) != len(model.ViolationKinds) {
		t.Errorf("len(CountsByKind) = %d, want %d", len(summary.CountsByKind), len(model.ViolationKinds))
	}
}

func TestClassifyStudent(t *testing.T) {
	svc := NewProctorService(nil)

	sub := &model.Submission{
		ID:          "sub-1",
		TestID:      "test-1",
		StudentID:   "s-01",
		StudentName: "Alice",
		Violations:  violations(model.ViolationTabSwitch, model.ViolationCopyPaste, model.ViolationRightClick, model.ViolationTabSwitch),
	}

	risk := svc.ClassifyStudent(sub)
	if risk.EventCount != 4 {
		t.Errorf("EventCount = %d, want 4", risk.EventCount)
	}
	if risk.Risk != model.RiskMedium {
		t.Errorf("Risk = %s, want %s", risk.Risk, model.RiskMedium)
	}
	if risk.StudentID != "s-01" || risk.SubmissionID != "sub-1" {
		t.Errorf("identity fields not carried over: %+v", risk)
	}
}
