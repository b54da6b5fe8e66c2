package service

import (
	"context"
	"fmt"

	"examportal/internal/model"
	"examportal/internal/repository"
)

// Risk tier boundaries. The aggregate and per-student scales are
// intentionally distinct and must not be unified: the first grades a whole
// submission set, the second a single candidate's attempt.
const (
	aggregateLowMax    = 5
	aggregateMediumMax = 20
	aggregateHighMax   = 50

	studentLowMax    = 2
	studentMediumMax = 5
	studentHighMax   = 10
)

// ProctorService classifies historical anti-cheat events into risk tiers.
// Event capture itself is attempt-scoped and lives in AttemptService.
type ProctorService struct {
	submissionRepo repository.SubmissionRepo
}

// NewProctorService creates a new proctor service
func NewProctorService(submissionRepo repository.SubmissionRepo) *ProctorService {
	return &ProctorService{submissionRepo: submissionRepo}
}

// ClassifyAggregate summarizes violation counts across a submission set.
// An empty set yields a zero-valued Low summary, never an error.
func (s *ProctorService) ClassifyAggregate(subs []*model.Submission) model.ProctorSummary {
	summary := model.ProctorSummary{
		CountsByKind: make(map[model.ViolationKind]int, len(model.ViolationKinds)),
	}
	for _, kind := range model.ViolationKinds {
		summary.CountsByKind[kind] = 0
	}
	for _, sub := range subs {
		for _, ev := range sub.Violations {
			summary.CountsByKind[ev.Kind]++
			summary.TotalEvents++
		}
	}
	summary.Risk = AggregateRisk(summary.TotalEvents)
	return summary
}

// ClassifyStudent grades a single submission's event count on the
// per-candidate scale.
func (s *ProctorService) ClassifyStudent(sub *model.Submission) model.StudentRisk {
	count := len(sub.Violations)
	return model.StudentRisk{
		SubmissionID: sub.ID,
		StudentID:    sub.StudentID,
		StudentName:  sub.StudentName,
		TestID:       sub.TestID,
		EventCount:   count,
		Risk:         StudentRiskLevel(count),
	}
}

// Report builds the aggregate summary and per-student tiers for a test, or
// for every submission when testID is empty.
func (s *ProctorService) Report(ctx context.Context, testID string) (model.ProctorSummary, []model.StudentRisk, error) {
	var (
		subs []*model.Submission
		err  error
	)
	if testID == "" {
		subs, err = s.submissionRepo.List(ctx)
	} else {
		subs, err = s.submissionRepo.ListByTest(ctx, testID)
	}
	if err != nil {
		return model.ProctorSummary{}, nil, fmt.Errorf("load submissions: %w", err)
	}

	risks := make([]model.StudentRisk, 0, len(subs))
	for _, sub := range subs {
		risks = append(risks, s.ClassifyStudent(sub))
	}
	return s.ClassifyAggregate(subs), risks, nil
}

// AggregateRisk is the step function for a submission set's total events.
func AggregateRisk(totalEvents int) model.RiskLevel {
	switch {
	case totalEvents <= aggregateLowMax:
		return model.RiskLow
	case totalEvents <= aggregateMediumMax:
		return model.RiskMedium
	case totalEvents <= aggregateHighMax:
		return model.RiskHigh
	default:
		return model.RiskCritical
	}
}

// StudentRiskLevel is the step function for one submission's event count.
func StudentRiskLevel(eventCount int) model.RiskLevel {
	switch {
	case eventCount <= studentLowMax:
		return model.RiskLow
	case eventCount <= studentMediumMax:
		return model.RiskMedium
	case eventCount <= studentHighMax:
		return model.RiskHigh
	default:
		return model.RiskCritical
	}
}
