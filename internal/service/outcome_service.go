package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"examportal/internal/model"
	"examportal/internal/repository"
)

// Attainment tier boundaries, inclusive on the lower edge.
const (
	highlyAttainedMin    = 80.0
	attainedMin          = 60.0
	partiallyAttainedMin = 40.0
)

// OutcomeService rolls up per-question outcome tags across submissions into
// attainment percentages and qualitative tiers.
type OutcomeService struct {
	testRepo       repository.TestRepo
	submissionRepo repository.SubmissionRepo
	outcomeRepo    repository.OutcomeRepo
}

// NewOutcomeService creates a new outcome attainment service
func NewOutcomeService(testRepo repository.TestRepo, submissionRepo repository.SubmissionRepo, outcomeRepo repository.OutcomeRepo) *OutcomeService {
	return &OutcomeService{
		testRepo:       testRepo,
		submissionRepo: submissionRepo,
		outcomeRepo:    outcomeRepo,
	}
}

// Attainment aggregates one outcome axis over a scope: a single test when
// testID is set, or every test otherwise. Possible and awarded points are
// summed per (submission, tagged question) pair, so the percentage measures
// cohort attainment. Untagged questions are excluded entirely.
func (s *OutcomeService) Attainment(ctx context.Context, testID string, axis model.OutcomeAxis) ([]model.OutcomeAttainment, error) {
	tests, err := s.testsInScope(ctx, testID)
	if err != nil {
		return nil, err
	}

	mapping, err := s.outcomeRepo.GetMapping(ctx)
	if err != nil {
		return nil, fmt.Errorf("load outcome mapping: %w", err)
	}

	byTag := make(map[string]*model.OutcomeAttainment)
	for _, test := range tests {
		subs, err := s.submissionRepo.ListByTest(ctx, test.ID)
		if err != nil {
			return nil, fmt.Errorf("load submissions: %w", err)
		}
		for i := range test.Questions {
			q := &test.Questions[i]
			tag := outcomeTag(q, axis)
			if tag == "" {
				continue
			}
			agg, ok := byTag[tag]
			if !ok {
				agg = &model.OutcomeAttainment{
					Tag:         tag,
					Description: describeTag(mapping, axis, tag),
				}
				byTag[tag] = agg
			}
			agg.QuestionCount++
			for _, sub := range subs {
				agg.PossiblePoints += q.Points
				if result, ok := sub.Results[q.ID]; ok {
					agg.AwardedPoints += result.PointsAwarded
				}
			}
		}
	}

	attainments := make([]model.OutcomeAttainment, 0, len(byTag))
	for _, agg := range byTag {
		if agg.PossiblePoints > 0 {
			agg.Percentage = agg.AwardedPoints / agg.PossiblePoints * 100
		}
		agg.Level = AttainmentLevel(agg.Percentage)
		attainments = append(attainments, *agg)
	}
	sort.Slice(attainments, func(i, j int) bool {
		return tagNumber(attainments[i].Tag) < tagNumber(attainments[j].Tag)
	})
	return attainments, nil
}

func (s *OutcomeService) testsInScope(ctx context.Context, testID string) ([]*model.Test, error) {
	if testID == "" {
		tests, err := s.testRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load tests: %w", err)
		}
		return tests, nil
	}
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load test: %w", err)
	}
	if test == nil {
		return nil, nil
	}
	return []*model.Test{test}, nil
}

// AttainmentLevel buckets a percentage into its qualitative tier.
func AttainmentLevel(percentage float64) model.AttainmentLevel {
	switch {
	case percentage >= highlyAttainedMin:
		return model.HighlyAttained
	case percentage >= attainedMin:
		return model.Attained
	case percentage >= partiallyAttainedMin:
		return model.PartiallyAttained
	default:
		return model.NotAttained
	}
}

func outcomeTag(q *model.Question, axis model.OutcomeAxis) string {
	if axis == model.AxisProgram {
		return q.ProgramOutcome
	}
	return q.CourseOutcome
}

// describeTag resolves "CO3" or "PO2" to its description by position.
// Tags past the mapping's length resolve to an empty description.
func describeTag(mapping *model.OutcomeMapping, axis model.OutcomeAxis, tag string) string {
	descriptions := mapping.CourseOutcomes
	if axis == model.AxisProgram {
		descriptions = mapping.ProgramOutcomes
	}
	n := tagNumber(tag)
	if n < 1 || n > len(descriptions) {
		return ""
	}
	return descriptions[n-1]
}

func tagNumber(tag string) int {
	digits := strings.TrimLeft(tag, "COP")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
