package service

import (
	"fmt"
	"math"
	"strings"

	"examportal/internal/model"
)

// Scoring constants. Fixed policy values; candidates for configuration but
// deliberately not configurable yet.
const (
	// freeTextCorrectThreshold is the matched-keyword fraction at which a
	// free-text answer counts as correct. The boundary is inclusive.
	freeTextCorrectThreshold = 0.6
	// multiChoicePenaltyCap caps the wrong-selection penalty at half the
	// earned partial score, so one bad guess cannot zero a mostly-correct
	// answer.
	multiChoicePenaltyCap = 0.5
)

// EvalService scores candidate answers against a test definition.
// Evaluate is pure: no clock, no randomness, no side effects, so identical
// inputs always produce identical output.
type EvalService struct{}

// NewEvalService creates a new evaluation service
func NewEvalService() *EvalService {
	return &EvalService{}
}

// Evaluate produces one QuestionResult per question in the test, keyed by
// question id, plus the aggregate score. Missing answers evaluate the same
// as empty ones. The total is rounded once at the aggregate level.
func (s *EvalService) Evaluate(test *model.Test, answers map[string]model.AnswerValue) (float64, map[string]model.QuestionResult) {
	results := make(map[string]model.QuestionResult, len(test.Questions))
	var total float64
	for i := range test.Questions {
		q := &test.Questions[i]
		result := s.evaluateQuestion(q, answers[q.ID])
		results[q.ID] = result
		total += result.PointsAwarded
	}
	return math.Round(total), results
}

// evaluateQuestion runs the kind's scoring path unconditionally: a missing
// answer is the zero AnswerValue and scores the same as an explicitly empty
// one, feedback included.
func (s *EvalService) evaluateQuestion(q *model.Question, ans model.AnswerValue) model.QuestionResult {
	result := model.QuestionResult{QuestionID: q.ID}

	switch q.Kind {
	case model.KindSingleChoice:
		if ans.Option == q.CorrectOption {
			result.Correct = true
			result.PointsAwarded = q.Points
		}

	case model.KindMultiChoice:
		result = s.evaluateMultiChoice(q, ans.Options)

	case model.KindFreeText:
		result = s.evaluateFreeText(q, ans.Text)
	}

	result.QuestionID = q.ID
	return result
}

// evaluateMultiChoice rewards coverage of the correct set and penalizes
// wrong selections, capped so the penalty never exceeds half the partial
// score nor the per-option value of the wrong picks.
func (s *EvalService) evaluateMultiChoice(q *model.Question, selected []string) model.QuestionResult {
	correctSet := make(map[string]bool, len(q.CorrectOptions))
	for _, c := range q.CorrectOptions {
		correctSet[c] = true
	}

	seen := make(map[string]bool, len(selected))
	correctSelected, incorrectSelected := 0, 0
	for _, opt := range selected {
		if seen[opt] {
			continue
		}
		seen[opt] = true
		if correctSet[opt] {
			correctSelected++
		} else {
			incorrectSelected++
		}
	}

	k := float64(len(q.CorrectOptions))
	partial := float64(correctSelected) / k * q.Points
	penalty := math.Min(partial*multiChoicePenaltyCap, float64(incorrectSelected)*(q.Points/k))
	awarded := math.Max(0, partial-penalty)

	return model.QuestionResult{
		Correct:       correctSelected == len(q.CorrectOptions) && incorrectSelected == 0,
		PointsAwarded: awarded,
	}
}

// evaluateFreeText matches each canonical keyword case-insensitively as a
// substring of the submitted text. The award rounds per question; the
// feedback lists matched keywords and is informational only.
func (s *EvalService) evaluateFreeText(q *model.Question, text string) model.QuestionResult {
	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range q.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}

	fraction := float64(len(matched)) / float64(len(q.Keywords))
	feedback := "No keywords matched"
	if len(matched) > 0 {
		feedback = fmt.Sprintf("Matched keywords: %s", strings.Join(matched, ", "))
	}

	return model.QuestionResult{
		Correct:       fraction >= freeTextCorrectThreshold,
		PointsAwarded: math.Round(fraction * q.Points),
		Feedback:      feedback,
	}
}
