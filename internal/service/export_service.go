package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"examportal/internal/model"
	"examportal/internal/repository"
)

// ExportService builds the downloadable report documents and archives each
// one to the export archive.
type ExportService struct {
	testRepo       repository.TestRepo
	submissionRepo repository.SubmissionRepo
	archiveRepo    repository.ArchiveRepo
	leaderboard    *LeaderboardService
	proctor        *ProctorService
	outcomes       *OutcomeService
}

// NewExportService creates a new export service
func NewExportService(
	testRepo repository.TestRepo,
	submissionRepo repository.SubmissionRepo,
	archiveRepo repository.ArchiveRepo,
	leaderboard *LeaderboardService,
	proctor *ProctorService,
	outcomes *OutcomeService,
) *ExportService {
	return &ExportService{
		testRepo:       testRepo,
		submissionRepo: submissionRepo,
		archiveRepo:    archiveRepo,
		leaderboard:    leaderboard,
		proctor:        proctor,
		outcomes:       outcomes,
	}
}

// Results exports one test's ranked results.
func (s *ExportService) Results(ctx context.Context, testID string) (*model.ExportDocument, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrTestNotFound
	}

	subs, err := s.submissionRepo.ListByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}

	summary := model.ResultsSummary{
		TestID:      test.ID,
		TestTitle:   test.Title,
		Submissions: len(subs),
	}
	for i, sub := range subs {
		summary.AverageScore += sub.Score
		if i == 0 || sub.Score > summary.HighestScore {
			summary.HighestScore = sub.Score
		}
		if i == 0 || sub.Score < summary.LowestScore {
			summary.LowestScore = sub.Score
		}
	}
	if len(subs) > 0 {
		summary.AverageScore /= float64(len(subs))
	}

	doc := &model.ExportDocument{
		Kind:       model.ExportResults,
		Scope:      test.Title,
		Summary:    summary,
		Details:    s.leaderboard.Rank(subs),
		ExportedAt: time.Now(),
	}
	return s.archive(ctx, doc)
}

// Proctor exports the anti-cheat report for a test, or for all submissions
// when testID is empty.
func (s *ExportService) Proctor(ctx context.Context, testID string) (*model.ExportDocument, error) {
	summary, risks, err := s.proctor.Report(ctx, testID)
	if err != nil {
		return nil, err
	}

	scope := "all tests"
	if testID != "" {
		test, err := s.testRepo.GetByID(ctx, testID)
		if err != nil {
			return nil, err
		}
		if test == nil {
			return nil, ErrTestNotFound
		}
		scope = test.Title
	}

	doc := &model.ExportDocument{
		Kind:       model.ExportProctor,
		Scope:      scope,
		Summary:    model.ProctorExportSummary{Submissions: len(risks), Summary: summary},
		Details:    risks,
		ExportedAt: time.Now(),
	}
	return s.archive(ctx, doc)
}

// Attainment exports an outcome attainment rollup.
func (s *ExportService) Attainment(ctx context.Context, testID string, axis model.OutcomeAxis) (*model.ExportDocument, error) {
	attainments, err := s.outcomes.Attainment(ctx, testID, axis)
	if err != nil {
		return nil, err
	}

	scope := "all tests"
	if testID != "" {
		test, err := s.testRepo.GetByID(ctx, testID)
		if err != nil {
			return nil, err
		}
		if test == nil {
			return nil, ErrTestNotFound
		}
		scope = test.Title
	}

	doc := &model.ExportDocument{
		Kind:       model.ExportAttainment,
		Scope:      scope,
		Summary:    model.AttainmentSummary{Axis: axis, Outcomes: len(attainments)},
		Details:    attainments,
		ExportedAt: time.Now(),
	}
	return s.archive(ctx, doc)
}

func (s *ExportService) archive(ctx context.Context, doc *model.ExportDocument) (*model.ExportDocument, error) {
	if _, err := s.archiveRepo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("archive export: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"kind":  doc.Kind,
		"scope": doc.Scope,
	}).Info("report exported")
	return doc, nil
}
