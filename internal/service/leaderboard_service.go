package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"examportal/internal/model"
	"examportal/internal/repository"
)

// LeaderboardService derives an ordered ranking from a test's submissions.
// Rankings are recomputed in full on every read and never stored.
type LeaderboardService struct {
	submissionRepo repository.SubmissionRepo
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(submissionRepo repository.SubmissionRepo) *LeaderboardService {
	return &LeaderboardService{submissionRepo: submissionRepo}
}

// ForTest loads a test's submissions and ranks them.
func (s *LeaderboardService) ForTest(ctx context.Context, testID string) ([]model.LeaderboardEntry, error) {
	subs, err := s.submissionRepo.ListByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	return s.Rank(subs), nil
}

// Rank sorts by score descending, then elapsed time ascending. Rank is the
// 1-based position after the stable sort; fully identical pairs keep their
// input order and take sequential ranks.
func (s *LeaderboardService) Rank(subs []*model.Submission) []model.LeaderboardEntry {
	ordered := make([]*model.Submission, len(subs))
	copy(ordered, subs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].ElapsedSeconds < ordered[j].ElapsedSeconds
	})

	entries := make([]model.LeaderboardEntry, len(ordered))
	for i, sub := range ordered {
		percentage := 0.0
		if sub.TotalPoints > 0 {
			percentage = math.Round(sub.Score / sub.TotalPoints * 100)
		}
		entries[i] = model.LeaderboardEntry{
			Rank:           i + 1,
			StudentID:      sub.StudentID,
			StudentName:    sub.StudentName,
			Score:          sub.Score,
			TotalPoints:    sub.TotalPoints,
			Percentage:     percentage,
			ElapsedSeconds: sub.ElapsedSeconds,
			SubmittedAt:    sub.SubmittedAt,
		}
	}
	return entries
}
