package service

import (
	"testing"

	"examportal/internal/model"
)

func submission(student string, score, totalPoints float64, elapsed int) *model.Submission {
	return &model.Submission{
		StudentID:      student,
		StudentName:    student,
		Score:          score,
		TotalPoints:    totalPoints,
		ElapsedSeconds: elapsed,
	}
}

func TestRankOrdering(t *testing.T) {
	svc := NewLeaderboardService(nil)

	subs := []*model.Submission{
		{StudentID: "A", Score: 30, TotalPoints: 40, ElapsedSeconds: 600},
		{StudentID: "B", Score: 30, TotalPoints: 40, ElapsedSeconds: 500},
		{StudentID: "C", Score: 25, TotalPoints: 40, ElapsedSeconds: 100},
	}

	entries := svc.Rank(subs)
	wantOrder := []string{"B", "A", "C"}
	for i, want := range wantOrder {
		if entries[i].StudentID != want {
			t.Errorf("entries[%d] = %s, want %s", i, entries[i].StudentID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entries[%d].Rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestRankStableForIdenticalPairs(t *testing.T) {
	svc := NewLeaderboardService(nil)

	subs := []*model.Submission{
		submission("first", 20, 40, 300),
		submission("second", 20, 40, 300),
	}

	entries := svc.Rank(subs)
	if entries[0].StudentID != "first" || entries[1].StudentID != "second" {
		t.Errorf("identical pair reordered: %s, %s", entries[0].StudentID, entries[1].StudentID)
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", entries[0].Rank, entries[1].Rank)
	}
}

func TestRankPercentage(t *testing.T) {
	svc := NewLeaderboardService(nil)

	entries := svc.Rank([]*model.Submission{
		submission("a", 13, 30, 100),
		submission("b", 0, 0, 100),
	})
	if entries[0].Percentage != 43 {
		t.Errorf("Percentage = %v, want 43", entries[0].Percentage)
	}
	// Zero total points must not divide by zero.
	if entries[1].Percentage != 0 {
		t.Errorf("Percentage = %v, want 0", entries[1].Percentage)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	svc := NewLeaderboardService(nil)

	subs := []*model.Submission{
		submission("low", 10, 40, 100),
		submission("high", 40, 40, 100),
	}
	svc.Rank(subs)
	if subs[0].StudentID != "low" || subs[1].StudentID != "high" {
		t.Errorf("input slice reordered: %s, %s", subs[0].StudentID, subs[1].StudentID)
	}
}

func TestRankEmpty(t *testing.T) {
	svc := NewLeaderboardService(nil)
	if entries := svc.Rank(nil); len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}
