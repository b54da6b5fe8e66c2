package main

import (
	"context"
	"time"

	"examportal/config"
	"examportal/internal/model"
	"examportal/internal/repository"
	"examportal/internal/store"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.WithError(err).Fatal("failed to ping Redis")
	}

	kv := store.NewRedisKV(rdb)
	testRepo := repository.NewTestRepo(kv)
	outcomeRepo := repository.NewOutcomeRepo(kv)

	// Seeds the default mapping on first access.
	if _, err := outcomeRepo.GetMapping(ctx); err != nil {
		log.WithError(err).Fatal("failed to seed outcome mapping")
	}

	test := &model.Test{
		Title:           "Data Structures Midterm",
		Description:     "Covers stacks, queues, trees and sorting.",
		Subject:         "Data Structures",
		Instructions:    "Stay in fullscreen. Leaving the exam tab is recorded.",
		DurationMinutes: 45,
		IsActive:        true,
		CreatedBy:       "t-01",
		Questions: []model.Question{
			{
				Kind:          model.KindSingleChoice,
				Prompt:        "Which data structure follows LIFO ordering?",
				Options:       []string{"Queue", "Stack", "Heap", "Graph"},
				CorrectOption: "Stack",
				Points:        5,
				Difficulty:    model.DifficultyEasy,
				CourseOutcome: "CO1",
			},
			{
				Kind:           model.KindMultiChoice,
				Prompt:         "Which of the following are linear data structures?",
				Options:        []string{"Array", "Stack", "Queue", "Tree", "Graph"},
				CorrectOptions: []string{"Array", "Stack", "Queue"},
				Points:         10,
				Difficulty:     model.DifficultyMedium,
				CourseOutcome:  "CO1",
				ProgramOutcome: "PO2",
			},
			{
				Kind:          model.KindSingleChoice,
				Prompt:        "What is the worst-case time complexity of quicksort?",
				Options:       []string{"O(n)", "O(n log n)", "O(n^2)", "O(log n)"},
				CorrectOption: "O(n^2)",
				Points:        5,
				Difficulty:    model.DifficultyMedium,
				CourseOutcome: "CO3",
				ProgramOutcome: "PO1",
			},
			{
				Kind:           model.KindFreeText,
				Prompt:         "Explain how a binary search tree keeps lookups fast.",
				Keywords:       []string{"sorted", "left", "right", "logarithmic", "balanced"},
				Points:         15,
				Difficulty:     model.DifficultyHard,
				CourseOutcome:  "CO2",
				ProgramOutcome: "PO2",
			},
		},
	}

	id, err := testRepo.Create(ctx, test)
	if err != nil {
		log.WithError(err).Fatal("failed to seed test")
	}

	log.WithFields(log.Fields{
		"testId":      id,
		"totalPoints": test.TotalPoints,
	}).Info("seeded test")
}
