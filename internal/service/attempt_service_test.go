package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examportal/internal/model"
	"examportal/internal/repository"
	"examportal/internal/store"
)

type fakeAlerter struct {
	mu     sync.Mutex
	alerts []string
}

func (f *fakeAlerter) AlertMonitors(testID string, msgType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, msgType)
}

func (f *fakeAlerter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts)
}

func attemptFixture(t *testing.T) (*AttemptService, repository.SubmissionRepo, string, *model.Test) {
	t.Helper()
	kv := store.NewMemoryKV()
	testRepo := repository.NewTestRepo(kv)
	submissionRepo := repository.NewSubmissionRepo(kv)
	svc := NewAttemptService(testRepo, submissionRepo, NewEvalService())

	test := &model.Test{
		Title:           "Midterm",
		DurationMinutes: 45,
		IsActive:        true,
		Questions: []model.Question{
			{
				Kind:          model.KindSingleChoice,
				Prompt:        "LIFO structure?",
				Options:       []string{"Queue", "Stack"},
				CorrectOption: "Stack",
				Points:        5,
			},
			{
				Kind:     model.KindFreeText,
				Prompt:   "Explain BST lookups.",
				Keywords: []string{"sorted", "left", "right", "logarithmic", "balanced"},
				Points:   15,
			},
		},
	}
	testID, err := testRepo.Create(context.Background(), test)
	require.NoError(t, err)
	return svc, submissionRepo, testID, test
}

func TestStartUnknownOrInactiveTest(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	testRepo := repository.NewTestRepo(kv)
	svc := NewAttemptService(testRepo, repository.NewSubmissionRepo(kv), NewEvalService())

	_, err := svc.Start(ctx, "missing", "s-01", "Alice")
	assert.ErrorIs(t, err, ErrTestNotFound)

	inactive := &model.Test{
		Title: "Draft",
		Questions: []model.Question{
			{Kind: model.KindSingleChoice, Prompt: "p", Options: []string{"a", "b"}, CorrectOption: "a", Points: 1},
		},
	}
	testID, err := testRepo.Create(ctx, inactive)
	require.NoError(t, err)

	_, err = svc.Start(ctx, testID, "s-01", "Alice")
	assert.ErrorIs(t, err, ErrTestInactive)
}

func TestStartStripsCanonicalAnswers(t *testing.T) {
	svc, _, testID, _ := attemptFixture(t)

	view, err := svc.Start(context.Background(), testID, "s-01", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, view.AttemptID)
	require.Len(t, view.Test.Questions, 2)

	for _, q := range view.Test.Questions {
		assert.Empty(t, q.CorrectOption)
		assert.Empty(t, q.CorrectOptions)
		assert.Empty(t, q.Keywords)
	}
	assert.True(t, view.EndsAt.After(view.StartedAt))
}

func TestSaveAnswerValidation(t *testing.T) {
	svc, _, testID, test := attemptFixture(t)
	view, err := svc.Start(context.Background(), testID, "s-01", "Alice")
	require.NoError(t, err)

	err = svc.SaveAnswer(view.AttemptID, "not-a-question", model.SingleChoiceAnswer("Stack"))
	assert.ErrorIs(t, err, ErrQuestionNotInTest)

	err = svc.SaveAnswer(view.AttemptID, test.Questions[0].ID, model.FreeTextAnswer("Stack"))
	assert.ErrorIs(t, err, ErrAnswerKindMismatch)

	err = svc.SaveAnswer(view.AttemptID, test.Questions[0].ID, model.SingleChoiceAnswer("Stack"))
	assert.NoError(t, err)
}

func TestSubmitPersistsEvaluatedSubmission(t *testing.T) {
	ctx := context.Background()
	svc, submissionRepo, testID, test := attemptFixture(t)
	alerter := &fakeAlerter{}
	svc.SetAlerter(alerter)

	view, err := svc.Start(ctx, testID, "s-01", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.SaveAnswer(view.AttemptID, test.Questions[0].ID, model.SingleChoiceAnswer("Stack")))
	require.NoError(t, svc.SaveAnswer(view.AttemptID, test.Questions[1].ID, model.FreeTextAnswer("sorted keys, left and right subtrees")))
	require.NoError(t, svc.RecordViolation(view.AttemptID, model.ViolationTabSwitch, "blur"))
	require.NoError(t, svc.RecordViolation(view.AttemptID, model.ViolationCopyPaste, ""))

	sub, err := svc.Submit(ctx, view.AttemptID)
	require.NoError(t, err)

	// 5 for the single choice, round(3/5 * 15) = 9 for the free text.
	assert.Equal(t, float64(14), sub.Score)
	assert.Equal(t, float64(20), sub.TotalPoints)
	assert.Equal(t, "Alice", sub.StudentName)
	assert.Len(t, sub.Violations, 2)
	assert.Equal(t, 2, alerter.count())

	stored, err := submissionRepo.ListByTest(ctx, testID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, sub.ID, stored[0].ID)
	assert.True(t, stored[0].Results[test.Questions[0].ID].Correct)
}

func TestSubmitIsOneShot(t *testing.T) {
	ctx := context.Background()
	svc, _, testID, _ := attemptFixture(t)

	view, err := svc.Start(ctx, testID, "s-01", "Alice")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, view.AttemptID)
	require.NoError(t, err)

	// The attempt is gone once finalized; every later touch fails.
	_, err = svc.Submit(ctx, view.AttemptID)
	assert.ErrorIs(t, err, ErrAttemptNotFound)
	err = svc.RecordViolation(view.AttemptID, model.ViolationTabSwitch, "")
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestAbandonLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	svc, submissionRepo, testID, test := attemptFixture(t)

	view, err := svc.Start(ctx, testID, "s-01", "Alice")
	require.NoError(t, err)
	require.NoError(t, svc.SaveAnswer(view.AttemptID, test.Questions[0].ID, model.SingleChoiceAnswer("Stack")))

	require.NoError(t, svc.Abandon(view.AttemptID))

	_, err = svc.Submit(ctx, view.AttemptID)
	assert.ErrorIs(t, err, ErrAttemptNotFound)

	stored, err := submissionRepo.ListByTest(ctx, testID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCountdownExpiryAutoSubmits(t *testing.T) {
	ctx := context.Background()
	svc, submissionRepo, testID, test := attemptFixture(t)
	svc.countdown = func(*model.Test) time.Duration { return 30 * time.Millisecond }

	view, err := svc.Start(ctx, testID, "s-01", "Alice")
	require.NoError(t, err)
	require.NoError(t, svc.SaveAnswer(view.AttemptID, test.Questions[0].ID, model.SingleChoiceAnswer("Stack")))

	require.Eventually(t, func() bool {
		subs, err := submissionRepo.ListByTest(ctx, testID)
		return err == nil && len(subs) == 1
	}, 2*time.Second, 10*time.Millisecond)

	subs, err := submissionRepo.ListByTest(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, float64(5), subs[0].Score)

	// The timer already finalized this attempt; a late manual submit
	// cannot produce a second submission.
	_, err = svc.Submit(ctx, view.AttemptID)
	assert.ErrorIs(t, err, ErrAttemptNotFound)
}

func TestConcurrentSubmitProducesOneSubmission(t *testing.T) {
	ctx := context.Background()
	svc, submissionRepo, testID, _ := attemptFixture(t)

	view, err := svc.Start(ctx, testID, "s-01", "Alice")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(ctx, view.AttemptID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	stored, err := submissionRepo.ListByTest(ctx, testID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
