package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"examportal/internal/model"
	"examportal/internal/repository"
)

var (
	ErrTestNotFound      = errors.New("test not found")
	ErrTestInactive      = errors.New("test is not active")
	ErrAttemptNotFound   = errors.New("attempt not found")
	ErrAttemptFinalized  = errors.New("attempt already finalized")
	ErrQuestionNotInTest = errors.New("question does not belong to this test")
	ErrAnswerKindMismatch = errors.New("answer shape does not match question kind")
)

// Alerter pushes live proctor alerts to monitoring teachers. Implemented by
// the WebSocket hub; declared here to avoid an import cycle.
type Alerter interface {
	AlertMonitors(testID string, msgType string, payload interface{})
}

// attempt owns one candidate's in-memory state for the duration of a test
// attempt: the answer map, the violation log, and the finalize latch. Nothing
// here is shared across attempts, and nothing is persisted until finalize.
type attempt struct {
	id          string
	test        *model.Test
	studentID   string
	studentName string
	startedAt   time.Time

	mu         sync.Mutex
	answers    map[string]model.AnswerValue
	violations []model.ViolationEvent
	finalized  bool
	timer      *time.Timer
}

// AttemptService runs the test-taking lifecycle: start, answer, violation
// capture, and the single finalize. The countdown timer and a manual submit
// are two producers of the same finalize event; a one-shot latch inside the
// attempt guarantees at most one Submission per attempt.
type AttemptService struct {
	testRepo       repository.TestRepo
	submissionRepo repository.SubmissionRepo
	evaluator      *EvalService

	mu       sync.RWMutex
	attempts map[string]*attempt

	alerter Alerter

	// countdown derives the attempt duration from the test. Overridden in
	// tests so expiry does not take real minutes.
	countdown func(test *model.Test) time.Duration
}

// NewAttemptService creates a new attempt service
func NewAttemptService(testRepo repository.TestRepo, submissionRepo repository.SubmissionRepo, evaluator *EvalService) *AttemptService {
	return &AttemptService{
		testRepo:       testRepo,
		submissionRepo: submissionRepo,
		evaluator:      evaluator,
		attempts:       make(map[string]*attempt),
		countdown: func(test *model.Test) time.Duration {
			return time.Duration(test.DurationMinutes) * time.Minute
		},
	}
}

// SetAlerter sets the hub used for live proctor alerts.
func (s *AttemptService) SetAlerter(a Alerter) {
	s.alerter = a
}

// AttemptView is the student-facing state of a started attempt. The test
// copy has canonical answers stripped.
type AttemptView struct {
	AttemptID string      `json:"attemptId"`
	Test      *model.Test `json:"test"`
	StartedAt time.Time   `json:"startedAt"`
	EndsAt    time.Time   `json:"endsAt"`
}

// Start begins an attempt against an active test and arms the countdown.
func (s *AttemptService) Start(ctx context.Context, testID, studentID, studentName string) (*AttemptView, error) {
	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrTestNotFound
	}
	if !test.IsActive {
		return nil, ErrTestInactive
	}

	a := &attempt{
		id:          uuid.New().String(),
		test:        test,
		studentID:   studentID,
		studentName: studentName,
		startedAt:   time.Now(),
		answers:     make(map[string]model.AnswerValue),
	}

	duration := s.countdown(test)
	a.timer = time.AfterFunc(duration, func() {
		s.autoSubmit(a.id)
	})

	s.mu.Lock()
	s.attempts[a.id] = a
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"attemptId": a.id,
		"testId":    testID,
		"studentId": studentID,
	}).Info("attempt started")

	return &AttemptView{
		AttemptID: a.id,
		Test:      sanitizeTest(test),
		StartedAt: a.startedAt,
		EndsAt:    a.startedAt.Add(duration),
	}, nil
}

// SaveAnswer records or overwrites the answer for one question.
func (s *AttemptService) SaveAnswer(attemptID, questionID string, ans model.AnswerValue) error {
	a, err := s.get(attemptID)
	if err != nil {
		return err
	}

	q := a.test.QuestionByID(questionID)
	if q == nil {
		return ErrQuestionNotInTest
	}
	if ans.Kind != q.Kind {
		return ErrAnswerKindMismatch
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return ErrAttemptFinalized
	}
	a.answers[questionID] = ans
	return nil
}

// RecordViolation appends one observed event to the attempt's log. Events
// are timestamped at observation and never deduplicated; monitors get a
// live alert when the capture pushes a student past a tier boundary.
func (s *AttemptService) RecordViolation(attemptID string, kind model.ViolationKind, detail string) error {
	a, err := s.get(attemptID)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.finalized {
		a.mu.Unlock()
		return ErrAttemptFinalized
	}
	event := model.ViolationEvent{Kind: kind, At: time.Now(), Detail: detail}
	a.violations = append(a.violations, event)
	count := len(a.violations)
	a.mu.Unlock()

	if s.alerter != nil {
		s.alerter.AlertMonitors(a.test.ID, "violation", map[string]interface{}{
			"attemptId":   attemptID,
			"studentId":   a.studentID,
			"studentName": a.studentName,
			"kind":        kind,
			"detail":      detail,
			"eventCount":  count,
			"risk":        StudentRiskLevel(count),
		})
	}
	return nil
}

// Submit finalizes the attempt on the candidate's request.
func (s *AttemptService) Submit(ctx context.Context, attemptID string) (*model.Submission, error) {
	a, err := s.get(attemptID)
	if err != nil {
		return nil, err
	}
	return s.finalize(ctx, a, false)
}

// Abandon discards an attempt with no persisted trace.
func (s *AttemptService) Abandon(attemptID string) error {
	a, err := s.get(attemptID)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.finalized = true
	a.timer.Stop()
	a.mu.Unlock()

	s.remove(attemptID)
	logrus.WithField("attemptId", attemptID).Info("attempt abandoned")
	return nil
}

func (s *AttemptService) autoSubmit(attemptID string) {
	a, err := s.get(attemptID)
	if err != nil {
		return // Already submitted or abandoned
	}
	if _, err := s.finalize(context.Background(), a, true); err != nil && !errors.Is(err, ErrAttemptFinalized) {
		logrus.WithError(err).WithField("attemptId", attemptID).Error("auto-submit failed")
	}
}

// finalize is the single point where an attempt becomes a Submission. The
// latch under the attempt mutex makes the first caller win; every later
// trigger gets ErrAttemptFinalized.
func (s *AttemptService) finalize(ctx context.Context, a *attempt, timedOut bool) (*model.Submission, error) {
	a.mu.Lock()
	if a.finalized {
		a.mu.Unlock()
		return nil, ErrAttemptFinalized
	}
	a.finalized = true
	a.timer.Stop()
	answers := a.answers
	violations := a.violations
	a.mu.Unlock()

	score, results := s.evaluator.Evaluate(a.test, answers)

	sub := &model.Submission{
		TestID:         a.test.ID,
		TestTitle:      a.test.Title,
		StudentID:      a.studentID,
		StudentName:    a.studentName,
		Answers:        answers,
		Results:        results,
		Score:          score,
		TotalPoints:    a.test.TotalPoints,
		ElapsedSeconds: int(time.Since(a.startedAt).Seconds()),
		Violations:     violations,
		SubmittedAt:    time.Now(),
	}

	if _, err := s.submissionRepo.Create(ctx, sub); err != nil {
		// Storage failure is fatal to the attempt; its in-memory state is
		// discarded rather than retried or kept around half-submitted.
		s.remove(a.id)
		return nil, err
	}

	s.remove(a.id)
	logrus.WithFields(logrus.Fields{
		"attemptId": a.id,
		"testId":    a.test.ID,
		"score":     score,
		"timedOut":  timedOut,
	}).Info("attempt submitted")
	return sub, nil
}

func (s *AttemptService) get(attemptID string) (*attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attempts[attemptID]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

func (s *AttemptService) remove(attemptID string) {
	s.mu.Lock()
	delete(s.attempts, attemptID)
	s.mu.Unlock()
}

// sanitizeTest strips canonical answers before the test leaves the server.
func sanitizeTest(test *model.Test) *model.Test {
	out := *test
	out.Questions = make([]model.Question, len(test.Questions))
	for i, q := range test.Questions {
		q.CorrectOption = ""
		q.CorrectOptions = nil
		q.Keywords = nil
		out.Questions[i] = q
	}
	return &out
}
