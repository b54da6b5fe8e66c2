package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"examportal/internal/model"
	"examportal/internal/repository"
)

// TestService handles the authoring flow over the test repository.
type TestService struct {
	testRepo repository.TestRepo
}

// NewTestService creates a new test service
func NewTestService(testRepo repository.TestRepo) *TestService {
	return &TestService{testRepo: testRepo}
}

func (s *TestService) List(ctx context.Context) ([]*model.Test, error) {
	return s.testRepo.List(ctx)
}

// ListActive returns only the tests students may currently attempt.
func (s *TestService) ListActive(ctx context.Context) ([]*model.Test, error) {
	tests, err := s.testRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*model.Test, 0, len(tests))
	for _, t := range tests {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active, nil
}

func (s *TestService) GetByID(ctx context.Context, id string) (*model.Test, error) {
	return s.testRepo.GetByID(ctx, id)
}

// Create validates and persists a whole test. New tests start active.
func (s *TestService) Create(ctx context.Context, test *model.Test) (string, error) {
	test.IsActive = true
	id, err := s.testRepo.Create(ctx, test)
	if err != nil {
		return "", err
	}
	logrus.WithFields(logrus.Fields{
		"testId":    id,
		"questions": len(test.Questions),
	}).Info("test created")
	return id, nil
}

// SetActive toggles the only mutable flag a published test has.
func (s *TestService) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	ok, err := s.testRepo.SetActive(ctx, id, active)
	if err != nil {
		return false, err
	}
	if ok {
		logrus.WithFields(logrus.Fields{"testId": id, "active": active}).Info("test active flag changed")
	}
	return ok, nil
}
