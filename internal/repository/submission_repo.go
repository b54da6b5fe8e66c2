package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"examportal/internal/model"
	"examportal/internal/store"
)

const submissionKeyPrefix = "submission:"

// SubmissionRepo handles persistence for completed attempts.
type SubmissionRepo interface {
	List(ctx context.Context) ([]*model.Submission, error)
	ListByTest(ctx context.Context, testID string) ([]*model.Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]*model.Submission, error)
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	Create(ctx context.Context, sub *model.Submission) (string, error)
}

type submissionRepo struct {
	kv store.KV
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(kv store.KV) SubmissionRepo {
	return &submissionRepo{kv: kv}
}

func (r *submissionRepo) List(ctx context.Context) ([]*model.Submission, error) {
	blobs, err := r.kv.List(ctx, submissionKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	subs := make([]*model.Submission, 0, len(blobs))
	for _, blob := range blobs {
		var s model.Submission
		if err := json.Unmarshal(blob, &s); err != nil {
			return nil, fmt.Errorf("decode submission record: %w", err)
		}
		subs = append(subs, &s)
	}
	return subs, nil
}

// ListByTest filters in memory; the store contract has no query surface.
func (r *submissionRepo) ListByTest(ctx context.Context, testID string) ([]*model.Submission, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var subs []*model.Submission
	for _, s := range all {
		if s.TestID == testID {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

func (r *submissionRepo) ListByStudent(ctx context.Context, studentID string) ([]*model.Submission, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var subs []*model.Submission
	for _, s := range all {
		if s.StudentID == studentID {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	blob, err := r.kv.Get(ctx, submissionKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if blob == nil {
		return nil, nil
	}
	var s model.Submission
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("decode submission record: %w", err)
	}
	return &s, nil
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.Submission) (string, error) {
	sub.ID = uuid.New().String()
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}
	blob, err := json.Marshal(sub)
	if err != nil {
		return "", err
	}
	if err := r.kv.Put(ctx, submissionKeyPrefix+sub.ID, blob); err != nil {
		return "", fmt.Errorf("store submission: %w", err)
	}
	return sub.ID, nil
}
