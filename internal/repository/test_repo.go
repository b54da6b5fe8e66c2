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

const testKeyPrefix = "test:"

// TestRepo handles persistence for authored tests.
type TestRepo interface {
	List(ctx context.Context) ([]*model.Test, error)
	GetByID(ctx context.Context, id string) (*model.Test, error)
	Create(ctx context.Context, test *model.Test) (string, error)
	SetActive(ctx context.Context, id string, active bool) (bool, error)
}

type testRepo struct {
	kv store.KV
}

// NewTestRepo creates a new test repository
func NewTestRepo(kv store.KV) TestRepo {
	return &testRepo{kv: kv}
}

func (r *testRepo) List(ctx context.Context) ([]*model.Test, error) {
	blobs, err := r.kv.List(ctx, testKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	tests := make([]*model.Test, 0, len(blobs))
	for _, blob := range blobs {
		var t model.Test
		if err := json.Unmarshal(blob, &t); err != nil {
			return nil, fmt.Errorf("decode test record: %w", err)
		}
		tests = append(tests, &t)
	}
	return tests, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (*model.Test, error) {
	blob, err := r.kv.Get(ctx, testKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("get test: %w", err)
	}
	if blob == nil {
		return nil, nil
	}
	var t model.Test
	if err := json.Unmarshal(blob, &t); err != nil {
		return nil, fmt.Errorf("decode test record: %w", err)
	}
	return &t, nil
}

// Create validates every question, then assigns ids and the creation
// timestamp and persists the test. Validation failures leave the store
// untouched.
func (r *testRepo) Create(ctx context.Context, test *model.Test) (string, error) {
	for i := range test.Questions {
		if err := test.Questions[i].Validate(); err != nil {
			return "", fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	test.ID = uuid.New().String()
	test.CreatedAt = time.Now()
	test.TotalPoints = test.SumPoints()
	for i := range test.Questions {
		if test.Questions[i].ID == "" {
			test.Questions[i].ID = uuid.New().String()
		}
	}

	blob, err := json.Marshal(test)
	if err != nil {
		return "", err
	}
	if err := r.kv.Put(ctx, testKeyPrefix+test.ID, blob); err != nil {
		return "", fmt.Errorf("store test: %w", err)
	}
	return test.ID, nil
}

// SetActive flips the active flag. Returns false when the test is absent.
func (r *testRepo) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	test, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if test == nil {
		return false, nil
	}
	test.IsActive = active
	blob, err := json.Marshal(test)
	if err != nil {
		return false, err
	}
	if err := r.kv.Put(ctx, testKeyPrefix+id, blob); err != nil {
		return false, fmt.Errorf("store test: %w", err)
	}
	return true, nil
}
