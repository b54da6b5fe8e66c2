package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examportal/internal/model"
	"examportal/internal/store"
)

func TestSubmissionCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepo(store.NewMemoryKV())

	sub := &model.Submission{
		TestID:    "test-1",
		StudentID: "s-01",
		Score:     14,
	}
	id, err := repo.Create(ctx, sub)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.False(t, sub.SubmittedAt.IsZero())

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, float64(14), got.Score)

	absent, err := repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestSubmissionFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepo(store.NewMemoryKV())

	fixtures := []*model.Submission{
		{TestID: "test-1", StudentID: "s-01"},
		{TestID: "test-1", StudentID: "s-02"},
		{TestID: "test-2", StudentID: "s-01"},
	}
	for _, sub := range fixtures {
		_, err := repo.Create(ctx, sub)
		require.NoError(t, err)
	}

	byTest, err := repo.ListByTest(ctx, "test-1")
	require.NoError(t, err)
	assert.Len(t, byTest, 2)

	byStudent, err := repo.ListByStudent(ctx, "s-01")
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := repo.ListByTest(ctx, "test-9")
	require.NoError(t, err)
	assert.Empty(t, none)
}
