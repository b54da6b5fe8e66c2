package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examportal/internal/model"
	"examportal/internal/store"
)

func TestGetMappingSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	repo := NewOutcomeRepo(kv)

	mapping, err := repo.GetMapping(ctx)
	require.NoError(t, err)
	assert.Len(t, mapping.CourseOutcomes, 5)
	assert.Len(t, mapping.ProgramOutcomes, 6)
	assert.Equal(t, 1, kv.Len(), "first read must persist the seed")
}

func TestSetMappingRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewOutcomeRepo(store.NewMemoryKV())

	custom := &model.OutcomeMapping{
		CourseOutcomes:  []string{"Custom CO1"},
		ProgramOutcomes: []string{"Custom PO1", "Custom PO2"},
	}
	require.NoError(t, repo.SetMapping(ctx, custom))

	got, err := repo.GetMapping(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom.CourseOutcomes, got.CourseOutcomes)
	assert.Equal(t, custom.ProgramOutcomes, got.ProgramOutcomes)
}
