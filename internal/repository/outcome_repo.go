package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"examportal/internal/model"
	"examportal/internal/store"
)

const outcomeMappingKey = "outcomes:mapping"

// OutcomeRepo handles the global outcome description mapping.
type OutcomeRepo interface {
	GetMapping(ctx context.Context) (*model.OutcomeMapping, error)
	SetMapping(ctx context.Context, mapping *model.OutcomeMapping) error
}

type outcomeRepo struct {
	kv store.KV
}

// NewOutcomeRepo creates a new outcome mapping repository
func NewOutcomeRepo(kv store.KV) OutcomeRepo {
	return &outcomeRepo{kv: kv}
}

// GetMapping returns the stored mapping, seeding the defaults on first access.
func (r *outcomeRepo) GetMapping(ctx context.Context) (*model.OutcomeMapping, error) {
	blob, err := r.kv.Get(ctx, outcomeMappingKey)
	if err != nil {
		return nil, fmt.Errorf("get outcome mapping: %w", err)
	}
	if blob == nil {
		mapping := DefaultOutcomeMapping()
		if err := r.SetMapping(ctx, mapping); err != nil {
			return nil, err
		}
		return mapping, nil
	}
	var mapping model.OutcomeMapping
	if err := json.Unmarshal(blob, &mapping); err != nil {
		return nil, fmt.Errorf("decode outcome mapping: %w", err)
	}
	return &mapping, nil
}

func (r *outcomeRepo) SetMapping(ctx context.Context, mapping *model.OutcomeMapping) error {
	blob, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, outcomeMappingKey, blob); err != nil {
		return fmt.Errorf("store outcome mapping: %w", err)
	}
	return nil
}

// DefaultOutcomeMapping is the seed used until a teacher edits the mapping.
func DefaultOutcomeMapping() *model.OutcomeMapping {
	return &model.OutcomeMapping{
		CourseOutcomes: []string{
			"Understand fundamental concepts of the subject",
			"Apply core techniques to solve standard problems",
			"Analyze problems and select appropriate methods",
			"Evaluate solutions and justify design decisions",
			"Design and implement complete solutions",
		},
		ProgramOutcomes: []string{
			"Engineering knowledge",
			"Problem analysis",
			"Design and development of solutions",
			"Modern tool usage",
			"Communication",
			"Lifelong learning",
		},
	}
}
