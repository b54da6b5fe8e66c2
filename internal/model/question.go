package model

import "errors"

// QuestionKind defines the type of question
type QuestionKind string

const (
	KindSingleChoice QuestionKind = "single-choice" // One correct option, all-or-nothing
	KindMultiChoice  QuestionKind = "multi-choice"  // Correct option set, partial credit
	KindFreeText     QuestionKind = "free-text"     // Keyword-matched text answer
)

// Difficulty is an authoring-time hint, never used by evaluation
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var (
	ErrUnknownQuestionKind = errors.New("unknown question kind")
	ErrNoOptions           = errors.New("choice question needs at least two options")
	ErrNoCorrectOption     = errors.New("no correct option marked")
	ErrCorrectNotInOptions = errors.New("correct answer is not one of the options")
	ErrNoKeywords          = errors.New("free-text question needs at least one keyword")
	ErrNonPositivePoints   = errors.New("question points must be positive")
)

// Question is one assessable item in a test. Immutable once the test is created.
type Question struct {
	ID             string       `json:"id"`
	Kind           QuestionKind `json:"kind"`
	Prompt         string       `json:"prompt"`
	Options        []string     `json:"options,omitempty"`        // Choice kinds only, ordered
	CorrectOption  string       `json:"correctOption,omitempty"`  // single-choice
	CorrectOptions []string     `json:"correctOptions,omitempty"` // multi-choice
	Keywords       []string     `json:"keywords,omitempty"`       // free-text
	Points         float64      `json:"points"`
	Difficulty     Difficulty   `json:"difficulty,omitempty"`
	CourseOutcome  string       `json:"courseOutcome,omitempty"`  // e.g. "CO1"
	ProgramOutcome string       `json:"programOutcome,omitempty"` // e.g. "PO2"
}

// Validate checks authoring input before any write happens.
func (q *Question) Validate() error {
	if q.Points <= 0 {
		return ErrNonPositivePoints
	}
	switch q.Kind {
	case KindSingleChoice:
		if len(q.Options) < 2 {
			return ErrNoOptions
		}
		if q.CorrectOption == "" {
			return ErrNoCorrectOption
		}
		if !containsString(q.Options, q.CorrectOption) {
			return ErrCorrectNotInOptions
		}
	case KindMultiChoice:
		if len(q.Options) < 2 {
			return ErrNoOptions
		}
		if len(q.CorrectOptions) == 0 {
			return ErrNoCorrectOption
		}
		for _, c := range q.CorrectOptions {
			if !containsString(q.Options, c) {
				return ErrCorrectNotInOptions
			}
		}
	case KindFreeText:
		if len(q.Keywords) == 0 {
			return ErrNoKeywords
		}
	default:
		return ErrUnknownQuestionKind
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
