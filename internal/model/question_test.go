package model

import (
	"errors"
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  error
	}{
		{
			name: "valid single choice",
			question: Question{
				Kind: KindSingleChoice, Prompt: "p", Points: 5,
				Options: []string{"a", "b"}, CorrectOption: "a",
			},
		},
		{
			name: "valid multi choice",
			question: Question{
				Kind: KindMultiChoice, Prompt: "p", Points: 5,
				Options: []string{"a", "b", "c"}, CorrectOptions: []string{"a", "c"},
			},
		},
		{
			name: "valid free text",
			question: Question{
				Kind: KindFreeText, Prompt: "p", Points: 5,
				Keywords: []string{"kw"},
			},
		},
		{
			name:     "unknown kind",
			question: Question{Kind: "essay", Points: 5},
			wantErr:  ErrUnknownQuestionKind,
		},
		{
			name:     "zero points",
			question: Question{Kind: KindFreeText, Keywords: []string{"kw"}},
			wantErr:  ErrNonPositivePoints,
		},
		{
			name: "single option only",
			question: Question{
				Kind: KindSingleChoice, Points: 5,
				Options: []string{"a"}, CorrectOption: "a",
			},
			wantErr: ErrNoOptions,
		},
		{
			name: "correct option missing",
			question: Question{
				Kind: KindSingleChoice, Points: 5,
				Options: []string{"a", "b"},
			},
			wantErr: ErrNoCorrectOption,
		},
		{
			name: "correct option not listed",
			question: Question{
				Kind: KindSingleChoice, Points: 5,
				Options: []string{"a", "b"}, CorrectOption: "z",
			},
			wantErr: ErrCorrectNotInOptions,
		},
		{
			name: "multi choice correct set not listed",
			question: Question{
				Kind: KindMultiChoice, Points: 5,
				Options: []string{"a", "b"}, CorrectOptions: []string{"a", "z"},
			},
			wantErr: ErrCorrectNotInOptions,
		},
		{
			name: "multi choice empty correct set",
			question: Question{
				Kind: KindMultiChoice, Points: 5,
				Options: []string{"a", "b"},
			},
			wantErr: ErrNoCorrectOption,
		},
		{
			name:     "free text without keywords",
			question: Question{Kind: KindFreeText, Points: 5},
			wantErr:  ErrNoKeywords,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.question.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAnswerValueIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		answer AnswerValue
		empty  bool
	}{
		{"zero value", AnswerValue{}, true},
		{"blank single choice", SingleChoiceAnswer(""), true},
		{"single choice", SingleChoiceAnswer("a"), false},
		{"no options selected", MultiChoiceAnswer(), true},
		{"options selected", MultiChoiceAnswer("a"), false},
		{"blank text", FreeTextAnswer(""), true},
		{"text", FreeTextAnswer("an answer"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.answer.IsEmpty(); got != tc.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tc.empty)
			}
		})
	}
}
