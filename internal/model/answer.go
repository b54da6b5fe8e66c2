package model

// AnswerValue is a submitted answer, shaped by the question kind.
// Exactly one of the value fields is meaningful for a given kind.
type AnswerValue struct {
	Kind    QuestionKind `json:"kind"`
	Option  string       `json:"option,omitempty"`  // single-choice
	Options []string     `json:"options,omitempty"` // multi-choice
	Text    string       `json:"text,omitempty"`    // free-text
}

// SingleChoiceAnswer builds an answer for a single-choice question.
func SingleChoiceAnswer(option string) AnswerValue {
	return AnswerValue{Kind: KindSingleChoice, Option: option}
}

// MultiChoiceAnswer builds an answer for a multi-choice question.
func MultiChoiceAnswer(options ...string) AnswerValue {
	return AnswerValue{Kind: KindMultiChoice, Options: options}
}

// FreeTextAnswer builds an answer for a free-text question.
func FreeTextAnswer(text string) AnswerValue {
	return AnswerValue{Kind: KindFreeText, Text: text}
}

// IsEmpty reports whether the answer carries no submitted value.
// Absent answers evaluate the same as empty ones.
func (a AnswerValue) IsEmpty() bool {
	return a.Option == "" && len(a.Options) == 0 && a.Text == ""
}

// QuestionResult is the evaluation verdict for one question.
type QuestionResult struct {
	QuestionID    string  `json:"questionId"`
	Correct       bool    `json:"correct"`
	PointsAwarded float64 `json:"pointsAwarded"`
	Feedback      string  `json:"feedback,omitempty"`
}
