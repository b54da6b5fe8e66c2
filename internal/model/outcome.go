package model

// OutcomeAxis selects which outcome tag an aggregation runs over.
type OutcomeAxis string

const (
	AxisCourse  OutcomeAxis = "course"  // CO tags
	AxisProgram OutcomeAxis = "program" // PO tags
)

// OutcomeMapping holds the human-readable descriptions for outcome numbers.
// Index 0 describes CO1/PO1, index 1 describes CO2/PO2, and so on.
type OutcomeMapping struct {
	CourseOutcomes  []string `json:"courseOutcomes"`
	ProgramOutcomes []string `json:"programOutcomes"`
}

// AttainmentLevel buckets an attainment percentage.
type AttainmentLevel string

const (
	HighlyAttained    AttainmentLevel = "Highly Attained"    // >= 80
	Attained          AttainmentLevel = "Attained"           // >= 60
	PartiallyAttained AttainmentLevel = "Partially Attained" // >= 40
	NotAttained       AttainmentLevel = "Not Attained"
)

// OutcomeAttainment is the rollup for one outcome tag within a scope.
type OutcomeAttainment struct {
	Tag            string          `json:"tag"` // "CO1", "PO3", ...
	Description    string          `json:"description,omitempty"`
	QuestionCount  int             `json:"questionCount"`
	PossiblePoints float64         `json:"possiblePoints"`
	AwardedPoints  float64         `json:"awardedPoints"`
	Percentage     float64         `json:"percentage"`
	Level          AttainmentLevel `json:"level"`
}
