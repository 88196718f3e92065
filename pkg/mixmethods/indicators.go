package mixmethods

import (
	"github.com/qualverse/qualcode/pkg/survey"
)

// Kind distinguishes how an indicator aggregates: continuous indicators
// compare means, boolean indicators compare rates.
type Kind string

const (
	Continuous Kind = "continuous"
	Boolean    Kind = "boolean"
)

// Indicator describes one quantitative indicator attached to responses.
type Indicator struct {
	// Name is the stable indicator name used in output tables.
	Name string

	// Kind selects mean-vs-mean (continuous) or rate-vs-rate (boolean)
	// comparison.
	Kind Kind

	// Frame restricts the indicator to one respondent frame. Empty
	// means the indicator is defined for all responses. The comparator
	// scopes its group partition to the frame instead of treating
	// out-of-frame values as zero.
	Frame survey.Frame

	// Value extracts the indicator value; boolean indicators return 0
	// or 1.
	Value func(r *survey.Response) float64
}

// Builtin returns the indicator set of the survey instrument:
// a continuous stress score and food-insecurity flag for all frames,
// a household-only employment-disruption flag, and a provider-only
// high-closure-risk flag.
func Builtin() []Indicator {
	return []Indicator{
		{
			Name: "stress_score",
			Kind: Continuous,
			Value: func(r *survey.Response) float64 {
				return r.Indicators.StressScore
			},
		},
		{
			Name: "food_insecurity",
			Kind: Boolean,
			Value: func(r *survey.Response) float64 {
				return boolVal(r.Indicators.FoodInsecurity)
			},
		},
		{
			Name:  "employment_disruption",
			Kind:  Boolean,
			Frame: survey.FrameHousehold,
			Value: func(r *survey.Response) float64 {
				return boolVal(r.Indicators.EmploymentDisruption)
			},
		},
		{
			Name:  "closure_risk_high",
			Kind:  Boolean,
			Frame: survey.FrameProvider,
			Value: func(r *survey.Response) float64 {
				return boolVal(r.Indicators.ClosureRiskHigh)
			},
		},
	}
}

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
