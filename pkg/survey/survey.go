// Package survey defines the input record shape the analytic engine
// consumes: one Response per open-ended survey answer, with categorical
// metadata and simulated quantitative indicators. Responses are
// produced upstream (by the generator or an external file) and are
// read-only to every downstream component.
package survey

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/errcode"
)

// Frame identifies the respondent category. Some indicators are only
// defined for one frame.
type Frame string

const (
	FrameHousehold Frame = "household"
	FrameProvider  Frame = "provider"
)

// Indicators holds the per-response quantitative indicator values.
// Frame-restricted indicators are meaningful only for their frame:
// EmploymentDisruption for household responses, ClosureRiskHigh for
// provider responses. The comparator scopes its groups accordingly
// instead of reading zeroes from out-of-frame records.
type Indicators struct {
	// StressScore is a continuous 0-40 stress scale value.
	StressScore float64

	// FoodInsecurity flags lack of consistent access to food.
	FoodInsecurity bool

	// EmploymentDisruption flags care-driven work disruption.
	// Defined for household frame only.
	EmploymentDisruption bool

	// ClosureRisk is a 0-3 ordinal closure risk score.
	// Defined for provider frame only.
	ClosureRisk int

	// ClosureRiskHigh flags ClosureRisk >= 2.
	// Defined for provider frame only.
	ClosureRiskHigh bool
}

// Response is a single unit of analysis.
type Response struct {
	// ID is the stable respondent identifier (e.g. R00042).
	ID string

	// Text is the free-text body of the open-ended answer.
	Text string

	// Frame is household or provider.
	Frame Frame

	// Wave is the ordinal survey period, starting at 1.
	Wave int

	// Month is the human-readable survey month for the wave.
	Month string

	// Region is the respondent region code (US state).
	Region string

	// Indicators holds simulated quantitative indicator values.
	Indicators Indicators
}

// Validate fails fast on a malformed record. Identity and text are
// required; the engine never guesses defaults for them. Whitespace-only
// text is well-formed (it codes to zero themes) but a missing text
// field is not distinguishable from empty here, so only ID is treated
// as hard identity.
func (r *Response) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("response is missing id")
	}
	if r.Frame != FrameHousehold && r.Frame != FrameProvider {
		return fmt.Errorf("response %s: unknown frame %q", r.ID, r.Frame)
	}
	if r.Wave < 1 {
		return fmt.Errorf("response %s: wave must be >= 1, got %d", r.ID, r.Wave)
	}
	return nil
}

// ValidateAll validates a batch of responses and checks ID uniqueness.
// Returns a *gn.Error suitable for user-facing display.
func ValidateAll(responses []Response) error {
	seen := make(map[string]struct{}, len(responses))
	for i := range responses {
		if err := responses[i].Validate(); err != nil {
			return invalidResponseError(i, err)
		}
		id := responses[i].ID
		if _, ok := seen[id]; ok {
			return invalidResponseError(
				i, fmt.Errorf("duplicate response id %q", id),
			)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func invalidResponseError(index int, err error) error {
	return &gn.Error{
		Code: errcode.ResponseInvalidError,
		Msg: `<err>Malformed survey response at row %d.</err>
   Every response needs a unique <em>id</em>, a known <em>frame</em>
   (household or provider), and a positive <em>wave</em>.`,
		Vars: []any{index + 1},
		Err:  fmt.Errorf("malformed response at index %d: %w", index, err),
	}
}
