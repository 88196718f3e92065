package iogen

import (
	"math"
	"math/rand/v2"

	"github.com/qualverse/qualcode/pkg/survey"
)

// simulateIndicators derives quantitative indicators from the themes a
// response was composed from. Bumps keep interpretable correlations:
// stress rises with burnout and scheduling themes, food insecurity with
// food and affordability themes, and so on. The indicators approximate
// observed data directionally; they do not replace it.
func simulateIndicators(
	frame survey.Frame,
	themes map[string]bool,
	rng *rand.Rand,
) survey.Indicators {
	var ind survey.Indicators

	stress := norm(rng, 18, 6)
	if themes["STRESS_BURNOUT"] {
		stress += norm(rng, 8, 2)
	}
	if themes["SCHEDULING_CONSTRAINTS"] {
		stress += norm(rng, 2, 1)
	}
	ind.StressScore = clamp(stress, 0, 40)

	foodProb := 0.15 + norm(rng, 0, 0.02)
	if themes["FOOD_INSECURITY"] {
		foodProb += 0.35
	}
	if themes["AFFORDABILITY"] {
		foodProb += 0.2
	}
	ind.FoodInsecurity = rng.Float64() < clamp(foodProb, 0, 1)

	employmentProb := 0.1 + norm(rng, 0, 0.01)
	if themes["EMPLOYMENT_DISRUPTION"] {
		employmentProb += 0.5
	}
	if themes["CHILDCARE_ACCESS"] {
		employmentProb += 0.15
	}
	// Defined for household frame only; the draw happens for every
	// response so the random stream does not depend on frame.
	disrupted := rng.Float64() < clamp(employmentProb, 0, 1)
	ind.EmploymentDisruption = frame == survey.FrameHousehold && disrupted

	closure := norm(rng, 1.0, 0.4)
	if themes["PROVIDER_STAFF_SHORTAGE"] {
		closure += norm(rng, 1.2, 0.2)
	}
	if themes["SCHEDULING_CONSTRAINTS"] {
		closure += 0.2
	}
	risk := int(clamp(math.Round(closure), 0, 3))
	if frame == survey.FrameProvider {
		ind.ClosureRisk = risk
		ind.ClosureRiskHigh = risk >= 2
	}

	return ind
}

func norm(rng *rand.Rand, mean, stddev float64) float64 {
	return mean + stddev*rng.NormFloat64()
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
