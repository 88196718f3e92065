package mixmethods_test

import (
	"math"
	"testing"

	"github.com/qualverse/qualcode/pkg/coding"
	"github.com/qualverse/qualcode/pkg/mixmethods"
	"github.com/qualverse/qualcode/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stressIndicator() mixmethods.Indicator {
	return mixmethods.Indicator{
		Name: "stress_score",
		Kind: mixmethods.Continuous,
		Value: func(r *survey.Response) float64 {
			return r.Indicators.StressScore
		},
	}
}

func foodIndicator() mixmethods.Indicator {
	return mixmethods.Indicator{
		Name: "food_insecurity",
		Kind: mixmethods.Boolean,
		Value: func(r *survey.Response) float64 {
			if r.Indicators.FoodInsecurity {
				return 1
			}
			return 0
		},
	}
}

func testResponses() []survey.Response {
	return []survey.Response{
		{
			ID: "R1", Frame: survey.FrameHousehold, Wave: 1,
			Indicators: survey.Indicators{
				StressScore: 30, FoodInsecurity: true,
			},
		},
		{
			ID: "R2", Frame: survey.FrameHousehold, Wave: 1,
			Indicators: survey.Indicators{
				StressScore: 20, FoodInsecurity: true,
			},
		},
		{
			ID: "R3", Frame: survey.FrameProvider, Wave: 1,
			Indicators: survey.Indicators{
				StressScore: 10, FoodInsecurity: false,
			},
		},
		{
			ID: "R4", Frame: survey.FrameProvider, Wave: 1,
			Indicators: survey.Indicators{
				StressScore: 16, FoodInsecurity: false,
			},
		},
	}
}

func testMatrix(responses []survey.Response) *coding.Matrix {
	ids := make([]string, len(responses))
	for i := range responses {
		ids[i] = responses[i].ID
	}
	return coding.NewMatrix([]string{"AFFORDABILITY"}, ids)
}

func TestCompareContinuous(t *testing.T) {
	responses := testResponses()
	wide := testMatrix(responses)
	// R1 and R3 mention the theme.
	wide.Set(0, "AFFORDABILITY")
	wide.Set(2, "AFFORDABILITY")

	res, err := mixmethods.Compare(
		wide, responses, []mixmethods.Indicator{stressIndicator()},
	)
	require.NoError(t, err)
	require.Len(t, res, 1)

	c := res[0]
	assert.Equal(t, 2, c.PresentN)
	assert.Equal(t, 2, c.AbsentN)
	assert.InDelta(t, 20.0, c.PresentValue, 1e-9) // (30+10)/2
	assert.InDelta(t, 18.0, c.AbsentValue, 1e-9)  // (20+16)/2
	assert.InDelta(t, 2.0, c.Delta, 1e-9)
}

func TestCompareBooleanPercentagePoints(t *testing.T) {
	responses := testResponses()
	wide := testMatrix(responses)
	wide.Set(0, "AFFORDABILITY")
	wide.Set(1, "AFFORDABILITY")

	res, err := mixmethods.Compare(
		wide, responses, []mixmethods.Indicator{foodIndicator()},
	)
	require.NoError(t, err)
	require.Len(t, res, 1)

	c := res[0]
	// Present group: both food-insecure (rate 1). Absent: neither
	// (rate 0). Boolean delta is in percentage points.
	assert.InDelta(t, 1.0, c.PresentValue, 1e-9)
	assert.InDelta(t, 0.0, c.AbsentValue, 1e-9)
	assert.InDelta(t, 100.0, c.Delta, 1e-9)
}

func TestCompareFrameScoping(t *testing.T) {
	responses := testResponses()
	wide := testMatrix(responses)
	// Theme assigned to one household and one provider response.
	wide.Set(0, "AFFORDABILITY")
	wide.Set(2, "AFFORDABILITY")

	ind := stressIndicator()
	ind.Frame = survey.FrameProvider

	res, err := mixmethods.Compare(
		wide, responses, []mixmethods.Indicator{ind},
	)
	require.NoError(t, err)
	require.Len(t, res, 1)

	c := res[0]
	// Only provider responses take part in the partition.
	assert.Equal(t, survey.FrameProvider, c.Frame)
	assert.Equal(t, 1, c.PresentN)
	assert.Equal(t, 1, c.AbsentN)
	assert.InDelta(t, 10.0, c.PresentValue, 1e-9)
	assert.InDelta(t, 16.0, c.AbsentValue, 1e-9)
}

func TestCompareEmptyGroupIsUndefined(t *testing.T) {
	responses := testResponses()

	t.Run("theme never assigned", func(t *testing.T) {
		wide := testMatrix(responses)
		res, err := mixmethods.Compare(
			wide, responses, []mixmethods.Indicator{stressIndicator()},
		)
		require.NoError(t, err)

		c := res[0]
		assert.Equal(t, 0, c.PresentN)
		assert.True(t, math.IsNaN(c.PresentValue),
			"mean over empty group must be NaN, never zero")
		assert.False(t, math.IsNaN(c.AbsentValue))
		assert.True(t, math.IsNaN(c.Delta))
	})

	t.Run("theme always assigned", func(t *testing.T) {
		wide := testMatrix(responses)
		for i := range responses {
			wide.Set(i, "AFFORDABILITY")
		}
		res, err := mixmethods.Compare(
			wide, responses, []mixmethods.Indicator{stressIndicator()},
		)
		require.NoError(t, err)

		c := res[0]
		assert.Equal(t, 0, c.AbsentN)
		assert.True(t, math.IsNaN(c.AbsentValue))
		assert.True(t, math.IsNaN(c.Delta))
	})
}

func TestCompareMisalignedInput(t *testing.T) {
	responses := testResponses()
	wide := coding.NewMatrix([]string{"AFFORDABILITY"}, []string{"R1", "R2"})

	_, err := mixmethods.Compare(
		wide, responses, []mixmethods.Indicator{stressIndicator()},
	)
	assert.Error(t, err)
}

func TestBuiltin(t *testing.T) {
	inds := mixmethods.Builtin()
	require.Len(t, inds, 4)

	byName := make(map[string]mixmethods.Indicator, len(inds))
	for _, ind := range inds {
		byName[ind.Name] = ind
	}

	assert.Equal(t, mixmethods.Continuous, byName["stress_score"].Kind)
	assert.Equal(t, survey.Frame(""), byName["stress_score"].Frame)
	assert.Equal(
		t, survey.FrameHousehold, byName["employment_disruption"].Frame,
	)
	assert.Equal(
		t, survey.FrameProvider, byName["closure_risk_high"].Frame,
	)
}
