package exemplars_test

import (
	"fmt"
	"testing"

	"github.com/qualverse/qualcode/pkg/coding"
	"github.com/qualverse/qualcode/pkg/exemplars"
	"github.com/qualverse/qualcode/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignment(id, theme, region, quote string) coding.Assignment {
	return coding.Assignment{
		ResponseID: id,
		Theme:      theme,
		Frame:      survey.FrameHousehold,
		Wave:       1,
		Region:     region,
		Quote:      quote,
	}
}

func testLong() []coding.Assignment {
	var res []coding.Assignment
	regions := []string{"CA", "NY", "TX", "CA", "NY", "WA", "CA", "FL"}
	for i, region := range regions {
		res = append(res, assignment(
			fmt.Sprintf("R%05d", i+1), "AFFORDABILITY", region,
			fmt.Sprintf("quote number %d about tuition", i+1),
		))
	}
	res = append(res, assignment(
		"R00100", "STRESS_BURNOUT", "CA", "a quote about burnout",
	))
	return res
}

func TestSelectDeterminism(t *testing.T) {
	long := testLong()

	a := exemplars.Select(long, "AFFORDABILITY", 5, 42)
	b := exemplars.Select(long, "AFFORDABILITY", 5, 42)
	assert.Equal(t, a, b, "same seed selects the same quotes")

	c := exemplars.Select(long, "AFFORDABILITY", 5, 43)
	assert.Len(t, c, 5)
}

func TestSelectLimits(t *testing.T) {
	long := testLong()

	t.Run("at most k quotes", func(t *testing.T) {
		res := exemplars.Select(long, "AFFORDABILITY", 3, 42)
		assert.Len(t, res, 3)
	})

	t.Run("fewer candidates than k", func(t *testing.T) {
		res := exemplars.Select(long, "STRESS_BURNOUT", 5, 42)
		assert.Len(t, res, 1)
	})

	t.Run("unknown theme", func(t *testing.T) {
		res := exemplars.Select(long, "NO_SUCH_THEME", 5, 42)
		assert.Empty(t, res)
	})

	t.Run("zero k", func(t *testing.T) {
		res := exemplars.Select(long, "AFFORDABILITY", 0, 42)
		assert.Empty(t, res)
	})
}

func TestSelectDeduplicatesQuotes(t *testing.T) {
	long := []coding.Assignment{
		assignment("R1", "AFFORDABILITY", "CA", "Tuition is too expensive."),
		assignment("R2", "AFFORDABILITY", "NY", "tuition is TOO expensive"),
		assignment("R3", "AFFORDABILITY", "TX", "a different quote"),
	}

	res := exemplars.Select(long, "AFFORDABILITY", 5, 42)
	assert.Len(t, res, 2,
		"quotes equal after normalization collapse to one candidate")
}

func TestSelectRegionDiversity(t *testing.T) {
	// Five distinct regions and k = 4: every selected quote comes from
	// a different region.
	long := []coding.Assignment{
		assignment("R1", "AFFORDABILITY", "CA", "first quote"),
		assignment("R2", "AFFORDABILITY", "CA", "second quote"),
		assignment("R3", "AFFORDABILITY", "NY", "third quote"),
		assignment("R4", "AFFORDABILITY", "TX", "fourth quote"),
		assignment("R5", "AFFORDABILITY", "WA", "fifth quote"),
		assignment("R6", "AFFORDABILITY", "FL", "sixth quote"),
	}

	res := exemplars.Select(long, "AFFORDABILITY", 4, 42)
	require.Len(t, res, 4)

	regions := make(map[string]int)
	for _, q := range res {
		regions[q.Region]++
	}
	assert.Len(t, regions, 4, "one quote per region before filling")
}

func TestSelectAll(t *testing.T) {
	long := testLong()
	themes := []string{"AFFORDABILITY", "STRESS_BURNOUT"}

	res := exemplars.SelectAll(long, themes, 2, 42)
	require.Len(t, res, 3)

	// Themes come out grouped in the order given.
	assert.Equal(t, "AFFORDABILITY", res[0].Theme)
	assert.Equal(t, "AFFORDABILITY", res[1].Theme)
	assert.Equal(t, "STRESS_BURNOUT", res[2].Theme)
}

func TestSelectPerThemeStreams(t *testing.T) {
	// Adding a theme to the long table must not change another theme's
	// selection: each theme draws from its own seeded stream.
	long := testLong()
	before := exemplars.Select(long, "AFFORDABILITY", 3, 42)

	long = append(long, assignment(
		"R00200", "FOOD_INSECURITY", "TX", "a quote about skipped meals",
	))
	after := exemplars.Select(long, "AFFORDABILITY", 3, 42)

	assert.Equal(t, before, after)
}
