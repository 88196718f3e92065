package coding_test

import (
	"fmt"
	"testing"

	"github.com/qualverse/qualcode/pkg/codebook"
	"github.com/qualverse/qualcode/pkg/coding"
	"github.com/qualverse/qualcode/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodebook() *codebook.Codebook {
	cfg := &codebook.CodebookConfig{
		Themes: []codebook.ThemeConfig{
			{
				ID:       "STRESS_BURNOUT",
				Triggers: []string{"burned out", "overwhelmed", "stress"},
			},
			{
				ID:       "AFFORDABILITY",
				Triggers: []string{"too expensive", "cannot afford", "tuition"},
			},
			{
				ID:       "FOOD_INSECURITY",
				Triggers: []string{"skip meals", "food insecurity"},
			},
		},
	}
	return codebook.New(cfg)
}

func response(id, text string) survey.Response {
	return survey.Response{
		ID:     id,
		Text:   text,
		Frame:  survey.FrameHousehold,
		Wave:   1,
		Month:  "January 2024",
		Region: "CA",
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		msg, input, expected string
	}{
		{
			msg:      "lowercases",
			input:    "Burned OUT",
			expected: "burned out",
		},
		{
			msg:      "strips punctuation",
			input:    "burned-out, overwhelmed!",
			expected: "burned out overwhelmed",
		},
		{
			msg:      "removes stopwords",
			input:    "the stress of it all",
			expected: "stress all",
		},
		{
			msg:      "collapses whitespace",
			input:    "  skip   meals \n now ",
			expected: "skip meals now",
		},
		{
			msg:      "empty input",
			input:    "",
			expected: "",
		},
		{
			msg:      "punctuation only",
			input:    "?!...",
			expected: "",
		},
	}

	for _, v := range tests {
		res := coding.Normalize(v.input)
		assert.Equal(t, v.expected, res, v.msg)
	}
}

func TestCodeMultiLabel(t *testing.T) {
	cb := testCodebook()
	responses := []survey.Response{
		response("R00001", "Tuition is too expensive and I am burned out."),
	}

	res, err := coding.Code(cb, responses, 1)
	require.NoError(t, err)

	// Both themes assigned independently; long rows sorted by theme
	// within the response.
	require.Len(t, res.Long, 2)
	assert.Equal(t, "AFFORDABILITY", res.Long[0].Theme)
	assert.Equal(t, "STRESS_BURNOUT", res.Long[1].Theme)

	assert.True(t, res.Wide.Flag(0, "AFFORDABILITY"))
	assert.True(t, res.Wide.Flag(0, "STRESS_BURNOUT"))
	assert.False(t, res.Wide.Flag(0, "FOOD_INSECURITY"))
}

func TestCodeCaseAndPunctuation(t *testing.T) {
	cb := testCodebook()
	tests := []struct {
		msg   string
		text  string
		theme string
	}{
		{
			msg:   "case-insensitive match",
			text:  "We are BURNED OUT this month",
			theme: "STRESS_BURNOUT",
		},
		{
			msg:   "hyphenated variant matches",
			text:  "Feeling burned-out again",
			theme: "STRESS_BURNOUT",
		},
		{
			msg:   "stopwords inside trigger",
			text:  "We skip the meals on weekends",
			theme: "FOOD_INSECURITY",
		},
	}

	for _, v := range tests {
		res, err := coding.Code(
			cb, []survey.Response{response("R00001", v.text)}, 1,
		)
		require.NoError(t, err, v.msg)
		assert.True(t, res.Wide.Flag(0, v.theme), v.msg)
	}
}

func TestCodeEmptyText(t *testing.T) {
	cb := testCodebook()
	responses := []survey.Response{
		response("R00001", ""),
		response("R00002", "   \t  "),
		response("R00003", "no relevant content here"),
	}

	res, err := coding.Code(cb, responses, 2)
	require.NoError(t, err)

	// Zero themes is a valid outcome; rows still exist in the wide
	// matrix with all-false flags.
	assert.Empty(t, res.Long)
	assert.Equal(t, 3, res.Wide.Len())
	for _, theme := range res.Wide.Themes() {
		assert.Equal(t, 0, res.Wide.PositiveCount(theme))
	}
}

func TestCodeLongWideAgree(t *testing.T) {
	cb := testCodebook()
	responses := []survey.Response{
		response("R00001", "tuition keeps rising"),
		response("R00002", "we skip meals and I am overwhelmed"),
		response("R00003", "nothing to report"),
	}

	res, err := coding.Code(cb, responses, 4)
	require.NoError(t, err)

	// Every long row is flagged in the wide matrix and vice versa.
	fromLong := make(map[string]map[string]bool)
	for _, a := range res.Long {
		if fromLong[a.ResponseID] == nil {
			fromLong[a.ResponseID] = make(map[string]bool)
		}
		fromLong[a.ResponseID][a.Theme] = true
	}

	for row := 0; row < res.Wide.Len(); row++ {
		id := res.Wide.ResponseID(row)
		for _, theme := range res.Wide.Themes() {
			assert.Equal(
				t, fromLong[id][theme], res.Wide.Flag(row, theme),
				"response %s theme %s", id, theme,
			)
		}
	}
}

func TestCodeParallelDeterminism(t *testing.T) {
	cb := testCodebook()
	var responses []survey.Response
	texts := []string{
		"tuition is too expensive",
		"burned out and overwhelmed",
		"we skip meals",
		"no themes here",
		"stress about food insecurity and tuition",
	}
	for i := 0; i < 50; i++ {
		responses = append(responses, response(
			fmt.Sprintf("R%05d", i+1), texts[i%len(texts)],
		))
	}

	sequential, err := coding.Code(cb, responses, 1)
	require.NoError(t, err)
	parallel, err := coding.Code(cb, responses, 8)
	require.NoError(t, err)

	assert.Equal(t, sequential.Long, parallel.Long)
	for row := 0; row < sequential.Wide.Len(); row++ {
		assert.Equal(t, sequential.Wide.Row(row), parallel.Wide.Row(row))
	}
}

func TestCodeRejectsEmptyCodebook(t *testing.T) {
	_, err := coding.Code(
		nil, []survey.Response{response("R00001", "text")}, 1,
	)
	assert.Error(t, err)
}

func TestCodeRejectsDuplicateIDs(t *testing.T) {
	cb := testCodebook()
	responses := []survey.Response{
		response("R00001", "tuition"),
		response("R00001", "stress"),
	}
	_, err := coding.Code(cb, responses, 1)
	assert.Error(t, err)
}

func TestCounts(t *testing.T) {
	cb := testCodebook()
	responses := []survey.Response{
		response("R00001", "tuition is too expensive"),
		response("R00002", "tuition again"),
		response("R00003", "burned out"),
	}
	responses[1].Wave = 2
	responses[2].Frame = survey.FrameProvider

	res, err := coding.Code(cb, responses, 1)
	require.NoError(t, err)

	counts := coding.Counts(res.Long)
	require.Len(t, counts, 3)

	// Sorted by theme, frame, wave.
	assert.Equal(t, coding.ThemeCount{
		Theme: "AFFORDABILITY", Frame: survey.FrameHousehold,
		Wave: 1, Count: 1,
	}, counts[0])
	assert.Equal(t, coding.ThemeCount{
		Theme: "AFFORDABILITY", Frame: survey.FrameHousehold,
		Wave: 2, Count: 1,
	}, counts[1])
	assert.Equal(t, coding.ThemeCount{
		Theme: "STRESS_BURNOUT", Frame: survey.FrameProvider,
		Wave: 1, Count: 1,
	}, counts[2])
}

func TestFrequencies(t *testing.T) {
	responses := []survey.Response{
		response("R00001", ""),
		response("R00002", ""),
		response("R00003", ""),
		response("R00004", ""),
	}

	counts := []coding.ThemeCount{
		{
			Theme: "AFFORDABILITY", Frame: survey.FrameHousehold,
			Wave: 1, Count: 3,
		},
	}

	freqs := coding.Frequencies(counts, responses)
	require.Len(t, freqs, 1)
	assert.Equal(t, 4, freqs[0].NResponses)
	assert.InDelta(t, 0.75, freqs[0].Percent, 1e-9)
}
