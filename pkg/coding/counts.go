package coding

import (
	"math"
	"sort"

	"github.com/qualverse/qualcode/pkg/survey"
)

// ThemeCount is the number of responses assigned a theme within one
// (frame, wave) cell.
type ThemeCount struct {
	Theme string
	Frame survey.Frame
	Wave  int
	Count int
}

// ThemeFrequency is a ThemeCount normalized by the number of responses
// in its (frame, wave) cell.
type ThemeFrequency struct {
	ThemeCount
	NResponses int
	Percent    float64
}

// Counts aggregates long-form rows into per-(theme, frame, wave)
// counts, sorted by theme, frame, wave.
func Counts(long []Assignment) []ThemeCount {
	type key struct {
		theme string
		frame survey.Frame
		wave  int
	}
	counter := make(map[key]int)
	for _, a := range long {
		counter[key{a.Theme, a.Frame, a.Wave}]++
	}

	res := make([]ThemeCount, 0, len(counter))
	for k, n := range counter {
		res = append(res, ThemeCount{
			Theme: k.theme,
			Frame: k.frame,
			Wave:  k.wave,
			Count: n,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Theme != res[j].Theme {
			return res[i].Theme < res[j].Theme
		}
		if res[i].Frame != res[j].Frame {
			return res[i].Frame < res[j].Frame
		}
		return res[i].Wave < res[j].Wave
	})
	return res
}

// Frequencies joins theme counts with the response totals of their
// (frame, wave) cells. Percent is NaN when a cell has zero responses,
// which cannot happen for counts derived from the same response set but
// is kept as undefined rather than zero for externally supplied counts.
func Frequencies(
	counts []ThemeCount,
	responses []survey.Response,
) []ThemeFrequency {
	type key struct {
		frame survey.Frame
		wave  int
	}
	totals := make(map[key]int)
	for i := range responses {
		totals[key{responses[i].Frame, responses[i].Wave}]++
	}

	res := make([]ThemeFrequency, len(counts))
	for i, tc := range counts {
		n := totals[key{tc.Frame, tc.Wave}]
		percent := math.NaN()
		if n > 0 {
			percent = float64(tc.Count) / float64(n)
		}
		res[i] = ThemeFrequency{
			ThemeCount: tc,
			NResponses: n,
			Percent:    percent,
		}
	}
	return res
}
