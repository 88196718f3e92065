// Package cooccur computes pairwise theme co-occurrence from the
// wide-form coding matrix.
package cooccur

import (
	"math"

	"github.com/qualverse/qualcode/pkg/coding"
)

// Pair is the co-occurrence record for one unordered pair of distinct
// themes. ThemeA sorts before ThemeB, so each unordered pair appears
// exactly once.
type Pair struct {
	ThemeA string
	ThemeB string

	// Count is the number of responses where both themes are assigned.
	Count int

	// Rate is Count divided by the total number of responses in the
	// matrix - not total mentions, which would inflate the rates.
	// NaN when the matrix has zero responses.
	Rate float64
}

// Pairs produces one record for every unordered pair of distinct
// themes, including zero-count pairs: omitting a pair would make
// "never co-mentioned" indistinguishable from "not computed". The
// result has exactly C(|themes|, 2) entries, ordered by (ThemeA,
// ThemeB); theme IDs in the matrix are already sorted.
func Pairs(wide *coding.Matrix) []Pair {
	themes := wide.Themes()
	total := wide.Len()

	res := make([]Pair, 0, len(themes)*(len(themes)-1)/2)
	for i := 0; i < len(themes); i++ {
		for j := i + 1; j < len(themes); j++ {
			var count int
			for row := 0; row < total; row++ {
				flags := wide.Row(row)
				if flags[i] && flags[j] {
					count++
				}
			}
			rate := math.NaN()
			if total > 0 {
				rate = float64(count) / float64(total)
			}
			res = append(res, Pair{
				ThemeA: themes[i],
				ThemeB: themes[j],
				Count:  count,
				Rate:   rate,
			})
		}
	}
	return res
}
