// Package exemplars selects representative quotes per theme from the
// long-form coding table. Selection is seeded and deterministic, with a
// basic diversity heuristic that prefers quotes from distinct regions.
package exemplars

import (
	"hash/fnv"
	"math/rand/v2"
	"sort"

	"github.com/qualverse/qualcode/pkg/coding"
	"github.com/qualverse/qualcode/pkg/survey"
)

// Quote is one selected exemplar.
type Quote struct {
	Theme  string
	Frame  survey.Frame
	Wave   int
	Region string
	Quote  string
}

// Select returns up to k exemplar quotes for a theme. Duplicate quotes
// (same normalized text) collapse to one candidate; candidates are
// shuffled with a stream derived from seed and the theme ID, then the
// first pass keeps one quote per region before filling up to k. The
// result is sorted by (frame, wave, region).
func Select(long []coding.Assignment, theme string, k int, seed int64) []Quote {
	if k <= 0 {
		return nil
	}

	var candidates []coding.Assignment
	seen := make(map[string]struct{})
	for _, a := range long {
		if a.Theme != theme || a.Quote == "" {
			continue
		}
		norm := coding.Normalize(a.Quote)
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		candidates = append(candidates, a)
	}
	if len(candidates) == 0 {
		return nil
	}

	rng := themeRand(seed, theme)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// First pass: one quote per region for geographic diversity.
	regionSeen := make(map[string]struct{})
	var picked []coding.Assignment
	var leftovers []coding.Assignment
	for _, a := range candidates {
		if _, ok := regionSeen[a.Region]; ok {
			leftovers = append(leftovers, a)
			continue
		}
		regionSeen[a.Region] = struct{}{}
		picked = append(picked, a)
	}
	if len(picked) > k {
		picked = picked[:k]
	}
	for _, a := range leftovers {
		if len(picked) >= k {
			break
		}
		picked = append(picked, a)
	}

	sort.Slice(picked, func(i, j int) bool {
		if picked[i].Frame != picked[j].Frame {
			return picked[i].Frame < picked[j].Frame
		}
		if picked[i].Wave != picked[j].Wave {
			return picked[i].Wave < picked[j].Wave
		}
		return picked[i].Region < picked[j].Region
	})

	res := make([]Quote, len(picked))
	for i, a := range picked {
		res[i] = Quote{
			Theme:  theme,
			Frame:  a.Frame,
			Wave:   a.Wave,
			Region: a.Region,
			Quote:  a.Quote,
		}
	}
	return res
}

// SelectAll selects up to k quotes for every theme, themes in sorted
// order.
func SelectAll(
	long []coding.Assignment,
	themes []string,
	k int,
	seed int64,
) []Quote {
	var res []Quote
	for _, theme := range themes {
		res = append(res, Select(long, theme, k, seed)...)
	}
	return res
}

// themeRand derives a per-theme stream from the run seed so adding a
// theme does not shift every other theme's selection.
func themeRand(seed int64, theme string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(theme))
	return rand.New(rand.NewPCG(uint64(seed), h.Sum64()))
}
