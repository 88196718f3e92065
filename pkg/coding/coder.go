// Package coding implements deterministic multi-label thematic coding.
//
// A theme is assigned to a response iff at least one of its trigger
// phrases occurs as a substring of the normalized response text.
// Matching is independent per theme: no priority, no exclusivity, and
// overlapping triggers across themes are expected. For a fixed codebook
// and fixed text the assignment is identical on every run; every
// downstream statistic traces back to this rule.
package coding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/codebook"
	"github.com/qualverse/qualcode/pkg/errcode"
	"github.com/qualverse/qualcode/pkg/survey"
	"golang.org/x/sync/errgroup"
)

// Assignment is one long-form row: a (response, matched theme) pair
// with the response metadata needed for grouping and quoting.
type Assignment struct {
	ResponseID string
	Theme      string
	Frame      survey.Frame
	Wave       int
	Region     string
	Quote      string
}

// Result holds both projections of the coding relation.
type Result struct {
	// Long has one row per (response, matched theme) pair, responses in
	// input order, themes in sorted order within a response.
	Long []Assignment

	// Wide has one row per input response with one boolean column per
	// theme, false when unmatched.
	Wide *Matrix
}

// themeTriggers is a theme with its normalized, non-empty triggers.
type themeTriggers struct {
	id       string
	triggers []string
}

// Code applies the codebook to the responses and produces the long and
// wide coding tables. The per-response matching pass runs on up to jobs
// workers; output is identical to a sequential run because each row is
// an independent reduction. Empty or whitespace-only text codes to zero
// themes.
func Code(
	cb *codebook.Codebook,
	responses []survey.Response,
	jobs int,
) (*Result, error) {
	if cb == nil || cb.Len() == 0 {
		return nil, &gn.Error{
			Code: errcode.CodebookEmptyError,
			Msg:  "<err>Cannot code responses without a codebook.</err>",
			Err:  fmt.Errorf("empty codebook"),
		}
	}
	if err := survey.ValidateAll(responses); err != nil {
		return nil, err
	}

	keywordMap := prepareTriggers(cb)

	matched := make([][]string, len(responses))
	if jobs < 1 {
		jobs = 1
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for i := range responses {
		g.Go(func() error {
			matched[i] = matchThemes(responses[i].Text, keywordMap)
			return nil
		})
	}
	// Workers return no errors; Wait keeps the pipeline shape uniform
	// with the rest of the codebase.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]string, len(responses))
	for i := range responses {
		ids[i] = responses[i].ID
	}
	wide := NewMatrix(cb.IDs(), ids)

	var long []Assignment
	for i := range responses {
		r := &responses[i]
		for _, theme := range matched[i] {
			wide.Set(i, theme)
			long = append(long, Assignment{
				ResponseID: r.ID,
				Theme:      theme,
				Frame:      r.Frame,
				Wave:       r.Wave,
				Region:     r.Region,
				Quote:      strings.TrimSpace(r.Text),
			})
		}
	}

	return &Result{Long: long, Wide: wide}, nil
}

// prepareTriggers normalizes every trigger once, dropping triggers that
// normalize away to nothing. Themes come out in sorted-ID order.
func prepareTriggers(cb *codebook.Codebook) []themeTriggers {
	res := make([]themeTriggers, 0, cb.Len())
	for _, th := range cb.Themes() {
		var triggers []string
		for _, trg := range th.Triggers {
			norm := Normalize(trg)
			if norm != "" {
				triggers = append(triggers, norm)
			}
		}
		res = append(res, themeTriggers{id: th.ID, triggers: triggers})
	}
	return res
}

// matchThemes returns the sorted theme IDs whose triggers occur in the
// normalized text. Matching each theme is independent, which is what
// makes the assignment multi-label.
func matchThemes(text string, keywordMap []themeTriggers) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	var res []string
	for _, tt := range keywordMap {
		for _, trg := range tt.triggers {
			if strings.Contains(norm, trg) {
				res = append(res, tt.id)
				break
			}
		}
	}
	// keywordMap is already sorted by theme ID; keep the guarantee
	// explicit for callers that rely on ordered long rows.
	sort.Strings(res)
	return res
}
