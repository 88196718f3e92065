// Package reliability simulates a second coder over the wide coding
// matrix and scores inter-rater agreement per theme: percent agreement
// and Cohen's kappa from each theme's 2x2 contingency table.
//
// The simulated coder flips each (response, theme) cell independently
// with a small per-theme probability. No structural correlation between
// cells is added; that is a stated limitation of the simulation, not a
// defect.
package reliability

import (
	"fmt"
	"math"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/codebook"
	"github.com/qualverse/qualcode/pkg/coding"
	"github.com/qualverse/qualcode/pkg/errcode"
)

// Rates configures per-theme flip probabilities. A theme uses, in
// order of precedence: its Overrides entry, Ambiguous when the codebook
// marks it ambiguous, otherwise Base.
type Rates struct {
	Base      float64
	Ambiguous float64
	Overrides map[string]float64
}

// Validate rejects probabilities outside [0, 1] before any simulation
// runs.
func (r Rates) Validate() error {
	check := func(name string, p float64) error {
		if p < 0 || p > 1 {
			return rateError(name, p)
		}
		return nil
	}
	if err := check("base_flip", r.Base); err != nil {
		return err
	}
	if err := check("ambiguous_flip", r.Ambiguous); err != nil {
		return err
	}
	for theme, p := range r.Overrides {
		if err := check("flip rate for "+theme, p); err != nil {
			return err
		}
	}
	return nil
}

// ForTheme resolves the flip probability of one theme.
func (r Rates) ForTheme(th codebook.Theme) float64 {
	if p, ok := r.Overrides[th.ID]; ok {
		return p
	}
	if th.Ambiguous {
		return r.Ambiguous
	}
	return r.Base
}

// Record is the per-theme reliability result.
type Record struct {
	Theme string

	// PrimaryPositive and SecondPositive are each coder's positive
	// label counts for the theme.
	PrimaryPositive int
	SecondPositive  int

	// Agreement is the observed proportion of matching labels (po).
	// NaN for an empty table.
	Agreement float64

	// Chance is the expected-by-chance agreement proportion (pe),
	// computed from both coders' marginal positive rates. NaN for an
	// empty table.
	Chance float64

	// Kappa is (po - pe) / (1 - pe). NaN when pe == 1: with both
	// coders unanimous there is no variance to correct for chance,
	// which is not the same finding as zero agreement.
	Kappa float64
}

// Simulate produces the second-coder matrix by independent per-cell
// flips of the primary labels. Cells are visited themes-outer (sorted
// column order), rows-inner (input order), so a given seed always
// consumes the decision stream the same way. The primary matrix is not
// modified.
func Simulate(
	primary *coding.Matrix,
	cb *codebook.Codebook,
	rates Rates,
	src FlipSource,
) (*coding.Matrix, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}

	second := primary.Clone()
	for _, themeID := range second.Themes() {
		th, _ := cb.Theme(themeID)
		p := rates.ForTheme(th)
		for row := 0; row < second.Len(); row++ {
			if src.Flip(p) {
				second.Toggle(row, themeID)
			}
		}
	}
	return second, nil
}

// Score computes one Record per theme from the primary and simulated
// second coder matrices. Kappa is computed independently per theme:
// themes are independent binary dimensions, not mutually exclusive
// classes, so a pooled multi-class kappa would be wrong.
func Score(primary, second *coding.Matrix) ([]Record, error) {
	if !primary.SameShape(second) {
		return nil, &gn.Error{
			Code: errcode.ReliabilityShapeError,
			Msg: `<err>Coder matrices have different shapes.</err>
   Both coders must label the same responses and themes.`,
			Err: fmt.Errorf("primary and second coder matrices do not align"),
		}
	}

	themes := primary.Themes()
	total := primary.Len()
	res := make([]Record, 0, len(themes))

	for _, theme := range themes {
		var agree, posA, posB int
		for row := 0; row < total; row++ {
			a := primary.Flag(row, theme)
			b := second.Flag(row, theme)
			if a == b {
				agree++
			}
			if a {
				posA++
			}
			if b {
				posB++
			}
		}

		po := math.NaN()
		pe := math.NaN()
		kappa := math.NaN()
		if total > 0 {
			po = float64(agree) / float64(total)
			pYesA := float64(posA) / float64(total)
			pYesB := float64(posB) / float64(total)
			pe = pYesA*pYesB + (1-pYesA)*(1-pYesB)
			if pe != 1 {
				kappa = (po - pe) / (1 - pe)
			}
		}

		res = append(res, Record{
			Theme:           theme,
			PrimaryPositive: posA,
			SecondPositive:  posB,
			Agreement:       po,
			Chance:          pe,
			Kappa:           kappa,
		})
	}
	return res, nil
}

func rateError(name string, p float64) error {
	return &gn.Error{
		Code: errcode.ReliabilityRateError,
		Msg: `<err>Flip probability out of range.</err>
   <em>%s</em> is %v; probabilities must be within [0, 1].`,
		Vars: []any{name, p},
		Err:  fmt.Errorf("flip probability %s=%v outside [0,1]", name, p),
	}
}
