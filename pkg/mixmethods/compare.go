// Package mixmethods joins qualitative theme assignments with
// quantitative indicators: for every (theme, indicator) combination it
// compares responses where the theme is present against responses where
// it is absent.
package mixmethods

import (
	"fmt"
	"math"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/coding"
	"github.com/qualverse/qualcode/pkg/errcode"
	"github.com/qualverse/qualcode/pkg/survey"
)

// GroupComparison is the record for one (theme, indicator) combination.
// An empty group yields NaN values: "insufficient data" and a zero
// delta are different findings and must never be conflated.
type GroupComparison struct {
	Theme     string
	Indicator string

	// Frame is the scope of the partition: the indicator's frame, or
	// empty when the indicator is defined for all responses.
	Frame survey.Frame

	// PresentN and AbsentN are the in-scope group sizes.
	PresentN int
	AbsentN  int

	// PresentValue and AbsentValue are the indicator mean (continuous)
	// or rate as a fraction (boolean) per group. NaN when the group is
	// empty.
	PresentValue float64
	AbsentValue  float64

	// Delta is PresentValue - AbsentValue, expressed in percentage
	// points (multiplied by 100) for boolean indicators. NaN when
	// either group is empty.
	Delta float64
}

// Compare produces one GroupComparison for every (theme, indicator)
// combination. For frame-restricted indicators the partition covers
// only in-scope responses; a theme that is always or never assigned
// within the scope gets NaN statistics, never a numeric zero.
//
// The wide matrix rows must correspond one-to-one, in order, with the
// responses slice.
func Compare(
	wide *coding.Matrix,
	responses []survey.Response,
	indicators []Indicator,
) ([]GroupComparison, error) {
	if err := checkAlignment(wide, responses); err != nil {
		return nil, err
	}

	themes := wide.Themes()
	res := make([]GroupComparison, 0, len(themes)*len(indicators))
	for _, theme := range themes {
		for i := range indicators {
			ind := &indicators[i]
			res = append(res, compareOne(wide, responses, theme, ind))
		}
	}
	return res, nil
}

func compareOne(
	wide *coding.Matrix,
	responses []survey.Response,
	theme string,
	ind *Indicator,
) GroupComparison {
	var presentSum, absentSum float64
	var presentN, absentN int

	for row := range responses {
		r := &responses[row]
		if ind.Frame != "" && r.Frame != ind.Frame {
			continue
		}
		v := ind.Value(r)
		if wide.Flag(row, theme) {
			presentSum += v
			presentN++
		} else {
			absentSum += v
			absentN++
		}
	}

	present := math.NaN()
	if presentN > 0 {
		present = presentSum / float64(presentN)
	}
	absent := math.NaN()
	if absentN > 0 {
		absent = absentSum / float64(absentN)
	}

	delta := present - absent // NaN propagates from an empty group
	if ind.Kind == Boolean {
		delta *= 100
	}

	return GroupComparison{
		Theme:        theme,
		Indicator:    ind.Name,
		Frame:        ind.Frame,
		PresentN:     presentN,
		AbsentN:      absentN,
		PresentValue: present,
		AbsentValue:  absent,
		Delta:        delta,
	}
}

func checkAlignment(wide *coding.Matrix, responses []survey.Response) error {
	mismatch := wide.Len() != len(responses)
	if !mismatch {
		for i := range responses {
			if wide.ResponseID(i) != responses[i].ID {
				mismatch = true
				break
			}
		}
	}
	if mismatch {
		return &gn.Error{
			Code: errcode.CodingInputError,
			Msg: `<err>Coding matrix and responses are out of sync.</err>
   Recompute the coding tables from the same response set.`,
			Err: fmt.Errorf(
				"wide matrix (%d rows) does not align with responses (%d)",
				wide.Len(), len(responses),
			),
		}
	}
	return nil
}
