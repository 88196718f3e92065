// Package ioreport renders the markdown analysis brief from a run's
// derived tables. The brief is a human-readable digest, not a data
// artifact; the CSV and SQLite exports stay the source of record.
package ioreport

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"text/template"
	"time"

	qualcode "github.com/qualverse/qualcode/pkg"
	"github.com/qualverse/qualcode/pkg/cooccur"
	"github.com/qualverse/qualcode/pkg/exemplars"
	"github.com/qualverse/qualcode/pkg/lifecycle"
	"github.com/qualverse/qualcode/pkg/mixmethods"
	"github.com/qualverse/qualcode/pkg/reliability"
	"github.com/qualverse/qualcode/pkg/survey"
)

// BriefFile is the rendered brief inside an output directory.
const BriefFile = "analysis_brief.md"

// topPairs and topComparisons cap the brief's tables; the full tables
// live in the exports.
const (
	topPairs       = 5
	topComparisons = 8
	quotesPerTheme = 2
)

//go:embed brief.md.tmpl
var briefTmpl string

type reporter struct{}

// New creates the markdown brief reporter.
func New() lifecycle.Reporter {
	return &reporter{}
}

type themeRow struct {
	Theme   string
	Count   int
	Percent float64
}

type themeSection struct {
	Theme  string
	Quotes []exemplars.Quote
}

type briefData struct {
	Version     string
	Date        string
	NResponses  int
	NHousehold  int
	NProvider   int
	TopThemes   []themeRow
	Household   []themeRow
	Provider    []themeRow
	Pairs       []cooccur.Pair
	Comparisons []mixmethods.GroupComparison
	Reliability []reliability.Record
	Exemplars   []themeSection
}

func (r *reporter) Report(
	dir string,
	arts *lifecycle.Artifacts,
) (string, error) {
	path := filepath.Join(dir, BriefFile)

	data, err := prepare(arts)
	if err != nil {
		return "", dataError(err)
	}

	tmpl, err := template.New("brief").Funcs(funcMap()).Parse(briefTmpl)
	if err != nil {
		return "", renderError(path, err)
	}

	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, data); err != nil {
		return "", renderError(path, err)
	}
	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", renderError(path, err)
	}
	return path, nil
}

func prepare(arts *lifecycle.Artifacts) (*briefData, error) {
	if arts == nil || arts.Coding == nil || arts.SecondCoder == nil {
		return nil, fmt.Errorf("artifacts are incomplete")
	}

	data := &briefData{
		Version:    qualcode.Version,
		Date:       time.Now().Format("2006-01-02"),
		NResponses: len(arts.Responses),
	}
	for i := range arts.Responses {
		switch arts.Responses[i].Frame {
		case survey.FrameHousehold:
			data.NHousehold++
		case survey.FrameProvider:
			data.NProvider++
		}
	}

	data.TopThemes = themeRows(arts, "", data.NResponses)
	data.Household = themeRows(arts, survey.FrameHousehold, data.NHousehold)
	data.Provider = themeRows(arts, survey.FrameProvider, data.NProvider)

	data.Pairs = topCooccur(arts.Pairs)
	data.Comparisons = topDeltas(arts.Comparisons)
	data.Reliability = arts.Reliability
	data.Exemplars = quoteSections(arts.Exemplars)
	return data, nil
}

// themeRows aggregates the per-(theme, frame, wave) counts up to one
// row per theme, optionally restricted to a frame, sorted by count
// descending.
func themeRows(
	arts *lifecycle.Artifacts,
	frame survey.Frame,
	total int,
) []themeRow {
	sums := make(map[string]int)
	for _, c := range arts.Counts {
		if frame != "" && c.Frame != frame {
			continue
		}
		sums[c.Theme] += c.Count
	}

	res := make([]themeRow, 0, len(sums))
	for theme, n := range sums {
		pct := math.NaN()
		if total > 0 {
			pct = float64(n) / float64(total)
		}
		res = append(res, themeRow{Theme: theme, Count: n, Percent: pct})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Theme < res[j].Theme
	})
	return res
}

func topCooccur(pairs []cooccur.Pair) []cooccur.Pair {
	res := make([]cooccur.Pair, len(pairs))
	copy(res, pairs)
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		if res[i].ThemeA != res[j].ThemeA {
			return res[i].ThemeA < res[j].ThemeA
		}
		return res[i].ThemeB < res[j].ThemeB
	})
	if len(res) > topPairs {
		res = res[:topPairs]
	}
	return res
}

// topDeltas keeps the comparisons with the largest defined absolute
// deltas. Undefined comparisons are dropped from the highlight table;
// they remain in the exported tables as NA.
func topDeltas(
	comparisons []mixmethods.GroupComparison,
) []mixmethods.GroupComparison {
	var res []mixmethods.GroupComparison
	for _, c := range comparisons {
		if !math.IsNaN(c.Delta) {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		di, dj := math.Abs(res[i].Delta), math.Abs(res[j].Delta)
		if di != dj {
			return di > dj
		}
		if res[i].Theme != res[j].Theme {
			return res[i].Theme < res[j].Theme
		}
		return res[i].Indicator < res[j].Indicator
	})
	if len(res) > topComparisons {
		res = res[:topComparisons]
	}
	return res
}

func quoteSections(quotes []exemplars.Quote) []themeSection {
	var res []themeSection
	for _, q := range quotes {
		if len(res) == 0 || res[len(res)-1].Theme != q.Theme {
			res = append(res, themeSection{Theme: q.Theme})
		}
		last := &res[len(res)-1]
		if len(last.Quotes) < quotesPerTheme {
			last.Quotes = append(last.Quotes, q)
		}
	}
	return res
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"pct": func(v float64) string {
			if math.IsNaN(v) {
				return "insufficient data"
			}
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"num": func(v float64) string {
			if math.IsNaN(v) {
				return "insufficient data"
			}
			return fmt.Sprintf("%.2f", v)
		},
		"frameLabel": func(f survey.Frame) string {
			if f == "" {
				return "all"
			}
			return string(f)
		},
	}
}
