package lifecycle

import (
	"github.com/qualverse/qualcode/pkg/codebook"
	"github.com/qualverse/qualcode/pkg/coding"
	"github.com/qualverse/qualcode/pkg/config"
	"github.com/qualverse/qualcode/pkg/cooccur"
	"github.com/qualverse/qualcode/pkg/exemplars"
	"github.com/qualverse/qualcode/pkg/mixmethods"
	"github.com/qualverse/qualcode/pkg/reliability"
	"github.com/qualverse/qualcode/pkg/survey"
)

// ExemplarsPerTheme is the number of quotes selected per theme.
const ExemplarsPerTheme = 5

// Artifacts holds every derived table of one analytic run. All fields
// are recomputed from scratch each run; none carries state across runs.
type Artifacts struct {
	Responses   []survey.Response
	Coding      *coding.Result
	Counts      []coding.ThemeCount
	Frequencies []coding.ThemeFrequency
	Pairs       []cooccur.Pair
	Comparisons []mixmethods.GroupComparison
	SecondCoder *coding.Matrix
	Reliability []reliability.Record
	Exemplars   []exemplars.Quote
}

// Build runs the full analytic chain over the responses: coding, theme
// counts and frequencies, co-occurrence, mixed-methods comparison,
// second-coder simulation with reliability scoring, and exemplar
// selection. Everything is a pure function of the codebook, the
// responses, and the seeds carried in cfg.
func Build(
	cb *codebook.Codebook,
	responses []survey.Response,
	cfg *config.Config,
) (*Artifacts, error) {
	coded, err := coding.Code(cb, responses, cfg.JobsNumber)
	if err != nil {
		return nil, err
	}

	counts := coding.Counts(coded.Long)
	freqs := coding.Frequencies(counts, responses)
	pairs := cooccur.Pairs(coded.Wide)

	comparisons, err := mixmethods.Compare(
		coded.Wide, responses, mixmethods.Builtin(),
	)
	if err != nil {
		return nil, err
	}

	rates := reliability.Rates{
		Base:      cfg.Reliability.BaseFlip,
		Ambiguous: cfg.Reliability.AmbiguousFlip,
		Overrides: cfg.Reliability.FlipRates,
	}
	src := reliability.NewFlipSource(cfg.Seed)
	second, err := reliability.Simulate(coded.Wide, cb, rates, src)
	if err != nil {
		return nil, err
	}
	relRecords, err := reliability.Score(coded.Wide, second)
	if err != nil {
		return nil, err
	}

	quotes := exemplars.SelectAll(
		coded.Long, cb.IDs(), ExemplarsPerTheme, cfg.Seed,
	)

	return &Artifacts{
		Responses:   responses,
		Coding:      coded,
		Counts:      counts,
		Frequencies: freqs,
		Pairs:       pairs,
		Comparisons: comparisons,
		SecondCoder: second,
		Reliability: relRecords,
		Exemplars:   quotes,
	}, nil
}
