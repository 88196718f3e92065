// Package iogen generates the synthetic survey responses that feed the
// analytic engine: household and provider frames, multi-wave metadata,
// narrative text composed from per-theme snippets, and correlated
// quantitative indicators. Everything derives from the run seed, so a
// run is reproducible bit-for-bit.
package iogen

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/config"
	"github.com/qualverse/qualcode/pkg/errcode"
	"github.com/qualverse/qualcode/pkg/lifecycle"
	"github.com/qualverse/qualcode/pkg/survey"
)

type generator struct{}

// New creates a seeded synthetic response generator.
func New() lifecycle.Generator {
	return &generator{}
}

// Generate creates cfg.Generate.Responses synthetic responses over
// cfg.Generate.Waves waves. Each response composes 1-3 theme snippets
// into its text; indicators are simulated from the same composed theme
// set, so quantitative signals correlate with qualitative content the
// way the survey instrument intends.
func (g *generator) Generate(cfg *config.Config) ([]survey.Response, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	seed := uint64(cfg.Seed)
	rng := rand.New(rand.NewPCG(seed, seed))
	months := surveyMonths[:cfg.Generate.Waves]

	slog.Info(
		"Generating synthetic responses",
		"responses", cfg.Generate.Responses,
		"waves", cfg.Generate.Waves,
		"seed", cfg.Seed,
	)

	bar := pb.Full.Start(cfg.Generate.Responses)
	bar.Set("prefix", "Generating responses: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	res := make([]survey.Response, cfg.Generate.Responses)
	for i := range res {
		frame := pickFrame(rng)
		wave := 1 + rng.IntN(cfg.Generate.Waves)
		region := states[rng.IntN(len(states))]
		text, themes := composeText(frame, rng)

		r := survey.Response{
			ID:     fmt.Sprintf("R%05d", i+1),
			Text:   text,
			Frame:  frame,
			Wave:   wave,
			Month:  months[wave-1],
			Region: region,
		}
		r.Indicators = simulateIndicators(frame, themes, rng)
		res[i] = r
		bar.Increment()
	}

	return res, nil
}

func validate(cfg *config.Config) error {
	if cfg.Generate.Responses <= 0 {
		return generateConfigError(fmt.Errorf(
			"responses must be positive, got %d", cfg.Generate.Responses,
		))
	}
	if cfg.Generate.Waves < 1 || cfg.Generate.Waves > len(surveyMonths) {
		return generateConfigError(fmt.Errorf(
			"waves must be between 1 and %d, got %d",
			len(surveyMonths), cfg.Generate.Waves,
		))
	}
	return nil
}

func pickFrame(rng *rand.Rand) survey.Frame {
	if rng.Float64() < householdShare {
		return survey.FrameHousehold
	}
	return survey.FrameProvider
}

// composeText joins 1-3 distinct theme snippets appropriate to the
// frame and returns the text plus the set of themes it was composed
// from.
func composeText(
	frame survey.Frame,
	rng *rand.Rand,
) (string, map[string]bool) {
	count := 1 + rng.IntN(3)
	perm := rng.Perm(len(snippetThemes))

	themes := make(map[string]bool, count)
	var text string
	for _, idx := range perm[:count] {
		theme := snippetThemes[idx]
		themes[theme] = true
		phrases := themeSnippets[theme][frame]
		snippet := phrases[rng.IntN(len(phrases))]
		if text == "" {
			text = snippet
		} else {
			text += " " + snippet
		}
	}
	return text, themes
}

func generateConfigError(err error) error {
	return &gn.Error{
		Code: errcode.GenerateConfigError,
		Msg: `<err>Invalid generator settings.</err>
   <em>responses</em> must be positive and <em>waves</em> within 1-3.`,
		Err: err,
	}
}
