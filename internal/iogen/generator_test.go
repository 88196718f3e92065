package iogen_test

import (
	"testing"

	"github.com/qualverse/qualcode/internal/iogen"
	"github.com/qualverse/qualcode/pkg/config"
	"github.com/qualverse/qualcode/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genConfig(n, waves int, seed int64) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptGenerateResponses(n),
		config.OptGenerateWaves(waves),
		config.OptSeed(seed),
	})
	return cfg
}

func TestGenerateShape(t *testing.T) {
	cfg := genConfig(200, 2, 42)
	res, err := iogen.New().Generate(cfg)
	require.NoError(t, err)
	require.Len(t, res, 200)

	// Generated responses pass the same validation the coder applies.
	require.NoError(t, survey.ValidateAll(res))

	frames := make(map[survey.Frame]int)
	months := make(map[string]bool)
	for i := range res {
		r := &res[i]
		frames[r.Frame]++
		months[r.Month] = true

		assert.NotEmpty(t, r.Text)
		assert.NotEmpty(t, r.Region)
		assert.GreaterOrEqual(t, r.Wave, 1)
		assert.LessOrEqual(t, r.Wave, 2)

		assert.GreaterOrEqual(t, r.Indicators.StressScore, 0.0)
		assert.LessOrEqual(t, r.Indicators.StressScore, 40.0)
		assert.GreaterOrEqual(t, r.Indicators.ClosureRisk, 0)
		assert.LessOrEqual(t, r.Indicators.ClosureRisk, 3)
	}

	// Both frames appear in any non-trivial sample.
	assert.Greater(t, frames[survey.FrameHousehold], 0)
	assert.Greater(t, frames[survey.FrameProvider], 0)
	assert.LessOrEqual(t, len(months), 2)
}

func TestGenerateFrameScopedIndicators(t *testing.T) {
	cfg := genConfig(300, 3, 42)
	res, err := iogen.New().Generate(cfg)
	require.NoError(t, err)

	for i := range res {
		r := &res[i]
		switch r.Frame {
		case survey.FrameHousehold:
			assert.Equal(t, 0, r.Indicators.ClosureRisk,
				"closure risk is provider-only")
			assert.False(t, r.Indicators.ClosureRiskHigh)
		case survey.FrameProvider:
			assert.False(t, r.Indicators.EmploymentDisruption,
				"employment disruption is household-only")
			assert.Equal(
				t, r.Indicators.ClosureRisk >= 2,
				r.Indicators.ClosureRiskHigh,
			)
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	a, err := iogen.New().Generate(genConfig(100, 3, 7))
	require.NoError(t, err)
	b, err := iogen.New().Generate(genConfig(100, 3, 7))
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed reproduces the table bit-for-bit")

	c, err := iogen.New().Generate(genConfig(100, 3, 8))
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seed gives a different table")
}

func TestGenerateRejectsBadSettings(t *testing.T) {
	// Option validation keeps the config valid, so malformed settings
	// have to be injected directly.
	cfg := config.New()
	cfg.Generate.Responses = 0
	_, err := iogen.New().Generate(cfg)
	assert.Error(t, err)

	cfg = config.New()
	cfg.Generate.Waves = 5
	_, err = iogen.New().Generate(cfg)
	assert.Error(t, err)
}
