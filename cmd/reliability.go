package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/internal/ioexport"
	"github.com/qualverse/qualcode/pkg/config"
	"github.com/spf13/cobra"
)

// getReliabilityCmd returns the reliability command.
func getReliabilityCmd() *cobra.Command {
	var (
		baseFlip      float64
		ambiguousFlip float64
		flips         []string
	)

	reliabilityCmd := &cobra.Command{
		Use:   "reliability",
		Short: "Simulate a second coder and score agreement",
		Long: `Simulate an independent second coder over the coding matrix and
write the reliability tables:

  second_coder_wide.csv  the simulated coder's 0/1 matrix
  reliability.csv        per-theme percent agreement and Cohen's kappa

The simulation flips each (response, theme) label independently with a
small probability: base_flip for ordinary themes, ambiguous_flip for
themes the codebook marks ambiguous, or a per-theme override. Kappa is
NA when both coders are unanimous; unanimity leaves no variance to
correct for chance.

Examples:
  # Defaults from config.yaml
  qualcode reliability

  # Noisier simulation
  qualcode reliability --base-flip 0.1 --ambiguous-flip 0.15

  # Per-theme override
  qualcode reliability --flip AFFORDABILITY=0.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReliability(cmd, baseFlip, ambiguousFlip, flips)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	reliabilityCmd.Flags().Float64Var(
		&baseFlip, "base-flip", 0,
		"flip probability for ordinary themes",
	)
	reliabilityCmd.Flags().Float64Var(
		&ambiguousFlip, "ambiguous-flip", 0,
		"flip probability for ambiguous themes",
	)
	reliabilityCmd.Flags().StringSliceVar(
		&flips, "flip", nil,
		"per-theme flip override, THEME=RATE (repeatable)",
	)

	return reliabilityCmd
}

func runReliability(
	cmd *cobra.Command,
	baseFlip, ambiguousFlip float64,
	flips []string,
) error {
	var relOpts []config.Option
	if cmd.Flags().Changed("base-flip") {
		relOpts = append(relOpts, config.OptReliabilityBaseFlip(baseFlip))
	}
	if cmd.Flags().Changed("ambiguous-flip") {
		relOpts = append(
			relOpts, config.OptReliabilityAmbiguousFlip(ambiguousFlip),
		)
	}
	if len(flips) > 0 {
		rates, err := parseFlips(flips)
		if err != nil {
			return err
		}
		relOpts = append(relOpts, config.OptReliabilityFlipRates(rates))
	}
	if len(relOpts) > 0 {
		cfg.Update(relOpts)
	}

	arts, err := buildArtifacts()
	if err != nil {
		return err
	}

	_, err = ioexport.WriteTables(
		outDir(), arts, "second_coder", "reliability",
	)
	if err != nil {
		return err
	}

	for _, rec := range arts.Reliability {
		slog.Info(
			"Reliability",
			"theme", rec.Theme,
			"agreement", rec.Agreement,
			"kappa", rec.Kappa,
		)
	}
	gn.Info("<em>Wrote second-coder and reliability tables</em>")
	return nil
}

// parseFlips parses THEME=RATE pairs from the --flip flag.
func parseFlips(flips []string) (map[string]float64, error) {
	res := make(map[string]float64, len(flips))
	for _, f := range flips {
		theme, rateStr, ok := strings.Cut(f, "=")
		if !ok || theme == "" {
			return nil, badFlipFlag(f, nil)
		}
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return nil, badFlipFlag(f, err)
		}
		res[theme] = rate
	}
	return res, nil
}

func badFlipFlag(val string, err error) error {
	gn.Warn(
		"<warn>Cannot parse --flip value '%s'; expected THEME=RATE</warn>",
		val,
	)
	if err == nil {
		err = fmt.Errorf("malformed value")
	}
	return fmt.Errorf("invalid --flip %q: %w", val, err)
}
