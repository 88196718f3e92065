package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/qualverse/qualcode/internal/ioexport"
	"github.com/qualverse/qualcode/internal/iogen"
	"github.com/qualverse/qualcode/internal/ioreport"
	"github.com/qualverse/qualcode/internal/ioresponses"
	"github.com/qualverse/qualcode/pkg/config"
	"github.com/qualverse/qualcode/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var (
		responses int
		waves     int
		noSQLite  bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the full pipeline end to end",
		Long: `Generate responses, code them, derive every analysis table,
export CSV and SQLite artifacts with a run manifest, and render the
markdown brief - all in one pass with one seed.

Examples:
  # Full pipeline with defaults
  qualcode run

  # Reproducible small run into ./out
  qualcode run -n 500 --seed 7 -o ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAll(cmd, responses, waves, noSQLite)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	runCmd.Flags().IntVarP(
		&responses, "responses", "n", 0,
		"number of synthetic responses",
	)
	runCmd.Flags().IntVarP(
		&waves, "waves", "w", 0,
		"number of survey waves (1-3)",
	)
	runCmd.Flags().BoolVar(
		&noSQLite, "no-sqlite", false,
		"skip the SQLite artifact database",
	)

	return runCmd
}

func runAll(cmd *cobra.Command, responses, waves int, noSQLite bool) error {
	var runOpts []config.Option
	if cmd.Flags().Changed("responses") {
		runOpts = append(runOpts, config.OptGenerateResponses(responses))
	}
	if cmd.Flags().Changed("waves") {
		runOpts = append(runOpts, config.OptGenerateWaves(waves))
	}
	if len(runOpts) > 0 {
		cfg.Update(runOpts)
	}

	start := time.Now()
	dir := outDir()

	res, err := iogen.New().Generate(cfg)
	if err != nil {
		return err
	}
	respPath := filepath.Join(dir, ioresponses.FileName)
	if err = ioresponses.Write(respPath, res); err != nil {
		return err
	}

	cb, err := loadCodebook()
	if err != nil {
		return err
	}

	arts, err := lifecycle.Build(cb, res, cfg)
	if err != nil {
		return err
	}

	paths, err := ioexport.WriteTables(dir, arts)
	if err != nil {
		return err
	}
	paths["responses"] = respPath

	if !noSQLite {
		dbPaths, err := ioexport.NewSQLite().Export(dir, arts)
		if err != nil {
			return err
		}
		for k, v := range dbPaths {
			paths[k] = v
		}
	}

	briefPath, err := ioreport.New().Report(dir, arts)
	if err != nil {
		return err
	}
	paths["brief"] = briefPath

	if _, err = ioexport.WriteManifest(dir, cfg, paths); err != nil {
		return err
	}

	msg := fmt.Sprintf(
		`Run complete in %s
   <em>%s</em> responses, <em>%s</em> theme assignments
   Artifacts: <em>%s</em>`,
		gnfmt.TimeString(time.Since(start).Seconds()),
		humanize.Comma(int64(len(res))),
		humanize.Comma(int64(len(arts.Coding.Long))),
		dir,
	)
	gn.Info(msg)
	return nil
}
