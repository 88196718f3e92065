package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/internal/ioexport"
	"github.com/spf13/cobra"
)

// getAnalyzeCmd returns the analyze command.
func getAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Derive co-occurrence, comparison, and exemplar tables",
		Long: `Recode the responses and write the analysis tables:

  cooccurrence.csv       counts and rates for every theme pair
  group_comparisons.csv  indicator means/rates for responses with and
                         without each theme, with deltas
  exemplars.csv          representative quotes per theme

Boolean indicator deltas are expressed in percentage points. A
statistic that is undefined for an empty group is written as NA,
never as zero.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnalyze()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return analyzeCmd
}

func runAnalyze() error {
	arts, err := buildArtifacts()
	if err != nil {
		return err
	}

	paths, err := ioexport.WriteTables(
		outDir(), arts,
		"cooccurrence", "group_comparisons", "exemplars",
	)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf(
		"<em>Wrote %d analysis tables to %s</em>", len(paths), outDir(),
	)
	gn.Info(msg)
	return nil
}
