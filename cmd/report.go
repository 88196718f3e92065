package cmd

import (
	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/internal/ioreport"
	"github.com/spf13/cobra"
)

// getReportCmd returns the report command.
func getReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Render the markdown analysis brief",
		Long: `Render analysis_brief.md in the output directory: top themes
overall and per frame, the most frequent theme pairs, the largest
mixed-methods deltas, simulated reliability per theme, exemplar
quotes, and a methods note.

Undefined statistics render as "insufficient data"; the brief never
shows a zero where no data exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReport()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return reportCmd
}

func runReport() error {
	arts, err := buildArtifacts()
	if err != nil {
		return err
	}

	path, err := ioreport.New().Report(outDir(), arts)
	if err != nil {
		return err
	}

	gn.Info("<em>Wrote analysis brief to %s</em>", path)
	return nil
}
