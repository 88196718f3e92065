package cmd

import (
	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/internal/ioexport"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	var noSQLite bool

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tables as CSV and a SQLite database",
		Long: `Recompute every table from responses.csv and export the complete
set: all CSV artifacts, a single SQLite database (qualcode.sqlite)
holding the same tables for ad-hoc SQL, and a run_manifest.json
recording the seed and settings that produced the artifacts.

NaN statistics are NA in CSV and NULL in SQLite.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(noSQLite)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	exportCmd.Flags().BoolVar(
		&noSQLite, "no-sqlite", false,
		"skip the SQLite artifact database",
	)

	return exportCmd
}

func runExport(noSQLite bool) error {
	arts, err := buildArtifacts()
	if err != nil {
		return err
	}

	dir := outDir()
	paths, err := ioexport.NewCSV().Export(dir, arts)
	if err != nil {
		return err
	}

	if !noSQLite {
		dbPaths, err := ioexport.NewSQLite().Export(dir, arts)
		if err != nil {
			return err
		}
		for k, v := range dbPaths {
			paths[k] = v
		}
	}

	manifest, err := ioexport.WriteManifest(dir, cfg, paths)
	if err != nil {
		return err
	}

	gn.Info("<em>Exported %d artifacts; manifest at %s</em>",
		len(paths), manifest)
	return nil
}
