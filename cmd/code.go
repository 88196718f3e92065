package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/internal/ioexport"
	"github.com/spf13/cobra"
)

// getCodeCmd returns the code command.
func getCodeCmd() *cobra.Command {
	codeCmd := &cobra.Command{
		Use:   "code",
		Short: "Code responses against the codebook",
		Long: `Code the responses.csv table against the codebook and write the
coding tables:

  coding_long.csv        one row per (response, theme) assignment
  coding_wide.csv        one row per response, 0/1 column per theme
  theme_counts.csv       counts per (theme, frame, wave)
  theme_frequencies.csv  counts with cell totals and percentages

A theme is assigned when any of its normalized trigger phrases occurs
as a substring of the normalized response text. Themes are independent;
a response can carry any number of them, including none.

The codebook lives in ~/.config/qualcode/codebook.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCode()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return codeCmd
}

func runCode() error {
	arts, err := buildArtifacts()
	if err != nil {
		return err
	}

	_, err = ioexport.WriteTables(
		outDir(), arts,
		"coding_long", "coding_wide", "theme_counts", "theme_frequencies",
	)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf(
		"<em>Coded %s responses: %s theme assignments</em>",
		humanize.Comma(int64(len(arts.Responses))),
		humanize.Comma(int64(len(arts.Coding.Long))),
	)
	gn.Info(msg)
	return nil
}
