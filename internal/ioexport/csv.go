// Package ioexport persists a run's derived tables: a directory of CSV
// files, a single SQLite artifact database, and a JSON run manifest.
// Undefined statistics (NaN) render as NA in CSV and NULL in SQLite;
// they are never written as zero.
package ioexport

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/qualverse/qualcode/internal/ioresponses"
	"github.com/qualverse/qualcode/pkg/coding"
	"github.com/qualverse/qualcode/pkg/lifecycle"
)

// CSV artifact file names inside an output directory.
const (
	LongFile        = "coding_long.csv"
	WideFile        = "coding_wide.csv"
	CountsFile      = "theme_counts.csv"
	FrequenciesFile = "theme_frequencies.csv"
	CooccurFile     = "cooccurrence.csv"
	ComparisonsFile = "group_comparisons.csv"
	SecondCoderFile = "second_coder_wide.csv"
	ReliabilityFile = "reliability.csv"
	ExemplarsFile   = "exemplars.csv"
)

type table struct {
	name  string
	file  string
	write func(w *csv.Writer, arts *lifecycle.Artifacts) error
}

// tables lists every derived CSV artifact; subsets are addressed by
// name from the per-stage CLI commands.
var tables = []table{
	{"coding_long", LongFile, func(w *csv.Writer, a *lifecycle.Artifacts) error {
		return writeLong(w, a.Coding.Long)
	}},
	{"coding_wide", WideFile, func(w *csv.Writer, a *lifecycle.Artifacts) error {
		return writeWide(w, a.Coding.Wide)
	}},
	{"theme_counts", CountsFile, writeCounts},
	{"theme_frequencies", FrequenciesFile, writeFrequencies},
	{"cooccurrence", CooccurFile, writeCooccur},
	{"group_comparisons", ComparisonsFile, writeComparisons},
	{"second_coder", SecondCoderFile, func(w *csv.Writer, a *lifecycle.Artifacts) error {
		return writeWide(w, a.SecondCoder)
	}},
	{"reliability", ReliabilityFile, writeReliability},
	{"exemplars", ExemplarsFile, writeExemplars},
}

type csvExporter struct{}

// NewCSV creates an exporter that writes the responses table and every
// derived table as CSV files.
func NewCSV() lifecycle.Exporter {
	return &csvExporter{}
}

func (e *csvExporter) Export(
	dir string,
	arts *lifecycle.Artifacts,
) (map[string]string, error) {
	respPath := filepath.Join(dir, ioresponses.FileName)
	if err := ioresponses.Write(respPath, arts.Responses); err != nil {
		return nil, err
	}

	paths, err := WriteTables(dir, arts)
	if err != nil {
		return nil, err
	}
	paths["responses"] = respPath
	return paths, nil
}

// WriteTables writes the named derived tables under dir and returns
// their paths keyed by table name. With no names it writes every table.
func WriteTables(
	dir string,
	arts *lifecycle.Artifacts,
	names ...string,
) (map[string]string, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	paths := make(map[string]string)
	for _, t := range tables {
		if len(names) > 0 && !wanted[t.name] {
			continue
		}
		path := filepath.Join(dir, t.file)
		if err := writeCSVFile(path, arts, t.write); err != nil {
			return nil, err
		}
		paths[t.name] = path
	}

	if len(names) > 0 && len(paths) != len(wanted) {
		for n := range wanted {
			if _, ok := paths[n]; !ok {
				return nil, csvError(dir, fmt.Errorf("unknown table %q", n))
			}
		}
	}
	return paths, nil
}

func writeCSVFile(
	path string,
	arts *lifecycle.Artifacts,
	fill func(w *csv.Writer, arts *lifecycle.Artifacts) error,
) error {
	f, err := os.Create(path)
	if err != nil {
		return csvError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w, arts); err != nil {
		return csvError(path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return csvError(path, err)
	}
	return nil
}

func writeLong(w *csv.Writer, long []coding.Assignment) error {
	err := w.Write([]string{
		"respondent_id", "theme", "frame", "wave", "region", "quote",
	})
	if err != nil {
		return err
	}
	for _, a := range long {
		err = w.Write([]string{
			a.ResponseID, a.Theme, string(a.Frame),
			strconv.Itoa(a.Wave), a.Region, a.Quote,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeWide(w *csv.Writer, m *coding.Matrix) error {
	header := append([]string{"respondent_id"}, m.Themes()...)
	if err := w.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for row := 0; row < m.Len(); row++ {
		rec[0] = m.ResponseID(row)
		for col, flag := range m.Row(row) {
			rec[col+1] = "0"
			if flag {
				rec[col+1] = "1"
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeCounts(w *csv.Writer, arts *lifecycle.Artifacts) error {
	err := w.Write([]string{"theme", "frame", "wave", "count"})
	if err != nil {
		return err
	}
	for _, c := range arts.Counts {
		err = w.Write([]string{
			c.Theme, string(c.Frame), strconv.Itoa(c.Wave),
			strconv.Itoa(c.Count),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFrequencies(w *csv.Writer, arts *lifecycle.Artifacts) error {
	err := w.Write([]string{
		"theme", "frame", "wave", "count", "n_responses", "percent",
	})
	if err != nil {
		return err
	}
	for _, f := range arts.Frequencies {
		err = w.Write([]string{
			f.Theme, string(f.Frame), strconv.Itoa(f.Wave),
			strconv.Itoa(f.Count), strconv.Itoa(f.NResponses),
			formatFloat(f.Percent),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeCooccur(w *csv.Writer, arts *lifecycle.Artifacts) error {
	err := w.Write([]string{"theme_a", "theme_b", "count", "rate"})
	if err != nil {
		return err
	}
	for _, p := range arts.Pairs {
		err = w.Write([]string{
			p.ThemeA, p.ThemeB, strconv.Itoa(p.Count), formatFloat(p.Rate),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeComparisons(w *csv.Writer, arts *lifecycle.Artifacts) error {
	err := w.Write([]string{
		"theme", "indicator", "frame", "present_n", "absent_n",
		"present_value", "absent_value", "delta",
	})
	if err != nil {
		return err
	}
	for _, c := range arts.Comparisons {
		err = w.Write([]string{
			c.Theme, c.Indicator, string(c.Frame),
			strconv.Itoa(c.PresentN), strconv.Itoa(c.AbsentN),
			formatFloat(c.PresentValue), formatFloat(c.AbsentValue),
			formatFloat(c.Delta),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeReliability(w *csv.Writer, arts *lifecycle.Artifacts) error {
	err := w.Write([]string{
		"theme", "primary_positive", "second_positive",
		"agreement", "chance", "kappa",
	})
	if err != nil {
		return err
	}
	for _, r := range arts.Reliability {
		err = w.Write([]string{
			r.Theme,
			strconv.Itoa(r.PrimaryPositive), strconv.Itoa(r.SecondPositive),
			formatFloat(r.Agreement), formatFloat(r.Chance),
			formatFloat(r.Kappa),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeExemplars(w *csv.Writer, arts *lifecycle.Artifacts) error {
	err := w.Write([]string{"theme", "frame", "wave", "region", "quote"})
	if err != nil {
		return err
	}
	for _, q := range arts.Exemplars {
		err = w.Write([]string{
			q.Theme, string(q.Frame), strconv.Itoa(q.Wave),
			q.Region, q.Quote,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// formatFloat renders a statistic for CSV; undefined values become NA.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
