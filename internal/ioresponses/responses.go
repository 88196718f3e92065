// Package ioresponses reads and writes the raw responses table, the
// single CSV every derived artifact is recomputed from.
package ioresponses

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/qualverse/qualcode/pkg/survey"
)

// FileName is the raw responses table inside an output directory.
const FileName = "responses.csv"

var header = []string{
	"respondent_id", "frame", "wave", "survey_month", "region", "text",
	"stress_score", "food_insecurity", "employment_disruption",
	"closure_risk", "closure_risk_high",
}

// Write saves responses as CSV at path. The column set is stable so
// downstream runs and external tools can rely on it.
func Write(path string, responses []survey.Response) error {
	f, err := os.Create(path)
	if err != nil {
		return writeError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return writeError(path, err)
	}

	for i := range responses {
		r := &responses[i]
		rec := []string{
			r.ID,
			string(r.Frame),
			strconv.Itoa(r.Wave),
			r.Month,
			r.Region,
			r.Text,
			strconv.FormatFloat(r.Indicators.StressScore, 'f', 2, 64),
			formatBool(r.Indicators.FoodInsecurity),
			formatBool(r.Indicators.EmploymentDisruption),
			strconv.Itoa(r.Indicators.ClosureRisk),
			formatBool(r.Indicators.ClosureRiskHigh),
		}
		if err := w.Write(rec); err != nil {
			return writeError(path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return writeError(path, err)
	}
	return nil
}

// Read loads a raw responses table written by Write and validates the
// result, so a truncated or hand-edited file fails early instead of
// skewing downstream tables.
func Read(path string) ([]survey.Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, readError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, readError(path, err)
	}
	if len(records) == 0 {
		return nil, readError(path, fmt.Errorf("file is empty"))
	}
	if len(records[0]) != len(header) {
		return nil, readError(path, fmt.Errorf(
			"expected %d columns, got %d", len(header), len(records[0]),
		))
	}

	res := make([]survey.Response, 0, len(records)-1)
	for i, rec := range records[1:] {
		resp, err := parseRecord(rec)
		if err != nil {
			return nil, readError(path, fmt.Errorf("row %d: %w", i+2, err))
		}
		res = append(res, resp)
	}

	if err := survey.ValidateAll(res); err != nil {
		return nil, err
	}
	return res, nil
}

func parseRecord(rec []string) (survey.Response, error) {
	var res survey.Response

	wave, err := strconv.Atoi(rec[2])
	if err != nil {
		return res, fmt.Errorf("bad wave %q", rec[2])
	}
	stress, err := strconv.ParseFloat(rec[6], 64)
	if err != nil {
		return res, fmt.Errorf("bad stress_score %q", rec[6])
	}
	food, err := parseBool(rec[7])
	if err != nil {
		return res, err
	}
	employment, err := parseBool(rec[8])
	if err != nil {
		return res, err
	}
	closure, err := strconv.Atoi(rec[9])
	if err != nil {
		return res, fmt.Errorf("bad closure_risk %q", rec[9])
	}
	closureHigh, err := parseBool(rec[10])
	if err != nil {
		return res, err
	}

	res = survey.Response{
		ID:     rec[0],
		Frame:  survey.Frame(rec[1]),
		Wave:   wave,
		Month:  rec[3],
		Region: rec[4],
		Text:   rec[5],
		Indicators: survey.Indicators{
			StressScore:          stress,
			FoodInsecurity:       food,
			EmploymentDisruption: employment,
			ClosureRisk:          closure,
			ClosureRiskHigh:      closureHigh,
		},
	}
	return res, nil
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("bad boolean %q", s)
}
