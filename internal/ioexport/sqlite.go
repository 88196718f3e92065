package ioexport

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnuuid"
	"github.com/qualverse/qualcode/pkg/lifecycle"

	_ "modernc.org/sqlite"
)

// DBFile is the SQLite artifact database inside an output directory.
const DBFile = "qualcode.sqlite"

type sqliteExporter struct{}

// NewSQLite creates an exporter that writes every table into a single
// SQLite database, convenient for ad-hoc SQL over a run's artifacts.
func NewSQLite() lifecycle.Exporter {
	return &sqliteExporter{}
}

var schema = []string{
	`CREATE TABLE responses (
  respondent_id TEXT PRIMARY KEY,
  respondent_uuid TEXT NOT NULL,
  frame TEXT NOT NULL,
  wave INTEGER NOT NULL,
  survey_month TEXT NOT NULL,
  region TEXT NOT NULL,
  text TEXT NOT NULL,
  stress_score REAL NOT NULL,
  food_insecurity INTEGER NOT NULL,
  employment_disruption INTEGER NOT NULL,
  closure_risk INTEGER NOT NULL,
  closure_risk_high INTEGER NOT NULL
)`,
	`CREATE TABLE coding_long (
  respondent_id TEXT NOT NULL REFERENCES responses (respondent_id),
  theme TEXT NOT NULL,
  frame TEXT NOT NULL,
  wave INTEGER NOT NULL,
  region TEXT NOT NULL,
  quote TEXT NOT NULL,
  PRIMARY KEY (respondent_id, theme)
)`,
	`CREATE TABLE theme_frequencies (
  theme TEXT NOT NULL,
  frame TEXT NOT NULL,
  wave INTEGER NOT NULL,
  count INTEGER NOT NULL,
  n_responses INTEGER NOT NULL,
  percent REAL,
  PRIMARY KEY (theme, frame, wave)
)`,
	`CREATE TABLE cooccurrence (
  theme_a TEXT NOT NULL,
  theme_b TEXT NOT NULL,
  count INTEGER NOT NULL,
  rate REAL,
  PRIMARY KEY (theme_a, theme_b)
)`,
	`CREATE TABLE group_comparisons (
  theme TEXT NOT NULL,
  indicator TEXT NOT NULL,
  frame TEXT NOT NULL,
  present_n INTEGER NOT NULL,
  absent_n INTEGER NOT NULL,
  present_value REAL,
  absent_value REAL,
  delta REAL,
  PRIMARY KEY (theme, indicator)
)`,
	`CREATE TABLE reliability (
  theme TEXT PRIMARY KEY,
  primary_positive INTEGER NOT NULL,
  second_positive INTEGER NOT NULL,
  agreement REAL,
  chance REAL,
  kappa REAL
)`,
	`CREATE TABLE exemplars (
  theme TEXT NOT NULL,
  frame TEXT NOT NULL,
  wave INTEGER NOT NULL,
  region TEXT NOT NULL,
  quote TEXT NOT NULL
)`,
}

func (e *sqliteExporter) Export(
	dir string,
	arts *lifecycle.Artifacts,
) (map[string]string, error) {
	path := filepath.Join(dir, DBFile)
	// A leftover database from a previous run would make CREATE TABLE
	// fail; each run rebuilds the artifact database from scratch.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, sqliteError(path, err)
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return nil, sqliteError(path, err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err = tx.Exec(stmt); err != nil {
			return nil, sqliteError(path, err)
		}
	}

	if err = insertResponses(tx, arts); err != nil {
		return nil, sqliteError(path, err)
	}
	if err = insertDerived(tx, arts); err != nil {
		return nil, sqliteError(path, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, sqliteError(path, err)
	}

	slog.Info(
		"Wrote SQLite artifact database",
		"path", path,
		"responses", humanize.Comma(int64(len(arts.Responses))),
	)
	return map[string]string{"sqlite": path}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, sqliteError(path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, sqliteError(path, err)
	}
	return db, nil
}

func insertResponses(tx *sql.Tx, arts *lifecycle.Artifacts) error {
	stmt, err := tx.Prepare(
		`INSERT INTO responses VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	bar := pb.Full.Start(len(arts.Responses))
	bar.Set("prefix", "Inserting responses: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for i := range arts.Responses {
		r := &arts.Responses[i]
		_, err = stmt.Exec(
			r.ID,
			gnuuid.New(r.ID).String(),
			string(r.Frame),
			r.Wave,
			r.Month,
			r.Region,
			r.Text,
			r.Indicators.StressScore,
			boolInt(r.Indicators.FoodInsecurity),
			boolInt(r.Indicators.EmploymentDisruption),
			r.Indicators.ClosureRisk,
			boolInt(r.Indicators.ClosureRiskHigh),
		)
		if err != nil {
			return fmt.Errorf("response %s: %w", r.ID, err)
		}
		bar.Increment()
	}
	return nil
}

func insertDerived(tx *sql.Tx, arts *lifecycle.Artifacts) error {
	stmt, err := tx.Prepare(
		`INSERT INTO coding_long VALUES (?,?,?,?,?,?)`,
	)
	if err != nil {
		return err
	}
	for _, a := range arts.Coding.Long {
		_, err = stmt.Exec(
			a.ResponseID, a.Theme, string(a.Frame), a.Wave, a.Region, a.Quote,
		)
		if err != nil {
			stmt.Close()
			return err
		}
	}
	stmt.Close()

	stmt, err = tx.Prepare(
		`INSERT INTO theme_frequencies VALUES (?,?,?,?,?,?)`,
	)
	if err != nil {
		return err
	}
	for _, f := range arts.Frequencies {
		_, err = stmt.Exec(
			f.Theme, string(f.Frame), f.Wave, f.Count, f.NResponses,
			nullFloat(f.Percent),
		)
		if err != nil {
			stmt.Close()
			return err
		}
	}
	stmt.Close()

	stmt, err = tx.Prepare(`INSERT INTO cooccurrence VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	for _, p := range arts.Pairs {
		_, err = stmt.Exec(p.ThemeA, p.ThemeB, p.Count, nullFloat(p.Rate))
		if err != nil {
			stmt.Close()
			return err
		}
	}
	stmt.Close()

	stmt, err = tx.Prepare(
		`INSERT INTO group_comparisons VALUES (?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return err
	}
	for _, c := range arts.Comparisons {
		_, err = stmt.Exec(
			c.Theme, c.Indicator, string(c.Frame), c.PresentN, c.AbsentN,
			nullFloat(c.PresentValue), nullFloat(c.AbsentValue),
			nullFloat(c.Delta),
		)
		if err != nil {
			stmt.Close()
			return err
		}
	}
	stmt.Close()

	stmt, err = tx.Prepare(`INSERT INTO reliability VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	for _, r := range arts.Reliability {
		_, err = stmt.Exec(
			r.Theme, r.PrimaryPositive, r.SecondPositive,
			nullFloat(r.Agreement), nullFloat(r.Chance), nullFloat(r.Kappa),
		)
		if err != nil {
			stmt.Close()
			return err
		}
	}
	stmt.Close()

	stmt, err = tx.Prepare(`INSERT INTO exemplars VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, q := range arts.Exemplars {
		_, err = stmt.Exec(
			q.Theme, string(q.Frame), q.Wave, q.Region, q.Quote,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullFloat maps NaN to SQL NULL so undefined statistics stay
// distinguishable from zero in the database too.
func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
