package ioexport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/errcode"
)

func csvError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ExportCSVError,
		Msg: `<err>Cannot write CSV artifact.</err>
   File: <em>%s</em>
   Check that the output directory exists and is writable.`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write CSV artifact: %w", err),
	}
}

func sqliteError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ExportSQLiteError,
		Msg: `<err>Cannot write SQLite artifact database.</err>
   File: <em>%s</em>
   Remove a stale database file from a previous run and retry.`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write SQLite database: %w", err),
	}
}

func manifestError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ExportManifestError,
		Msg: `<err>Cannot write run manifest.</err>
   File: <em>%s</em>`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write run manifest: %w", err),
	}
}
