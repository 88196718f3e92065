package ioreport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/errcode"
)

func dataError(err error) error {
	return &gn.Error{
		Code: errcode.ReportDataError,
		Msg: `<err>Cannot assemble data for the brief.</err>
   Run the analysis first so all tables exist.`,
		Err: fmt.Errorf("cannot assemble brief data: %w", err),
	}
}

func renderError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReportRenderError,
		Msg: `<err>Cannot render the analysis brief.</err>
   File: <em>%s</em>`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot render brief: %w", err),
	}
}
