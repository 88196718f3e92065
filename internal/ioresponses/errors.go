package ioresponses

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/errcode"
)

func readError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ResponsesReadError,
		Msg: `<err>Cannot read responses table.</err>
   File: <em>%s</em>
   Run <em>qualcode generate</em> first, or point <em>--out-dir</em>
   at a directory holding a responses.csv written by it.`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read responses: %w", err),
	}
}

func writeError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ResponsesWriteError,
		Msg: `<err>Cannot write responses table.</err>
   File: <em>%s</em>
   Check that the output directory exists and is writable.`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write responses: %w", err),
	}
}
