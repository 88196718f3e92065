package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create dir: %w", fn, err),
	}
}

func CopyFileError(path string, err error) error {
	msg := "Cannot write file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write file: %w", fn, err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read file: %w", fn, err),
	}
}
