package iocodebook

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/pkg/errcode"
)

// CodebookConfigError creates an error for when codebook.yaml
// cannot be loaded.
func CodebookConfigError(path string, err error) error {
	msg := `Cannot load the codebook

<em>Codebook file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Empty theme list or a theme without triggers

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to restore the default codebook on next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.CodebookConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load codebook: %w", err),
	}
}
