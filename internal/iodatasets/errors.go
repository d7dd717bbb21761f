package iodatasets

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/retroevo/capsid/pkg/errcode"
)

// DatasetsConfigError creates an error for when datasets.yaml
// cannot be loaded.
func DatasetsConfigError(path string, err error) error {
	msg := `Cannot load datasets configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to regenerate the default one`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.DatasetsConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load datasets config: %w", err),
	}
}

// NoDatasetsError creates an error for when no datasets match
// the requested IDs.
func NoDatasetsError(requestedIDs []int) error {
	msg := `No datasets found matching requested IDs

<em>Requested IDs:</em> %v

<em>How to fix:</em>
  1. Check available datasets: review datasets.yaml
  2. Verify dataset IDs are correct`

	vars := []any{requestedIDs}

	return &gn.Error{
		Code: errcode.DatasetsNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"no datasets found matching IDs: %v",
			requestedIDs),
	}
}
