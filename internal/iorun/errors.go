package iorun

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/retroevo/capsid/pkg/errcode"
)

// ReadDirError creates an error for an unreadable record directory or
// file.
func ReadDirError(path string, err error) error {
	msg := `Cannot read downloaded records

<em>Path:</em> %s

<em>How to fix:</em>
  1. Run <em>capsid fetch</em> to download the records first
  2. Check the output directory in the configuration`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ExtractReadDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read records at %s: %w", path, err),
	}
}

// DecodeError creates an error for a record file that is not valid
// JSON.
func DecodeError(path string, err error) error {
	msg := "Cannot decode <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ExtractDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode %s: %w", path, err),
	}
}

// CancelledError creates an error for an interrupted pipeline run.
func CancelledError(err error) error {
	msg := "Pipeline run cancelled"
	return &gn.Error{
		Code: errcode.RunCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("run cancelled: %w", err),
	}
}
