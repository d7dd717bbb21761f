package iowrite

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/retroevo/capsid/pkg/errcode"
)

func WriteJSONError(path string, err error) error {
	msg := "Cannot write JSON output to <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.WriteJSONError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write JSON to %s: %w", path, err),
	}
}

func WriteTSVError(path string, err error) error {
	msg := "Cannot write TSV output to <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.WriteTSVError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write TSV to %s: %w", path, err),
	}
}

func WriteFASTAError(path string, err error) error {
	msg := "Cannot write FASTA output to <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.WriteFASTAError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write FASTA to %s: %w", path, err),
	}
}
