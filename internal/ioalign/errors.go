package ioalign

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/retroevo/capsid/pkg/errcode"
)

// AlignToolNotFoundError creates an error for when the MAFFT binary is
// not on PATH.
func AlignToolNotFoundError(name string, err error) error {
	msg := `Cannot find the MAFFT binary

<em>Binary:</em> %s

<em>How to fix:</em>
  1. Install MAFFT: <em>https://mafft.cbrc.jp/alignment/software/</em>
  2. Or set its location in the configuration file`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.AlignToolNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("mafft binary %q not found: %w", name, err),
	}
}

// AlignToolFailedError creates an error for a non-zero MAFFT exit.
func AlignToolFailedError(binPath, stderr string, err error) error {
	msg := `MAFFT failed

<em>Binary:</em> %s

<em>How to fix:</em>
  1. Check the MAFFT error output in the log
  2. Verify the input FASTA file is valid`

	vars := []any{binPath}

	return &gn.Error{
		Code: errcode.AlignToolFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("mafft failed: %w; stderr: %s", err, stderr),
	}
}

// AlignOutputMissingError creates an error for an empty or missing
// alignment file.
func AlignOutputMissingError(path string, err error) error {
	msg := "MAFFT did not produce an alignment at <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.AlignOutputMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("expected alignment %s: %w", path, err),
	}
}

// TrimToolNotFoundError creates an error for when the ClipKit binary
// is not on PATH.
func TrimToolNotFoundError(name string, err error) error {
	msg := `Cannot find the ClipKit binary

<em>Binary:</em> %s

<em>How to fix:</em>
  1. Install ClipKit: <em>pip install clipkit</em>
  2. Or set its location in the configuration file`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.TrimToolNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("clipkit binary %q not found: %w", name, err),
	}
}

// TrimToolFailedError creates an error for a non-zero ClipKit exit.
func TrimToolFailedError(binPath, stderr string, err error) error {
	msg := `ClipKit failed

<em>Binary:</em> %s

<em>How to fix:</em>
  1. Check the ClipKit error output in the log
  2. Verify the alignment file is valid`

	vars := []any{binPath}

	return &gn.Error{
		Code: errcode.TrimToolFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("clipkit failed: %w; stderr: %s", err, stderr),
	}
}

// TrimOutputMissingError creates an error for an empty or missing
// trimmed alignment.
func TrimOutputMissingError(path string, err error) error {
	msg := "ClipKit did not produce a trimmed alignment at <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.TrimOutputMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("expected trimmed alignment %s: %w", path, err),
	}
}
