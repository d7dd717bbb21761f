package iocluster

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/retroevo/capsid/pkg/errcode"
)

// ToolNotFoundError creates an error for when the MMseqs2 binary is
// not on PATH.
func ToolNotFoundError(name string, err error) error {
	msg := `Cannot find the MMseqs2 binary

<em>Binary:</em> %s

<em>How to fix:</em>
  1. Install MMseqs2: <em>https://github.com/soedinglab/MMseqs2</em>
  2. Or set its location in the configuration file`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.ClusterToolNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("mmseqs binary %q not found: %w", name, err),
	}
}

// ToolFailedError creates an error for a non-zero MMseqs2 exit.
func ToolFailedError(binPath, stderr string, err error) error {
	msg := `MMseqs2 failed

<em>Binary:</em> %s

<em>How to fix:</em>
  1. Re-run with <em>--log-level=debug</em> to see the full command
  2. Check the MMseqs2 error output in the log`

	vars := []any{binPath}

	return &gn.Error{
		Code: errcode.ClusterToolFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("mmseqs failed: %w; stderr: %s",
			err, stderr),
	}
}

// OutputMissingError creates an error for when MMseqs2 exits cleanly
// but an expected output file is absent.
func OutputMissingError(path string, err error) error {
	msg := "MMseqs2 did not produce <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ClusterOutputMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("expected cluster output %s: %w", path, err),
	}
}

// TableReadError creates an error for an unreadable cluster table.
func TableReadError(path string, err error) error {
	msg := "Cannot read the cluster table <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ClusterTableReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read cluster table %s: %w", path, err),
	}
}
