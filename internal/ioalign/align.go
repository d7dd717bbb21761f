// Package ioalign produces a trimmed multiple sequence alignment from
// the representative sequences of a clustering run. It shells out to
// MAFFT for the alignment and to ClipKit for trimming.
package ioalign

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/gnsys"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/pipeline"
)

type aligner struct {
	cfg *config.Config
}

// New creates an Aligner that runs the MAFFT and ClipKit binaries
// configured in cfg.
func New(cfg *config.Config) pipeline.Aligner {
	return &aligner{cfg: cfg}
}

func (a *aligner) Prepare(
	ctx context.Context,
	fastaPath, outDir string,
) (*pipeline.AlignResult, error) {
	if err := gnsys.MakeDir(outDir); err != nil {
		return nil, AlignToolFailedError(a.cfg.Align.MafftPath, "", err)
	}

	base := strings.TrimSuffix(
		filepath.Base(fastaPath), filepath.Ext(fastaPath),
	)
	res := &pipeline.AlignResult{
		AlignedPath: filepath.Join(outDir, base+"_aligned.fasta"),
		TrimmedPath: filepath.Join(outDir, base+"_trimmed.fasta"),
	}

	if err := a.runMafft(ctx, fastaPath, res); err != nil {
		return nil, err
	}
	if err := a.runClipKit(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// runMafft aligns fastaPath into res.AlignedPath. MAFFT writes the
// alignment to stdout and its progress to stderr.
func (a *aligner) runMafft(
	ctx context.Context,
	fastaPath string,
	res *pipeline.AlignResult,
) error {
	binPath, err := exec.LookPath(a.cfg.Align.MafftPath)
	if err != nil {
		return AlignToolNotFoundError(a.cfg.Align.MafftPath, err)
	}

	args := mafftArgs(a.cfg.Align)
	args = append(args, fastaPath)
	slog.Info("Running MAFFT", "binary", binPath, "args", args)

	out, err := os.Create(res.AlignedPath)
	if err != nil {
		return AlignToolFailedError(binPath, "", err)
	}
	defer out.Close()

	cmd := exec.CommandContext(ctx, binPath, args...)
	cmd.Stdout = out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err = cmd.Run(); err != nil {
		return AlignToolFailedError(binPath, stderr.String(), err)
	}

	if a.cfg.Align.SaveLogs {
		res.MafftLog = res.AlignedPath + ".log"
		if err = os.WriteFile(
			res.MafftLog, stderr.Bytes(), 0644,
		); err != nil {
			slog.Warn("Cannot save MAFFT log",
				"file", res.MafftLog, "error", err)
			res.MafftLog = ""
		}
	}

	info, err := os.Stat(res.AlignedPath)
	if err != nil || info.Size() == 0 {
		return AlignOutputMissingError(res.AlignedPath, err)
	}
	return nil
}

func (a *aligner) runClipKit(
	ctx context.Context,
	res *pipeline.AlignResult,
) error {
	binPath, err := exec.LookPath(a.cfg.Align.ClipKitPath)
	if err != nil {
		return TrimToolNotFoundError(a.cfg.Align.ClipKitPath, err)
	}

	args := []string{
		res.AlignedPath,
		"--mode", a.cfg.Align.ClipKitMode,
		"--output", res.TrimmedPath,
	}
	if a.cfg.Align.ClipKitMode == "gappy" {
		args = append(args, "--gaps",
			strconv.FormatFloat(a.cfg.Align.GapsThreshold, 'g', -1, 64))
	}
	if a.cfg.Align.SaveLogs {
		args = append(args, "--log")
	}
	slog.Info("Running ClipKit", "binary", binPath, "args", args)

	cmd := exec.CommandContext(ctx, binPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err = cmd.Run(); err != nil {
		return TrimToolFailedError(binPath, stderr.String(), err)
	}

	if a.cfg.Align.SaveLogs {
		// ClipKit names its log after the output file.
		logPath := res.TrimmedPath + ".log"
		if _, err = os.Stat(logPath); err == nil {
			res.ClipKitLog = logPath
		}
	}

	info, err := os.Stat(res.TrimmedPath)
	if err != nil || info.Size() == 0 {
		return TrimOutputMissingError(res.TrimmedPath, err)
	}
	return nil
}

// mafftArgs maps the configured algorithm to MAFFT flags.
func mafftArgs(cfg config.AlignConfig) []string {
	args := []string{"--thread", strconv.Itoa(cfg.Threads)}
	switch cfg.Algorithm {
	case "linsi":
		args = append(args, "--localpair", "--maxiterate", "1000")
	case "einsi":
		args = append(args, "--genafpair", "--maxiterate", "1000")
	case "ginsi":
		args = append(args, "--globalpair", "--maxiterate", "1000")
	case "fast":
		args = append(args, "--retree", "2")
	default: // auto
		args = append(args, "--auto")
	}
	return args
}
