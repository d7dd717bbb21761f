package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, DatasetIDs).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if s := c.UniProt.BaseURL; s != "" {
		res = append(res, OptUniProtBaseURL(s))
	}
	if i := c.UniProt.BatchSize; i > 0 {
		res = append(res, OptUniProtBatchSize(i))
	}
	if i := c.UniProt.RetryCount; i > 0 {
		res = append(res, OptUniProtRetryCount(i))
	}
	if f := c.UniProt.RetryBackoff; f > 0 {
		res = append(res, OptUniProtRetryBackoff(f))
	}
	if ii := c.UniProt.RetryStatuses; len(ii) > 0 {
		res = append(res, OptUniProtRetryStatuses(ii))
	}
	if i := c.UniProt.TimeoutSec; i > 0 {
		res = append(res, OptUniProtTimeoutSec(i))
	}

	if s := c.Cluster.MMseqsPath; s != "" {
		res = append(res, OptClusterMMseqsPath(s))
	}
	if f := c.Cluster.MinSeqID; f > 0 {
		res = append(res, OptClusterMinSeqID(f))
	}
	if f := c.Cluster.Coverage; f > 0 {
		res = append(res, OptClusterCoverage(f))
	}
	res = append(res, OptClusterCoverageMode(c.Cluster.CoverageMode))
	res = append(res, OptClusterRemoveTmpFiles(c.Cluster.RemoveTmpFiles))

	if s := c.Align.MafftPath; s != "" {
		res = append(res, OptAlignMafftPath(s))
	}
	if s := c.Align.Algorithm; s != "" {
		res = append(res, OptAlignAlgorithm(s))
	}
	if i := c.Align.Threads; i != 0 {
		res = append(res, OptAlignThreads(i))
	}
	if s := c.Align.ClipKitPath; s != "" {
		res = append(res, OptAlignClipKitPath(s))
	}
	if s := c.Align.ClipKitMode; s != "" {
		res = append(res, OptAlignClipKitMode(s))
	}
	if f := c.Align.GapsThreshold; f > 0 {
		res = append(res, OptAlignGapsThreshold(f))
	}
	res = append(res, OptAlignSaveLogs(c.Align.SaveLogs))

	if s := c.Output.Dir; s != "" {
		res = append(res, OptOutputDir(s))
	}
	if s := c.Output.SubfamilyMarker; s != "" {
		res = append(res, OptOutputSubfamilyMarker(s))
	}

	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}

	if i := c.JobsNumber; i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFraction(name string, f, max float64) bool {
	res := f > 0 && f <= max
	if !res {
		gn.Warn("<em>%s</em> has to be in (0, %v], ignoring %v", name, max, f)
	}
	return res
}

func warnInvalid(name string, val any) {
	gn.Warn("<em>%s</em> does not support %v as a value, ignoring", name, val)
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Align.Algorithm": {"auto": s, "linsi": s, "einsi": s,
			"ginsi": s, "fast": s},
		"Align.ClipKitMode": {"smart-gap": s, "gappy": s, "kpic": s,
			"kpic-smart-gap": s, "kpi": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
