package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptUniProtBaseURL sets the UniProt REST search endpoint.
func OptUniProtBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("UniProt Base URL", s) {
			c.UniProt.BaseURL = s
		}
	}
}

// OptUniProtBatchSize sets the number of records requested per page.
func OptUniProtBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("UniProt Batch Size", i) {
			c.UniProt.BatchSize = i
		}
	}
}

// OptUniProtRetryCount sets how many times a failed page request is
// retried.
func OptUniProtRetryCount(i int) Option {
	return func(c *Config) {
		if isValidInt("UniProt Retry Count", i) {
			c.UniProt.RetryCount = i
		}
	}
}

// OptUniProtRetryBackoff sets the base retry backoff in seconds.
func OptUniProtRetryBackoff(f float64) Option {
	return func(c *Config) {
		if isValidFraction("UniProt Retry Backoff", f, 3600) {
			c.UniProt.RetryBackoff = f
		}
	}
}

// OptUniProtRetryStatuses sets the HTTP status codes worth retrying.
func OptUniProtRetryStatuses(ii []int) Option {
	return func(c *Config) {
		if len(ii) == 0 {
			warnInvalid("UniProt Retry Statuses", ii)
			return
		}
		for _, i := range ii {
			if i < 100 || i > 599 {
				warnInvalid("UniProt Retry Statuses", i)
				return
			}
		}
		c.UniProt.RetryStatuses = ii
	}
}

// OptUniProtTimeoutSec bounds one page request in seconds.
func OptUniProtTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("UniProt Timeout", i) {
			c.UniProt.TimeoutSec = i
		}
	}
}

// OptClusterMMseqsPath sets the MMseqs2 executable name or path.
func OptClusterMMseqsPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("MMseqs Path", s) {
			c.Cluster.MMseqsPath = s
		}
	}
}

// OptClusterMinSeqID sets the minimum sequence identity threshold.
func OptClusterMinSeqID(f float64) Option {
	return func(c *Config) {
		if isValidFraction("Cluster MinSeqID", f, 1) {
			c.Cluster.MinSeqID = f
		}
	}
}

// OptClusterCoverage sets the minimum alignment coverage threshold.
func OptClusterCoverage(f float64) Option {
	return func(c *Config) {
		if isValidFraction("Cluster Coverage", f, 1) {
			c.Cluster.Coverage = f
		}
	}
}

// OptClusterCoverageMode selects the coverage calculation mode (0-2).
func OptClusterCoverageMode(i int) Option {
	return func(c *Config) {
		if i >= 0 && i <= 2 {
			c.Cluster.CoverageMode = i
		} else {
			warnInvalid("Cluster Coverage Mode", i)
		}
	}
}

// OptClusterRemoveTmpFiles controls temporary file cleanup after
// clustering.
func OptClusterRemoveTmpFiles(b bool) Option {
	return func(c *Config) {
		c.Cluster.RemoveTmpFiles = b
	}
}

// OptAlignMafftPath sets the MAFFT executable name or path.
func OptAlignMafftPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("MAFFT Path", s) {
			c.Align.MafftPath = s
		}
	}
}

// OptAlignAlgorithm selects the MAFFT preset.
// Valid values: "auto", "linsi", "einsi", "ginsi", "fast".
func OptAlignAlgorithm(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Align.Algorithm", s) {
			c.Align.Algorithm = s
		}
	}
}

// OptAlignThreads sets the MAFFT thread count; -1 lets MAFFT decide.
func OptAlignThreads(i int) Option {
	return func(c *Config) {
		if i == -1 || i > 0 {
			c.Align.Threads = i
		} else {
			warnInvalid("Align Threads", i)
		}
	}
}

// OptAlignClipKitPath sets the ClipKIT executable name or path.
func OptAlignClipKitPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("ClipKIT Path", s) {
			c.Align.ClipKitPath = s
		}
	}
}

// OptAlignClipKitMode selects the ClipKIT trimming mode.
// Valid values: "smart-gap", "gappy", "kpic", "kpic-smart-gap", "kpi".
func OptAlignClipKitMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Align.ClipKitMode", s) {
			c.Align.ClipKitMode = s
		}
	}
}

// OptAlignGapsThreshold sets the ClipKIT gaps threshold (0-1).
func OptAlignGapsThreshold(f float64) Option {
	return func(c *Config) {
		if isValidFraction("Align Gaps Threshold", f, 1) {
			c.Align.GapsThreshold = f
		}
	}
}

// OptAlignSaveLogs controls whether full tool output is kept in log
// files.
func OptAlignSaveLogs(b bool) Option {
	return func(c *Config) {
		c.Align.SaveLogs = b
	}
}

// OptOutputDir sets the root output directory.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Output.Dir = s
		}
	}
}

// OptOutputSubfamilyMarker sets the lineage token whose successor is
// reported as the genus column.
func OptOutputSubfamilyMarker(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Subfamily Marker", s) {
			c.Output.SubfamilyMarker = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent extraction workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptDatasetIDs selects which datasets to process. Empty means all.
// Runtime-only field - not in ToOptions().
func OptDatasetIDs(ii []int) Option {
	return func(c *Config) {
		if len(ii) > 0 {
			c.DatasetIDs = ii
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
