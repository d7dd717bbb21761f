// Package config provides configuration management for the capsid
// pipeline.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use the CAPSID_ prefix with underscores for nesting:
//
//	CAPSID_UNIPROT_BATCH_SIZE=500
//	CAPSID_CLUSTER_MIN_SEQ_ID=0.3
//	CAPSID_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete capsid pipeline configuration.
type Config struct {
	// UniProt contains settings for the record-download collaborator.
	UniProt UniProtConfig `mapstructure:"uniprot" yaml:"uniprot"`

	// Cluster contains settings for the MMseqs2 clustering collaborator.
	Cluster ClusterConfig `mapstructure:"cluster" yaml:"cluster"`

	// Align contains settings for the MAFFT/ClipKIT phylogeny-prep
	// collaborators.
	Align AlignConfig `mapstructure:"align" yaml:"align"`

	// Output contains settings for the result writers.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// record extraction. Default follows the number of CPU threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// DatasetIDs selects which datasets from datasets.yaml to process.
	// Empty means all. Runtime-only, set by CLI flags.
	DatasetIDs []int

	// HomeDir determines where config, cache and logs directories
	// reside. Set by the CLI during init; no default.
	HomeDir string
}

// UniProtConfig describes the paginated REST download.
//
// The retry policy is explicit configuration rather than a shared
// preconfigured session: the fetch collaborator builds its own HTTP
// client from these fields.
type UniProtConfig struct {
	// BaseURL is the search endpoint of the UniProt REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// BatchSize is the number of records requested per page. The API
	// caps useful values around 500.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// RetryCount is how many times a failed page request is retried.
	RetryCount int `mapstructure:"retry_count" yaml:"retry_count"`

	// RetryBackoff is the base backoff in seconds; the wait doubles
	// after each failed attempt.
	RetryBackoff float64 `mapstructure:"retry_backoff" yaml:"retry_backoff"`

	// RetryStatuses lists the HTTP status codes worth retrying.
	RetryStatuses []int `mapstructure:"retry_statuses" yaml:"retry_statuses"`

	// TimeoutSec bounds one page request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// ClusterConfig describes the MMseqs2 easy-cluster invocation.
type ClusterConfig struct {
	// MMseqsPath is the executable name or path.
	MMseqsPath string `mapstructure:"mmseqs_path" yaml:"mmseqs_path"`

	// MinSeqID is the minimum sequence identity (0.0-1.0) for two
	// sequences to share a cluster.
	MinSeqID float64 `mapstructure:"min_seq_id" yaml:"min_seq_id"`

	// Coverage is the minimum alignment coverage (0.0-1.0).
	Coverage float64 `mapstructure:"coverage" yaml:"coverage"`

	// CoverageMode selects what the coverage applies to:
	// 0 both sequences, 1 target only, 2 query only.
	CoverageMode int `mapstructure:"coverage_mode" yaml:"coverage_mode"`

	// RemoveTmpFiles removes the MMseqs2 temporary directory after a
	// successful run.
	RemoveTmpFiles bool `mapstructure:"remove_tmp_files" yaml:"remove_tmp_files"`
}

// AlignConfig describes alignment and trimming for phylogeny prep.
type AlignConfig struct {
	// MafftPath is the MAFFT executable name or path.
	MafftPath string `mapstructure:"mafft_path" yaml:"mafft_path"`

	// Algorithm selects a MAFFT preset:
	// "auto", "linsi", "einsi", "ginsi" or "fast".
	Algorithm string `mapstructure:"algorithm" yaml:"algorithm"`

	// Threads is passed to MAFFT; -1 lets MAFFT decide.
	Threads int `mapstructure:"threads" yaml:"threads"`

	// ClipKitPath is the ClipKIT executable name or path.
	ClipKitPath string `mapstructure:"clipkit_path" yaml:"clipkit_path"`

	// ClipKitMode selects the trimming mode: "smart-gap", "gappy",
	// "kpic", "kpic-smart-gap" or "kpi".
	ClipKitMode string `mapstructure:"clipkit_mode" yaml:"clipkit_mode"`

	// GapsThreshold is the gaps threshold (0-1); ignored by smart-gap.
	GapsThreshold float64 `mapstructure:"gaps_threshold" yaml:"gaps_threshold"`

	// SaveLogs writes full tool output to log files next to the
	// results.
	SaveLogs bool `mapstructure:"save_logs" yaml:"save_logs"`
}

// OutputConfig describes where and how results are written.
type OutputConfig struct {
	// Dir is the root output directory.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// SubfamilyMarker is the lineage token whose successor is reported
	// as the genus column in TSV output.
	SubfamilyMarker string `mapstructure:"subfamily_marker" yaml:"subfamily_marker"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		UniProt: UniProtConfig{
			BaseURL:       "https://rest.uniprot.org/uniprotkb/search",
			BatchSize:     500,
			RetryCount:    5,
			RetryBackoff:  0.25,
			RetryStatuses: []int{500, 502, 503, 504},
			TimeoutSec:    60,
		},
		Cluster: ClusterConfig{
			MMseqsPath:     "mmseqs",
			MinSeqID:       0.3,
			Coverage:       0.8,
			CoverageMode:   0,
			RemoveTmpFiles: true,
		},
		Align: AlignConfig{
			MafftPath:     "mafft",
			Algorithm:     "linsi",
			Threads:       -1,
			ClipKitPath:   "clipkit",
			ClipKitMode:   "smart-gap",
			GapsThreshold: 0.9,
			SaveLogs:      true,
		},
		Output: OutputConfig{
			Dir:             "outputs",
			SubfamilyMarker: "Orthoretrovirinae",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
