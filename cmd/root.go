package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/retroevo/capsid/internal/iofs"
	"github.com/retroevo/capsid/internal/iologger"
	app "github.com/retroevo/capsid/pkg"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "capsid",
	Short:   "Build curated capsid sequence datasets from UniProt",
	Long: `Capsid downloads viral protein records from UniProt, extracts the
mature capsid chains their feature annotations describe, collapses them
into unique sequences with merged metadata, groups the sequences by
similarity with MMseqs2, and prepares a trimmed multiple sequence
alignment for phylogenetic analysis.

Each step is available as its own subcommand, and the run subcommand
executes the whole pipeline.`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDatasetsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration, now that HomeDir is known.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "capsid version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for capsid")

	rootCmd.AddCommand(
		getFetchCmd(),
		getExtractCmd(),
		getClusterCmd(),
		getAlignCmd(),
		getRunCmd(),
	)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions(),
	// i.e. persistent configuration that can be stored in config.yaml.
	v.SetEnvPrefix("CAPSID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// UniProt configuration
	v.BindEnv("uniprot.base_url", "UNIPROT_BASE_URL")
	v.BindEnv("uniprot.batch_size", "UNIPROT_BATCH_SIZE")
	v.BindEnv("uniprot.retry_count", "UNIPROT_RETRY_COUNT")
	v.BindEnv("uniprot.retry_backoff", "UNIPROT_RETRY_BACKOFF")
	v.BindEnv("uniprot.retry_statuses", "UNIPROT_RETRY_STATUSES")
	v.BindEnv("uniprot.timeout_sec", "UNIPROT_TIMEOUT_SEC")

	// Clustering configuration
	v.BindEnv("cluster.mmseqs_path", "CLUSTER_MMSEQS_PATH")
	v.BindEnv("cluster.min_seq_id", "CLUSTER_MIN_SEQ_ID")
	v.BindEnv("cluster.coverage", "CLUSTER_COVERAGE")
	v.BindEnv("cluster.coverage_mode", "CLUSTER_COVERAGE_MODE")
	v.BindEnv("cluster.remove_tmp_files", "CLUSTER_REMOVE_TMP_FILES")

	// Alignment configuration
	v.BindEnv("align.mafft_path", "ALIGN_MAFFT_PATH")
	v.BindEnv("align.algorithm", "ALIGN_ALGORITHM")
	v.BindEnv("align.threads", "ALIGN_THREADS")
	v.BindEnv("align.clipkit_path", "ALIGN_CLIPKIT_PATH")
	v.BindEnv("align.clipkit_mode", "ALIGN_CLIPKIT_MODE")
	v.BindEnv("align.gaps_threshold", "ALIGN_GAPS_THRESHOLD")
	v.BindEnv("align.save_logs", "ALIGN_SAVE_LOGS")

	// Output configuration
	v.BindEnv("output.dir", "OUTPUT_DIR")
	v.BindEnv("output.subfamily_marker", "OUTPUT_SUBFAMILY_MARKER")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
