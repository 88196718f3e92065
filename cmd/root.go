package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/qualverse/qualcode/internal/iofs"
	"github.com/qualverse/qualcode/internal/iologger"
	app "github.com/qualverse/qualcode/pkg"
	"github.com/qualverse/qualcode/pkg/config"
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
	Use:     "qualcode",
	Short:   "Qualitative coding and mixed-methods analysis of survey responses",
	Long: `qualcode codes open-ended childcare survey responses against a
keyword codebook and derives analysis tables from the coded data:
theme counts and frequencies, theme co-occurrence, mixed-methods
group comparisons against quantitative indicators, simulated
second-coder reliability (percent agreement and Cohen's kappa), and
exemplar quotes.

Every step is deterministic for a given seed. The codebook lives in
~/.config/qualcode/codebook.yaml and can be edited freely.

Typical usage:
  qualcode run                # generate, code, analyze, export, report
  qualcode generate           # just create responses.csv
  qualcode code               # code responses into long/wide tables
  qualcode report             # render the markdown brief`,
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

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	err = iologger.Init(config.LogDir(homeDir), defaultLog, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureCodebookFile(homeDir); err != nil {
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

	applyGlobalFlags(cmd)

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info(
		"Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
	)

	return nil
}

// applyGlobalFlags folds the persistent flags shared by every command
// into the config. Flags win over env vars and config.yaml.
func applyGlobalFlags(cmd *cobra.Command) {
	var flagOpts []config.Option
	flags := cmd.Flags()

	if flags.Changed("seed") {
		seed, _ := flags.GetInt64("seed")
		flagOpts = append(flagOpts, config.OptSeed(seed))
	}
	if flags.Changed("jobs") {
		jobs, _ := flags.GetInt("jobs")
		flagOpts = append(flagOpts, config.OptJobsNumber(jobs))
	}
	if flags.Changed("out-dir") {
		dir, _ := flags.GetString("out-dir")
		flagOpts = append(flagOpts, config.OptOutDir(dir))
	}

	if len(flagOpts) > 0 {
		cfg.Update(flagOpts)
	}
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Creates log file in the proper location now that we know HomeDir.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

// outDir resolves the artifacts directory of the current run: the
// --out-dir flag when given, the default data directory otherwise.
func outDir() string {
	if cfg.OutDir != "" {
		return cfg.OutDir
	}
	return config.DataDir(cfg.HomeDir)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "qualcode version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for qualcode")

	rootCmd.PersistentFlags().Int64(
		"seed", 0, "random seed for the run (overrides config)",
	)
	rootCmd.PersistentFlags().StringP(
		"out-dir", "o", "", "directory for run artifacts",
	)
	rootCmd.PersistentFlags().Int(
		"jobs", 0, "number of concurrent coding workers",
	)

	rootCmd.AddCommand(getGenerateCmd())
	rootCmd.AddCommand(getCodeCmd())
	rootCmd.AddCommand(getAnalyzeCmd())
	rootCmd.AddCommand(getReliabilityCmd())
	rootCmd.AddCommand(getReportCmd())
	rootCmd.AddCommand(getExportCmd())
	rootCmd.AddCommand(getRunCmd())
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
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("QUALCODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Generator configuration
	v.BindEnv("generate.responses", "QUALCODE_GENERATE_RESPONSES")
	v.BindEnv("generate.waves", "QUALCODE_GENERATE_WAVES")

	// Reliability configuration
	v.BindEnv("reliability.base_flip", "QUALCODE_RELIABILITY_BASE_FLIP")
	v.BindEnv("reliability.ambiguous_flip", "QUALCODE_RELIABILITY_AMBIGUOUS_FLIP")

	// Log configuration
	v.BindEnv("log.level", "QUALCODE_LOG_LEVEL")
	v.BindEnv("log.format", "QUALCODE_LOG_FORMAT")
	v.BindEnv("log.destination", "QUALCODE_LOG_DESTINATION")

	// General configuration
	v.BindEnv("seed", "QUALCODE_SEED")
	v.BindEnv("jobs_number", "QUALCODE_JOBS_NUMBER")

	v.AutomaticEnv()
}
