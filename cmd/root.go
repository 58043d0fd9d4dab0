/*
Copyright © 2025 The evset Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/evsiren/evset/internal/iofs"
	"github.com/evsiren/evset/internal/iologger"
	app "github.com/evsiren/evset/pkg"
	"github.com/evsiren/evset/pkg/config"
	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the evset command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "evset",
		Short:   "Curates AudioSet emergency-vehicle siren datasets",
		Long: `evset builds emergency-vehicle siren datasets out of AudioSet
segment files and downloads their audio.

Commands:
  - curate: select, merge, blacklist and rebalance positives and negatives
  - select, exclude, range, merge, rebalance: single table operations
  - stats: label counts and download progress of tables
  - lookup: find ids of one table in another
  - download: fetch and process the audio of a table
  - esc50, fsd50k: prepare auxiliary corpora

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (EVSET_*, also read from .env)
  3. Config file (~/.config/evset/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (download.sample_rate is
  EVSET_DOWNLOAD_SAMPLE_RATE).
  See 'go doc github.com/evsiren/evset/pkg/config' for the complete list.`,
		PersistentPreRunE:  bootstrap,
		PersistentPostRunE: shutdown,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	// Remove the automatic "evset version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for evset")

	pf := rootCmd.PersistentFlags()
	pf.StringP("labels", "l", "",
		"class labels CSV (mid, display_name)")
	pf.StringP("output-dir", "o", "",
		"directory for curated tables and downloads")
	pf.IntP("jobs", "j", 0,
		"number of tables read at the same time")
	pf.String("log-level", "",
		"log level: debug, info, warn or error")

	rootCmd.AddCommand(
		getCurateCmd(),
		getSelectCmd(),
		getExcludeCmd(),
		getRangeCmd(),
		getMergeCmd(),
		getRebalanceCmd(),
		getStatsCmd(),
		getLookupCmd(),
		getDownloadCmd(),
		getESC50Cmd(),
		getFSD50KCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error

	// .env is optional
	err = godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		gn.Warn("Cannot read <em>.env</em>: %s", err)
	}

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
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureRecipeFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

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

	// CLI flags have the last word
	cfg.Update(rootFlags(cmd))

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name())

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Creates log file in the proper location now that we know HomeDir.
func reconfigureLogging(cfg *config.Config) error {
	if logCloser != nil {
		logCloser.Close()
	}
	var err error
	logCloser, err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log)
	return err
}

func shutdown(_ *cobra.Command, _ []string) error {
	if logCloser == nil {
		return nil
	}
	return logCloser.Close()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
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
	v.SetEnvPrefix("EVSET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// General configuration
	v.BindEnv("labels_file", "EVSET_LABELS_FILE")
	v.BindEnv("output_dir", "EVSET_OUTPUT_DIR")
	v.BindEnv("jobs_number", "EVSET_JOBS_NUMBER")

	// Rebalance configuration
	v.BindEnv("rebalance.seed", "EVSET_REBALANCE_SEED")
	v.BindEnv("rebalance.strict", "EVSET_REBALANCE_STRICT")

	// Download configuration
	v.BindEnv("download.sample_rate", "EVSET_DOWNLOAD_SAMPLE_RATE")
	v.BindEnv("download.channels", "EVSET_DOWNLOAD_CHANNELS")
	v.BindEnv("download.normalize", "EVSET_DOWNLOAD_NORMALIZE")
	v.BindEnv("download.cookies_file", "EVSET_DOWNLOAD_COOKIES_FILE")
	v.BindEnv("download.min_delay", "EVSET_DOWNLOAD_MIN_DELAY")
	v.BindEnv("download.max_delay", "EVSET_DOWNLOAD_MAX_DELAY")
	v.BindEnv("download.persist_mode", "EVSET_DOWNLOAD_PERSIST_MODE")
	v.BindEnv("download.auth_retries", "EVSET_DOWNLOAD_AUTH_RETRIES")
	v.BindEnv("download.refresh_command", "EVSET_DOWNLOAD_REFRESH_COMMAND")
	v.BindEnv("download.auth_markers", "EVSET_DOWNLOAD_AUTH_MARKERS")
	v.BindEnv("download.ban_markers", "EVSET_DOWNLOAD_BAN_MARKERS")
	v.BindEnv("download.install_ytdlp", "EVSET_DOWNLOAD_INSTALL_YTDLP")
	v.BindEnv("download.format", "EVSET_DOWNLOAD_FORMAT")

	// Log configuration
	v.BindEnv("log.level", "EVSET_LOG_LEVEL")
	v.BindEnv("log.format", "EVSET_LOG_FORMAT")
	v.BindEnv("log.destination", "EVSET_LOG_DESTINATION")

	v.AutomaticEnv()
}
