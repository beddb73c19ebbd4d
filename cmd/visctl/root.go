// Command visctl is a CLI over the VIS facade: parse and validate Local
// and Universal IDs, convert them across VIS versions, and list codebook
// vocabularies, all against a directory of resource DTO files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ronan-fesselier/vista-sdk-go/vis"
)

var (
	resourcesDir string
	logLevel     string
	cfgFile      string

	viperInst *viper.Viper
	logger    *slog.Logger
	facade    *vis.VIS
)

var rootCmd = &cobra.Command{
	Use:   "visctl",
	Short: "VIS / ISO 19848 identifier tool",
	Long: `visctl parses, validates and converts DNV VIS Local and Universal
IDs, and lists codebook vocabularies, against a directory of
GMOD/codebook/location resource files.

Configuration sources, in order of precedence:
  1. Command line flags
  2. Environment variables (VISCTL_*)
  3. A config file (--config, or ./visctl.yaml by default)`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = viperInst.BindPFlags(cmd.Flags())
		if cfgFile != "" {
			viperInst.SetConfigFile(cfgFile)
			if err := viperInst.ReadInConfig(); err != nil {
				return fmt.Errorf("visctl: reading config %s: %w", cfgFile, err)
			}
		}
		logger = newLogger(viperInst.GetString("log-level"))

		dir := viperInst.GetString("resources-dir")
		if dir == "" {
			return fmt.Errorf("visctl: --resources-dir is required")
		}
		facade = vis.New(newDirResourceProvider(dir), logger)
		return nil
	},
}

func init() {
	viperInst = viper.New()
	setupViperConfig()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&resourcesDir, "resources-dir", "", "directory containing gmod/codebooks/locations/versioning JSON resource files")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug|info|warn|error")
	flags.StringVar(&cfgFile, "config", "", "path to a config file (default: ./visctl.yaml)")

	for _, name := range []string{"resources-dir", "log-level"} {
		_ = viperInst.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(parseCmd, convertCmd, validateCmd, codebookListCmd)
}

// setupViperConfig wires config-file discovery and live-reload the way
// the teacher's CLI does (NANOSTORE_CONFIG env override, AutomaticEnv,
// dash-to-underscore key replacement), generalized to this CLI's own
// "VISCTL_" prefix. WatchConfig's fsnotify watch means editing the
// config file while a long-running command (e.g. a future "serve" mode)
// is active picks up new defaults without a restart.
func setupViperConfig() {
	if cfgFile := os.Getenv("VISCTL_CONFIG"); cfgFile != "" {
		viperInst.SetConfigFile(cfgFile)
	} else {
		viperInst.SetConfigName("visctl")
		viperInst.SetConfigType("yaml")
		viperInst.AddConfigPath(".")
		viperInst.AddConfigPath("$HOME/.visctl")
	}

	viperInst.AutomaticEnv()
	viperInst.SetEnvPrefix("VISCTL")
	viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	_ = viperInst.ReadInConfig()
	viperInst.OnConfigChange(func(e fsnotify.Event) {
		if logger != nil {
			logger.Debug("visctl: config file changed", "file", e.Name)
		}
	})
	viperInst.WatchConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
