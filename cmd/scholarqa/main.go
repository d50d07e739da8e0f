// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholarqa CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scholarqa/internal/logging"
	"github.com/pdiddy/scholarqa/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets

	// logger is replaced in PersistentPreRunE once flags are parsed.
	logger = logging.Nop()
)

// rootCmd is the base command for the scholarqa CLI.
var rootCmd = &cobra.Command{
	Use:   "scholarqa",
	Short: "Answer scholarly questions from DBLP and SemOpenAlex",
	Long: `scholarqa answers questions about academic authors and institutions.
Each question names one or two DBLP authors; answers come from the
SemOpenAlex knowledge graph when a keyword rule matches, and from an
extractive QA engine over the question's context otherwise.

Subcommands: answer runs the batch, filter splits a question file by
whether it compares two authors, and runs shows the run ledger.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		logger = logging.New(jsonLogs, verbosity)

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, logger.Named("secrets"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Infow("loaded secrets", "keys", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholarqa.yaml or ~/.config/scholarqa/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit JSON logs")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholarqa")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholarqa"))
		}
	}

	viper.SetEnvPrefix("SCHOLARQA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		// The logger is not configured yet; config discovery is reported once
		// flags are parsed.
		configUsed = viper.ConfigFileUsed()
	}
}

// configUsed is the config file viper read, if any.
var configUsed string

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}

// logConfigUsed reports the config file at info level.
func logConfigUsed(log *zap.SugaredLogger) {
	if configUsed != "" {
		log.Infow("using config file", logging.FieldFile, configUsed)
	}
}
