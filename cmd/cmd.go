package cmd

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/learnhub-io/learnhub/config"
	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	ConfigFile string
	LogLevel   string
}

var rootCmd = &cobra.Command{
	Use:   "learnhub",
	Short: "LearnHub is a small learning-platform backend",
	Long: `LearnHub serves user registration, course catalogs and per-user course
progress over a JSON HTTP API, with static file serving for the web frontend.

It ships two storage variants: "serve" keeps everything in a JSON document on
disk, "serve-db" runs against a PostgreSQL database and adds token sessions,
levels, submissions and a knowledge base.`,
	Example: `learnhub serve
  learnhub serve --config config.yml --log-level debug
  learnhub serve-db`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setLogLevel(rootCmdPersistentFlags.LogLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.learnhub, /etc/learnhub)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
}

// effectiveLogLevel prefers the --log-level flag over the config file value.
func effectiveLogLevel(cfg *config.Config) string {
	if rootCmdPersistentFlags.LogLevel != "" {
		return rootCmdPersistentFlags.LogLevel
	}
	return cfg.LogLevel
}

func setLogLevel(level string) {
	switch level {
	case "":
		// keep config file / default level
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func Execute() error {
	return fang.Execute(context.Background(), rootCmd)
}
