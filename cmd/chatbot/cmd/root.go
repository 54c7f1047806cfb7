package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/pkg/core/config"
	"github.com/msto63/chatbot/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "chatbot - modular chat bot",
	Long: `chatbot is a chat bot assembled from feature modules.

Each module contributes commands (invoked by name, with structured
arguments) and triggers (regular expressions matched against every
message). Modules are loaded into a registry at startup.

Built-in modules:
  defaults  - help, modules, triggers, trigger-regex
  greeting  - answers greetings
  quote     - stores and recalls quotations`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvConfigPath+" or ./configs/chatbot.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads --config, then the environment, then falls back to
// defaults when no file exists anywhere
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		if os.Getenv(config.EnvConfigPath) != "" {
			return nil, err
		}
		printWarning("no config file found, using defaults")
		return config.Default(), nil
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	lc := logging.DefaultLoggerConfig(cfg.General.Name)
	lc.Level = cfg.General.LogLevel
	lc.Format = cfg.General.LogFormat
	if verbose {
		lc.Level = "debug"
		lc.EnableCaller = true
	}
	logger := logging.NewLogger(lc)
	log.SetDefault(logger)
	return logger
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", errorStyle.Render("error:"), msg, err)
}

func printWarning(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warnStyle.Render("warning:"), msg)
}
