package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neboloop/think/internal/config"
	"github.com/neboloop/think/internal/logging"
)

// Shared CLI flags (used across multiple command files)
var (
	cfgFile        string
	dictionaryPath string
	sessionKey     string
	verbose        bool
	jsonOutput     bool
)

// Version is stamped by the build; "dev" otherwise.
var Version = "dev"

// ServerConfig holds the loaded server configuration (set by main)
var ServerConfig *config.Config

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd(c *config.Config) *cobra.Command {
	ServerConfig = c

	rootCmd := &cobra.Command{
		Use:   "think",
		Short: "Think - spell-checking chat assistant",
		Long: `Think flags misspelled words in what you type, suggests corrections
and chats about them through an LLM provider.

Just type 'think' to start the web server (same as 'think serve').`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML file overlaid on the built-in configuration")
	rootCmd.PersistentFlags().StringVar(&dictionaryPath, "dictionary", "", "word list to use instead of the configured one (.txt, .json, optionally .gz)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(CheckCmd())
	rootCmd.AddCommand(CorrectCmd())
	rootCmd.AddCommand(ChatCmd())

	return rootCmd
}

// loadConfig applies --config, --dictionary and --verbose on top of the
// configuration main loaded, then validates the result.
func loadConfig() (config.Config, error) {
	c := *ServerConfig
	if cfgFile != "" {
		if err := c.LoadFile(cfgFile); err != nil {
			return c, err
		}
	}
	if dictionaryPath != "" {
		c.Spell.Dictionary = dictionaryPath
	}

	logging.SetLevel(c.Log.Level)
	if verbose {
		logging.SetVerbose(true)
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}
