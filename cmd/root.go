package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sillypears/rivals2-log-parser/internal/config"
	"github.com/sillypears/rivals2-log-parser/internal/logger"
)

var (
	cfgPath string
	dbPath  string
	debug   bool

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rivals2-log-parser",
	Short: "Rivals 2 ranked match extractor",
	Long:  "Scan Rivals 2 game logs for ranked match results, estimate opponent elo, and record new matches.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			cfg.Store.Path = dbPath
		}
		if debug {
			cfg.Logging.Debug = true
		}

		log, _, err = logger.New(cfg.Logging)
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(durationsCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tierCmd)
}
