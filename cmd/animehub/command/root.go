package command

// root.go wires the shared state every subcommand uses: configuration
// from the environment and the zap logger.

import (
	"fmt"
	"os"

	"animehub/internal/config"
	"animehub/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	lang string // corpus language: en (Jikan/data) or cn (Bangumi/data_cn)
)

var rootCmd = &cobra.Command{
	Use:   "animehub",
	Short: "animehub - seasonal anime catalog toolkit",
	Long: `animehub maintains the seasonal anime catalog behind the static site:
it scrapes the English corpus from Jikan and the Chinese corpus from
Bangumi, writes season partition files plus a manifest, and derives the
CSV exports and chart datasets the site renders.

Use "animehub [command] --help" to see the options of each command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if lang != "en" && lang != "cn" {
			return fmt.Errorf("invalid --lang %q (want en or cn)", lang)
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "corpus language (en or cn)")
}
