package command

import (
	"fmt"

	"animehub/internal/ingestion/jikan"
	"animehub/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fetchYears       []int
	fetchCurrentOnly bool
	fetchAllYears    bool
	fetchCleanFirst  bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the English corpus from the Jikan API",
	Long: `Fetch seasonal TV listings from the Jikan API and write them as
partition files under the data directory, one file per season, plus the
manifest. By default the full window from the configured start year
through next year is refreshed; --current-years-only limits a run to
this year and the next, which is what the weekly refresh uses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(cfg.DataDir)

		if fetchCleanFirst {
			files, dupes, err := st.Clean()
			if err != nil {
				return fmt.Errorf("clean existing data: %w", err)
			}
			logger.Info("cleaned existing partitions",
				zap.Int("files", files), zap.Int("duplicates", dupes))
		}

		client := jikan.NewClient(
			jikan.WithAPIURL(cfg.JikanAPIURL),
			jikan.WithRequestInterval(cfg.JikanRequestInterval),
		)
		syncer := jikan.NewSyncer(client, st, logger)
		return syncer.Sync(cmd.Context(), jikan.SyncOptions{
			StartYear:        cfg.StartYear,
			Years:            fetchYears,
			CurrentYearsOnly: fetchCurrentOnly && !fetchAllYears,
		})
	},
}

func init() {
	fetchCmd.Flags().IntSliceVar(&fetchYears, "year", nil, "fetch specific years only")
	fetchCmd.Flags().BoolVar(&fetchCurrentOnly, "current-years-only", false, "fetch only the current and next year")
	fetchCmd.Flags().BoolVar(&fetchAllYears, "all-years", false, "fetch the full historical window")
	fetchCmd.Flags().BoolVar(&fetchCleanFirst, "clean", false, "dedup existing partition files before fetching")
	rootCmd.AddCommand(fetchCmd)
}
