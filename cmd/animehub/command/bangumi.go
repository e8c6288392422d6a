package command

import (
	"fmt"

	"animehub/internal/catalog"
	"animehub/internal/ingestion/bangumi"
	"animehub/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bangumiYear       int
	bangumiSeason     string
	bangumiAllCurrent bool
	bangumiAllHistory bool
	bangumiClean      bool
)

var bangumiCmd = &cobra.Command{
	Use:   "bangumi",
	Short: "Fetch the Chinese corpus from Bangumi",
	Long: `Fetch Japanese TV listings from bgm.tv and write them under the
Chinese data directory. Subject ids come from the browser pages (three
airtime months per season), details from the Bangumi API. Pick one
season with --year and --season, or use --all-current / --all-history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(cfg.DataDirCN)

		if bangumiClean {
			files, dupes, err := st.Clean()
			if err != nil {
				return fmt.Errorf("clean existing data: %w", err)
			}
			logger.Info("cleaned existing partitions",
				zap.Int("files", files), zap.Int("duplicates", dupes))
			if bangumiYear == 0 && !bangumiAllCurrent && !bangumiAllHistory {
				return nil
			}
		}

		client := bangumi.NewClient(
			bangumi.WithAPIURL(cfg.BangumiAPIURL),
			bangumi.WithWebURL(cfg.BangumiWebURL),
			bangumi.WithRequestInterval(cfg.BangumiRequestInterval),
		)
		syncer := bangumi.NewSyncer(client, st, logger)

		switch {
		case bangumiYear != 0 && bangumiSeason != "":
			season, err := catalog.ParseSeason(bangumiSeason)
			if err != nil {
				return err
			}
			return syncer.SyncSeason(cmd.Context(), bangumiYear, season)
		case bangumiAllCurrent:
			return syncer.SyncCurrent(cmd.Context())
		case bangumiAllHistory:
			return syncer.SyncHistory(cmd.Context(), cfg.StartYear)
		default:
			return fmt.Errorf("provide --year with --season, --all-current, or --all-history")
		}
	},
}

func init() {
	bangumiCmd.Flags().IntVar(&bangumiYear, "year", 0, "year to fetch")
	bangumiCmd.Flags().StringVar(&bangumiSeason, "season", "", "season to fetch (winter, spring, summer, fall)")
	bangumiCmd.Flags().BoolVar(&bangumiAllCurrent, "all-current", false, "fetch every season of the current year")
	bangumiCmd.Flags().BoolVar(&bangumiAllHistory, "all-history", false, "fetch the full historical window")
	bangumiCmd.Flags().BoolVar(&bangumiClean, "clean", false, "dedup existing partition files first")
	rootCmd.AddCommand(bangumiCmd)
}
