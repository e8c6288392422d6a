package command

import (
	"animehub/internal/export"
	"animehub/internal/graphs"
	"animehub/internal/store"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to CSV files",
	Long: `Write the CSV exports into a csv/ directory inside the data dir:
the full record dump plus seasonal, genre, studio and yearly summaries.
--lang selects which corpus to export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(cfg.DataDirFor(lang))
		return export.New(st, cfg.StartYear, logger).Run()
	},
}

var graphsCmd = &cobra.Command{
	Use:   "graphs",
	Short: "Generate the chart datasets for the site",
	Long: `Derive the JSON chart datasets (rating trend, genre trends,
production volume, seasonal patterns, studio performance, collection
stats) and write them into the data dir. The popularity scatter is only
produced for the English corpus; Bangumi has no popularity ranks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.New(cfg.DataDirFor(lang))
		return graphs.New(st, cfg.StartYear, lang == "en", logger).Run()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(graphsCmd)
}
