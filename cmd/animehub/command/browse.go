package command

// browse.go implements the list and pick commands: the browser's filter
// and sample behavior from the terminal, over a local data dir or a
// published catalog URL.

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"animehub/internal/catalog"
	"animehub/internal/loader"

	"github.com/spf13/cobra"
)

var (
	browseBaseURL    string
	browseGenres     []string
	browseMode       string
	browseShowAdult  bool
	browseUnrated    bool
	browseAllRegions bool
	browseMinScore   float64
	browseYear       int
	browseSeason     string
	listShowGenres   bool
)

// browseFilter builds the engine config from the browse flags, starting
// from the same defaults the browser uses.
func browseFilter() (catalog.FilterConfig, error) {
	cfg := catalog.DefaultFilterConfig()
	cfg.ShowAdult = browseShowAdult
	cfg.HideUnrated = !browseUnrated
	cfg.JapaneseOnly = !browseAllRegions
	cfg.Genres = browseGenres
	cfg.MinScore = browseMinScore
	switch strings.ToLower(browseMode) {
	case "or":
		cfg.Mode = catalog.GenreOR
	case "and":
		cfg.Mode = catalog.GenreAND
	default:
		return cfg, fmt.Errorf("invalid --mode %q (want or/and)", browseMode)
	}
	return cfg, nil
}

func browseRecords(cmd *cobra.Command) ([]catalog.Anime, error) {
	var src loader.Source
	if browseBaseURL != "" {
		src = loader.NewHTTPSource(browseBaseURL)
	} else {
		src = loader.NewDirSource(cfg.DataDirFor(lang))
	}
	records, err := loader.New(src, logger).Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	if browseYear == 0 && browseSeason == "" {
		return records, nil
	}

	var season catalog.Season
	if browseSeason != "" {
		s, err := catalog.ParseSeason(browseSeason)
		if err != nil {
			return nil, err
		}
		season = s
	}
	var out []catalog.Anime
	for _, a := range records {
		if browseYear != 0 && a.Year != browseYear {
			continue
		}
		if season != "" && a.Season != season {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func describe(a *catalog.Anime) string {
	score := "unrated"
	if a.Score != nil {
		score = fmt.Sprintf("%.2f", *a.Score)
	}
	return fmt.Sprintf("%-8d %-7s %s  [%s]  %s",
		a.MalID, score, a.Season.Label(a.Year), strings.Join(a.Genres, ", "), a.Title)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries passing the filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := browseFilter()
		if err != nil {
			return err
		}
		records, err := browseRecords(cmd)
		if err != nil {
			return err
		}

		matched := catalog.Filter(records, filter)
		if listShowGenres {
			counts := catalog.GenreCounts(matched)
			for _, genre := range catalog.TopGenres(matched) {
				fmt.Printf("%-20s %d\n", genre, counts[genre])
			}
			return nil
		}
		for i := range matched {
			fmt.Println(describe(&matched[i]))
		}
		fmt.Printf("\n%d of %d entries match\n", len(matched), len(records))
		return nil
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick one random entry passing the filters",
	Long: `Draw one entry uniformly at random from those passing the filters.
Unlike list, pick also honors --min-score; a positive threshold excludes
unrated entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := browseFilter()
		if err != nil {
			return err
		}
		records, err := browseRecords(cmd)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		choice, ok := catalog.Sample(records, filter, rng)
		if !ok {
			fmt.Println("Nothing matches the current filters.")
			return nil
		}
		fmt.Println(describe(&choice))
		if choice.Synopsis != "" {
			fmt.Println()
			fmt.Println(choice.Synopsis)
		}
		if choice.URL != "" {
			fmt.Println()
			fmt.Println(choice.URL)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{listCmd, pickCmd} {
		c.Flags().StringVar(&browseBaseURL, "base-url", "", "load the catalog from a published URL instead of the data dir")
		c.Flags().StringSliceVar(&browseGenres, "genres", nil, "restrict to these genres")
		c.Flags().StringVar(&browseMode, "mode", "or", "genre combination mode (or/and)")
		c.Flags().BoolVar(&browseShowAdult, "show-adult", false, "include adult content")
		c.Flags().BoolVar(&browseUnrated, "include-unrated", false, "include entries without a score")
		c.Flags().BoolVar(&browseAllRegions, "all-regions", false, "include non-Japanese productions")
		c.Flags().IntVar(&browseYear, "year", 0, "restrict to one year")
		c.Flags().StringVar(&browseSeason, "season", "", "restrict to one season")
	}
	pickCmd.Flags().Float64Var(&browseMinScore, "min-score", 0, "minimum score (0 disables the threshold)")
	listCmd.Flags().BoolVar(&listShowGenres, "genre-facets", false, "print the genre facet table instead of entries")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pickCmd)
}
