package jikan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"animehub/internal/catalog"
	"animehub/internal/store"

	"go.uber.org/zap"
)

// SyncOptions selects which years a sync covers. Exactly one mode applies:
// an explicit year list wins, then current-years-only, then the full
// window from StartYear through next year.
type SyncOptions struct {
	StartYear        int
	Years            []int
	CurrentYearsOnly bool
}

// Syncer refreshes the English corpus from the Jikan API, one partition
// file per season, plus the manifest.
type Syncer struct {
	client *Client
	store  *store.FileStore
	log    *zap.Logger
}

func NewSyncer(client *Client, st *store.FileStore, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{client: client, store: st, log: log}
}

func (s *Syncer) years(opts SyncOptions) []int {
	currentYear := time.Now().Year()
	switch {
	case len(opts.Years) > 0:
		return opts.Years
	case opts.CurrentYearsOnly:
		// Weekly refresh: this year and the next (upcoming seasons).
		return []int{currentYear, currentYear + 1}
	default:
		startYear := opts.StartYear
		if startYear == 0 {
			startYear = 2006
		}
		years := make([]int, 0, currentYear+2-startYear)
		for y := startYear; y <= currentYear+1; y++ {
			years = append(years, y)
		}
		return years
	}
}

// Sync fetches every season of the selected years and rewrites the
// manifest. Manifest entries for years outside the selection are
// preserved, so a current-years-only run does not drop history. A failed
// season keeps whatever partition file already exists.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) error {
	years := s.years(opts)
	fetching := make(map[int]bool, len(years))
	for _, y := range years {
		fetching[y] = true
	}

	// Carry over manifest entries for years this run does not touch.
	var manifest []catalog.ManifestEntry
	if existing, err := s.store.LoadManifest(); err == nil {
		for _, entry := range existing {
			if !fetching[entry.Year] {
				manifest = append(manifest, entry)
			}
		}
	}

	s.log.Info("starting jikan sync", zap.Ints("years", years))

	for _, year := range years {
		for _, season := range catalog.Seasons {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			entry, err := s.syncSeason(ctx, year, season)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				s.log.Error("season sync failed",
					zap.Int("year", year),
					zap.String("season", string(season)),
					zap.Error(err))
				continue
			}
			if entry != nil {
				manifest = append(manifest, *entry)
			}
		}
	}

	if err := s.store.SaveManifest(manifest); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	s.log.Info("jikan sync complete", zap.Int("seasons", len(manifest)))
	return nil
}

// syncSeason fetches one season and saves it. When the API has nothing,
// an existing partition file is preserved and its entry kept; a season
// that never existed returns a nil entry.
func (s *Syncer) syncSeason(ctx context.Context, year int, season catalog.Season) (*catalog.ManifestEntry, error) {
	records, err := s.client.Season(ctx, year, season)
	if err != nil && !errors.Is(err, ErrSeasonNotFound) {
		return nil, err
	}

	if len(records) == 0 {
		existing, loadErr := s.store.LoadPartition(year, season)
		if loadErr != nil {
			s.log.Debug("no data for season",
				zap.Int("year", year), zap.String("season", string(season)))
			return nil, nil
		}
		s.log.Info("preserving existing partition",
			zap.Int("year", year),
			zap.String("season", string(season)),
			zap.Int("count", len(existing)))
		return &catalog.ManifestEntry{Year: year, Season: season, Count: len(existing)}, nil
	}

	records, dropped := store.Dedup(records)
	if dropped > 0 {
		s.log.Warn("removed duplicate entries",
			zap.Int("year", year),
			zap.String("season", string(season)),
			zap.Int("duplicates", dropped))
	}

	if err := s.store.SavePartition(year, season, records); err != nil {
		return nil, err
	}
	s.log.Info("saved partition",
		zap.Int("year", year),
		zap.String("season", string(season)),
		zap.Int("count", len(records)))
	return &catalog.ManifestEntry{Year: year, Season: season, Count: len(records)}, nil
}
