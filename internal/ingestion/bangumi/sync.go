package bangumi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"animehub/internal/catalog"
	"animehub/internal/store"

	"go.uber.org/zap"
)

// Syncer refreshes the Chinese corpus: subject ids scraped from the
// bgm.tv browser listing, details fetched from the API, partitions and
// manifest written through the store.
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

// SyncSeason fetches one season and saves its partition. A season spans
// three airtime months; ids from all three are unioned before the
// detail fetches. Empty seasons write nothing and leave the manifest
// untouched.
func (s *Syncer) SyncSeason(ctx context.Context, year int, season catalog.Season) error {
	ids, err := s.seasonSubjectIDs(ctx, year, season)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		s.log.Info("no subjects for season",
			zap.Int("year", year), zap.String("season", string(season)))
		return nil
	}

	s.log.Info("fetching subject details",
		zap.Int("year", year),
		zap.String("season", string(season)),
		zap.Int("subjects", len(ids)))

	var records []catalog.Anime
	for _, id := range ids {
		sub, err := s.client.Subject(ctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			s.log.Warn("subject fetch failed", zap.Int64("subject_id", id), zap.Error(err))
			continue
		}
		records = append(records, convert(sub))
	}
	if len(records) == 0 {
		return nil
	}

	records, dropped := store.Dedup(records)
	if dropped > 0 {
		s.log.Warn("removed duplicate entries",
			zap.Int("year", year),
			zap.String("season", string(season)),
			zap.Int("duplicates", dropped))
	}

	if err := s.store.SavePartition(year, season, records); err != nil {
		return err
	}
	if err := s.store.UpsertManifestEntry(catalog.ManifestEntry{
		Year: year, Season: season, Count: len(records),
	}); err != nil {
		return fmt.Errorf("update manifest: %w", err)
	}
	s.log.Info("saved partition",
		zap.Int("year", year),
		zap.String("season", string(season)),
		zap.Int("count", len(records)))
	return nil
}

// SyncYears runs SyncSeason over every season of the given years,
// logging and skipping failed seasons.
func (s *Syncer) SyncYears(ctx context.Context, years []int) error {
	for _, year := range years {
		for _, season := range catalog.Seasons {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := s.SyncSeason(ctx, year, season); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				s.log.Error("season sync failed",
					zap.Int("year", year),
					zap.String("season", string(season)),
					zap.Error(err))
			}
		}
	}
	return nil
}

// SyncCurrent covers every season of the current year.
func (s *Syncer) SyncCurrent(ctx context.Context) error {
	return s.SyncYears(ctx, []int{time.Now().Year()})
}

// SyncHistory covers startYear through next year.
func (s *Syncer) SyncHistory(ctx context.Context, startYear int) error {
	if startYear == 0 {
		startYear = 2006
	}
	currentYear := time.Now().Year()
	years := make([]int, 0, currentYear+2-startYear)
	for y := startYear; y <= currentYear+1; y++ {
		years = append(years, y)
	}
	return s.SyncYears(ctx, years)
}

// seasonSubjectIDs unions the subject ids of the season's three airtime
// months and returns them sorted.
func (s *Syncer) seasonSubjectIDs(ctx context.Context, year int, season catalog.Season) ([]int64, error) {
	seen := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		month := season.StartMonth() + i
		ids, err := s.client.SubjectIDs(ctx, year, month)
		if err != nil {
			return nil, fmt.Errorf("list subjects %d-%d: %w", year, month, err)
		}
		for _, id := range ids {
			seen[id] = true
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
