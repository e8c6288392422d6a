package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"animehub/internal/catalog"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrManifestUnavailable distinguishes "the catalog index could not be
// fetched at all" from a legitimately empty catalog.
var ErrManifestUnavailable = errors.New("manifest unavailable")

// Source fetches the manifest and individual partitions. Implementations
// must be safe for concurrent Partition calls.
type Source interface {
	Manifest(ctx context.Context) ([]catalog.ManifestEntry, error)
	Partition(ctx context.Context, year int, season catalog.Season) ([]catalog.Anime, error)
}

// Loader resolves a manifest into one flat, deduplicated in-memory
// collection. The result is computed at most once per Loader lifetime:
// concurrent callers attach to the same in-flight load, and later callers
// get the cached slice back without touching the source again. The corpus
// is static for a session, so there is no invalidation path.
type Loader struct {
	src Source
	log *zap.Logger

	group  singleflight.Group
	mu     sync.Mutex
	cached []catalog.Anime
	ready  bool
}

func New(src Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{src: src, log: log}
}

// Load returns the full collection in manifest order then
// partition-internal order. A manifest fetch failure is returned to the
// caller; a single partition's failure only costs that partition's records.
func (l *Loader) Load(ctx context.Context) ([]catalog.Anime, error) {
	l.mu.Lock()
	if l.ready {
		cached := l.cached
		l.mu.Unlock()
		return cached, nil
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do("catalog", func() (any, error) {
		records, err := l.loadAll(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cached = records
		l.ready = true
		l.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Anime), nil
}

func (l *Loader) loadAll(ctx context.Context) ([]catalog.Anime, error) {
	manifest, err := l.src.Manifest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnavailable, err)
	}
	if len(manifest) == 0 {
		return []catalog.Anime{}, nil
	}

	// Partitions are independent; fetch them all at once and reassemble in
	// manifest order, not arrival order.
	results := make([][]catalog.Anime, len(manifest))
	var wg sync.WaitGroup
	for i, entry := range manifest {
		wg.Add(1)
		go func(i int, entry catalog.ManifestEntry) {
			defer wg.Done()
			records, err := l.src.Partition(ctx, entry.Year, entry.Season)
			if err != nil {
				// Partial data beats total failure: the partition just
				// contributes nothing.
				l.log.Warn("partition load failed",
					zap.Int("year", entry.Year),
					zap.String("season", string(entry.Season)),
					zap.Error(err))
				return
			}
			results[i] = annotate(records, entry.Year, entry.Season)
		}(i, entry)
	}
	wg.Wait()

	var all []catalog.Anime
	for _, part := range results {
		all = append(all, part...)
	}
	if all == nil {
		all = []catalog.Anime{}
	}
	return all, nil
}

// annotate stamps each record with its partition keys and drops duplicate
// ids within the partition, keeping the first occurrence.
func annotate(records []catalog.Anime, year int, season catalog.Season) []catalog.Anime {
	seen := make(map[int64]bool, len(records))
	out := make([]catalog.Anime, 0, len(records))
	for _, r := range records {
		if seen[r.MalID] {
			continue
		}
		seen[r.MalID] = true
		r.Year = year
		r.Season = season
		out = append(out, r)
	}
	return out
}
