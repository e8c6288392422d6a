// Package store persists the catalog as flat JSON files:
// {dir}/{year}/{season}.json partitions plus a {dir}/manifest.json index.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"animehub/internal/catalog"
)

type FileStore struct {
	dir string
}

func New(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) partitionPath(year int, season catalog.Season) string {
	return filepath.Join(s.dir, strconv.Itoa(year), string(season)+".json")
}

func (s *FileStore) manifestPath() string {
	return filepath.Join(s.dir, "manifest.json")
}

// PartitionExists reports whether a partition file is on disk.
func (s *FileStore) PartitionExists(year int, season catalog.Season) bool {
	_, err := os.Stat(s.partitionPath(year, season))
	return err == nil
}

func (s *FileStore) LoadPartition(year int, season catalog.Season) ([]catalog.Anime, error) {
	data, err := os.ReadFile(s.partitionPath(year, season))
	if err != nil {
		return nil, fmt.Errorf("read partition %d/%s: %w", year, season, err)
	}
	var records []catalog.Anime
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse partition %d/%s: %w", year, season, err)
	}
	return records, nil
}

func (s *FileStore) SavePartition(year int, season catalog.Season, records []catalog.Anime) error {
	dir := filepath.Join(s.dir, strconv.Itoa(year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create partition dir: %w", err)
	}
	return WriteJSON(s.partitionPath(year, season), records)
}

func (s *FileStore) LoadManifest() ([]catalog.ManifestEntry, error) {
	data, err := os.ReadFile(s.manifestPath())
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest []catalog.ManifestEntry
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return manifest, nil
}

// SaveManifest writes the manifest sorted by year then season order so
// reruns produce identical files.
func (s *FileStore) SaveManifest(manifest []catalog.ManifestEntry) error {
	SortManifest(manifest)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return WriteJSON(s.manifestPath(), manifest)
}

// UpsertManifestEntry replaces or appends the entry for one partition and
// rewrites the manifest. Missing manifests start empty.
func (s *FileStore) UpsertManifestEntry(entry catalog.ManifestEntry) error {
	manifest, err := s.LoadManifest()
	if err != nil {
		manifest = nil
	}
	out := manifest[:0]
	for _, e := range manifest {
		if e.Year == entry.Year && e.Season == entry.Season {
			continue
		}
		out = append(out, e)
	}
	out = append(out, entry)
	return s.SaveManifest(out)
}

// SortManifest orders entries by year ascending, then broadcast season
// order within the year.
func SortManifest(manifest []catalog.ManifestEntry) {
	sort.SliceStable(manifest, func(i, j int) bool {
		if manifest[i].Year != manifest[j].Year {
			return manifest[i].Year < manifest[j].Year
		}
		return manifest[i].Season.Order() < manifest[j].Season.Order()
	})
}

// Years lists the year directories present in the data dir.
func (s *FileStore) Years() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var years []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if year, err := strconv.Atoi(e.Name()); err == nil {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years, nil
}

// Dedup removes duplicate ids from a partition's records, keeping first
// occurrences, and reports how many were dropped.
func Dedup(records []catalog.Anime) ([]catalog.Anime, int) {
	seen := make(map[int64]bool, len(records))
	out := make([]catalog.Anime, 0, len(records))
	dropped := 0
	for _, r := range records {
		if seen[r.MalID] {
			dropped++
			continue
		}
		seen[r.MalID] = true
		out = append(out, r)
	}
	return out, dropped
}

// Clean runs a dedup pass over every partition file on disk, rewriting
// only the files where duplicates were found. It returns the number of
// files rewritten and duplicates removed.
func (s *FileStore) Clean() (files int, duplicates int, err error) {
	years, err := s.Years()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	for _, year := range years {
		for _, season := range catalog.Seasons {
			if !s.PartitionExists(year, season) {
				continue
			}
			records, err := s.LoadPartition(year, season)
			if err != nil {
				return files, duplicates, err
			}
			cleaned, dropped := Dedup(records)
			if dropped == 0 {
				continue
			}
			if err := s.SavePartition(year, season, cleaned); err != nil {
				return files, duplicates, err
			}
			files++
			duplicates += dropped
		}
	}
	return files, duplicates, nil
}

// WriteJSON writes pretty-printed JSON without HTML escaping, the format
// every file in the data dir uses.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
