package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"animehub/internal/catalog"
	"animehub/internal/store"
)

// HTTPSource reads the manifest and partitions from a static file host,
// the same layout the published catalog serves.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSource) Manifest(ctx context.Context) ([]catalog.ManifestEntry, error) {
	var manifest []catalog.ManifestEntry
	if err := s.getJSON(ctx, s.BaseURL+"/manifest.json", &manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (s *HTTPSource) Partition(ctx context.Context, year int, season catalog.Season) ([]catalog.Anime, error) {
	var records []catalog.Anime
	url := fmt.Sprintf("%s/%d/%s.json", s.BaseURL, year, season)
	if err := s.getJSON(ctx, url, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetch %s: status %d: %s", url, resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// DirSource reads the same layout from a local data directory, the one the
// scraper writes into.
type DirSource struct {
	store *store.FileStore
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{store: store.New(dir)}
}

func (s *DirSource) Manifest(ctx context.Context) ([]catalog.ManifestEntry, error) {
	return s.store.LoadManifest()
}

func (s *DirSource) Partition(ctx context.Context, year int, season catalog.Season) ([]catalog.Anime, error) {
	return s.store.LoadPartition(year, season)
}
