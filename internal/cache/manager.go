// Package cache downloads and keeps the Natural Earth layers drawn under the
// hexagons.
package cache

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"h3vector/internal/debug"
)

// DefaultBaseURL is the Natural Earth CDN
const DefaultBaseURL = "https://naciscdn.org/naturalearth"

// Manager handles downloading and caching Natural Earth data
type Manager struct {
	cacheDir string
	baseURL  string
	client   *http.Client
	progress io.Writer
}

// DataFile represents a Natural Earth dataset to download
type DataFile struct {
	Name string // Friendly name
	Path string // Path below the base URL
	Base string // Base filename (without extension)
}

// NaturalEarthFiles are the 1:110m basemap layers. Coarse data is enough
// under a hexagon overlay and keeps global rasterizing cheap.
var NaturalEarthFiles = []DataFile{
	{
		Name: "Coastlines",
		Path: "110m/physical/ne_110m_coastline.zip",
		Base: "ne_110m_coastline",
	},
	{
		Name: "Country Borders",
		Path: "110m/cultural/ne_110m_admin_0_boundary_lines_land.zip",
		Base: "ne_110m_admin_0_boundary_lines_land",
	},
}

// NewManager creates a new cache manager
// If cacheDir is empty, uses ~/.h3vector/data
func NewManager(cacheDir string) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".h3vector", "data")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Manager{
		cacheDir: cacheDir,
		baseURL:  DefaultBaseURL,
		client:   &http.Client{Timeout: 60 * time.Second},
		progress: io.Discard,
	}, nil
}

// SetBaseURL points downloads at another mirror
func (m *Manager) SetBaseURL(url string) {
	m.baseURL = strings.TrimSuffix(url, "/")
}

// SetProgress sets where download progress lines are printed
func (m *Manager) SetProgress(w io.Writer) {
	m.progress = w
}

// EnsureData downloads every missing layer. The basemap is optional, so a
// failed layer is reported and skipped; the returned count is the number of
// layers available afterwards.
func (m *Manager) EnsureData(ctx context.Context) int {
	available := 0
	for _, file := range NaturalEarthFiles {
		if err := m.ensureFile(ctx, file); err != nil {
			fmt.Fprintf(m.progress, "Warning: Skipping %s: %v\n", file.Name, err)
			debug.L().Warn("basemap download failed", "layer", file.Name, "err", err)
			continue
		}
		available++
	}
	return available
}

// ensureFile checks if a data file exists, downloads if needed
func (m *Manager) ensureFile(ctx context.Context, file DataFile) error {
	if _, err := os.Stat(m.GetDataPath(file.Base)); err == nil {
		return nil
	}

	url := m.baseURL + "/" + file.Path
	fmt.Fprintf(m.progress, "Downloading %s...\n", file.Name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; h3vector/1.0)")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s (URL: %s)", resp.Status, url)
	}

	tmpFile, err := os.CreateTemp("", "ne_*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	tmpFile.Close()

	if err := m.extractZip(tmpFile.Name(), m.cacheDir); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}

	if _, err := os.Stat(m.GetDataPath(file.Base)); err != nil {
		return fmt.Errorf("archive has no %s.shp", file.Base)
	}

	fmt.Fprintf(m.progress, "Downloaded and extracted %s\n", file.Name)
	return nil
}

// extractZip flattens the archive into destDir, skipping hidden files
func (m *Manager) extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()
		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// GetDataPath returns the cached .shp path of a layer
func (m *Manager) GetDataPath(base string) string {
	return filepath.Join(m.cacheDir, base+".shp")
}

// GetCacheDir returns the cache directory
func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}
