// Package export turns a sampled cell set into files other tools can read:
// GeoJSON, SVG, KML and ESRI shapefile.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"h3vector/internal/debug"
	"h3vector/internal/grid"
	"h3vector/internal/render"
)

// Format is an export file format
type Format string

const (
	FormatGeoJSON   Format = "geojson"
	FormatSVG       Format = "svg"
	FormatKML       Format = "kml"
	FormatShapefile Format = "shp"
)

// Formats lists every supported format
var Formats = []Format{FormatGeoJSON, FormatSVG, FormatKML, FormatShapefile}

var (
	ErrNoCells       = errors.New("nothing to export: the sampled set is empty")
	ErrNoScene       = errors.New("nothing to export: no rendered scene")
	ErrUnknownFormat = errors.New("unknown export format")
)

// Ext returns the file extension of the format
func (f Format) Ext() string {
	return string(f)
}

// ParseFormats parses a comma separated list such as "geojson,svg"
func ParseFormats(list string) ([]Format, error) {
	var formats []Format
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		found := false
		for _, f := range Formats {
			if string(f) == name {
				formats = append(formats, f)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
		}
	}
	return formats, nil
}

// FileName names an export after the resolution and region it shows
func FileName(resolution int, region string, ext string) string {
	return fmt.Sprintf("h3-hexagons-res%d-%s.%s", resolution, region, ext)
}

// Job is one sampled set to export
type Job struct {
	Cells      []grid.CellID
	Resolution int
	Region     string
	Scene      *render.Scene
}

// Writer writes exports into a directory
type Writer struct {
	dir      string
	provider grid.Provider
}

// NewWriter creates a writer for dir; the directory is created on first use
func NewWriter(dir string, provider grid.Provider) *Writer {
	return &Writer{
		dir:      dir,
		provider: provider,
	}
}

// Dir returns the export directory
func (w *Writer) Dir() string {
	return w.dir
}

// Export writes the job in one format and returns the path written
func (w *Writer) Export(format Format, job Job) (string, error) {
	if len(job.Cells) == 0 {
		return "", ErrNoCells
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(w.dir, FileName(job.Resolution, job.Region, format.Ext()))

	var err error
	switch format {
	case FormatGeoJSON:
		var data []byte
		if data, err = GeoJSON(w.provider, job.Cells); err == nil {
			err = os.WriteFile(path, data, 0644)
		}
	case FormatSVG:
		if job.Scene == nil {
			return "", ErrNoScene
		}
		err = writeFile(path, func(f *os.File) error {
			return render.WriteSVG(f, job.Scene)
		})
	case FormatKML:
		var kml string
		name := strings.TrimSuffix(filepath.Base(path), ".kml")
		if kml, err = KML(w.provider, job.Cells, name); err == nil {
			err = os.WriteFile(path, []byte(kml), 0644)
		}
	case FormatShapefile:
		err = Shapefile(w.provider, job.Cells, path)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("%s export: %w", format, err)
	}

	debug.Log("exported %d cells to %s", len(job.Cells), path)
	return path, nil
}

// writeFile creates path and hands it to write, keeping the first error
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
