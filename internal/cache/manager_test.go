package cache

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// layerZip builds an archive holding the files of one layer
func layerZip(t *testing.T, base string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{base + ".shp", base + ".shx", base + ".dbf", ".DS_Store", "docs/"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(name, "/") {
			w.Write([]byte("data for " + name))
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestServer(t *testing.T, failing string) (*httptest.Server, *int32) {
	t.Helper()

	archives := make(map[string][]byte)
	for _, f := range NaturalEarthFiles {
		archives["/"+f.Path] = layerZip(t, f.Base)
	}

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if failing != "" && strings.Contains(r.URL.Path, failing) {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		data, ok := archives[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestEnsureDataDownloadsOnce(t *testing.T) {
	srv, hits := newTestServer(t, "")
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	m.SetBaseURL(srv.URL + "/")

	if got := m.EnsureData(context.Background()); got != len(NaturalEarthFiles) {
		t.Fatalf("EnsureData = %d layers, want %d", got, len(NaturalEarthFiles))
	}

	for _, f := range NaturalEarthFiles {
		for _, ext := range []string{".shp", ".shx", ".dbf"} {
			if _, err := os.Stat(filepath.Join(m.GetCacheDir(), f.Base+ext)); err != nil {
				t.Errorf("%s%s not extracted: %v", f.Base, ext, err)
			}
		}
	}
	if _, err := os.Stat(filepath.Join(m.GetCacheDir(), ".DS_Store")); err == nil {
		t.Error("hidden file extracted")
	}

	first := atomic.LoadInt32(hits)
	m.EnsureData(context.Background())
	if again := atomic.LoadInt32(hits); again != first {
		t.Errorf("cached layers downloaded again: %d requests, then %d", first, again)
	}
}

func TestEnsureDataSkipsFailedLayer(t *testing.T) {
	srv, _ := newTestServer(t, "coastline")
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	m.SetBaseURL(srv.URL)

	var progress bytes.Buffer
	m.SetProgress(&progress)

	if got := m.EnsureData(context.Background()); got != len(NaturalEarthFiles)-1 {
		t.Errorf("EnsureData = %d layers, want %d", got, len(NaturalEarthFiles)-1)
	}
	if !strings.Contains(progress.String(), "Skipping Coastlines") {
		t.Errorf("progress = %q, want a skip warning", progress.String())
	}
	if _, err := os.Stat(m.GetDataPath("ne_110m_coastline")); err == nil {
		t.Error("failed layer present in cache")
	}
}

func TestEnsureDataCancelled(t *testing.T) {
	srv, _ := newTestServer(t, "")
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	m.SetBaseURL(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := m.EnsureData(ctx); got != 0 {
		t.Errorf("EnsureData after cancel = %d layers, want 0", got)
	}
}
