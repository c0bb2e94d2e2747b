// Package testutil provides shared test helpers for catalog and data
// directory fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/farmtech/fieldbook/internal/catalog"
	"github.com/farmtech/fieldbook/internal/storage"
)

// SampleCatalogYAML mirrors the shape of the shipped catalog document.
const SampleCatalogYAML = `Soybean:
  fertilizer:
    name: Nitrogen fertilizer
    unit: kg
  pesticide:
    name: Glyphosate
    unit: L
Corn:
  fertilizer:
    name: NPK 20-05-20
    unit: kg
  pesticide:
    name: Atrazine
    unit: L
  seeds:
    name: Corn seeds
    unit: kg
`

// TestCatalog loads a sample catalog from a temp file.
func TestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(SampleCatalogYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

// TestDataDir creates a temporary data directory with a storage.Dir provider.
func TestDataDir(t *testing.T) (string, *storage.Dir) {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.NewDir(dir)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	return dir, files
}
