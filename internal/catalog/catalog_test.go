package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/farmtech/fieldbook/internal/apperr"
)

const sampleYAML = `Soybean:
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
  seeds:
    name: Corn seeds
    unit: kg
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cat.Has("Soybean") || !cat.Has("Corn") {
		t.Error("expected Soybean and Corn")
	}
	if cat.Has("Wheat") {
		t.Error("Wheat should not exist")
	}
}

func TestCropTypesOrder(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := cat.CropTypes()
	if len(got) != 2 || got[0] != "Soybean" || got[1] != "Corn" {
		t.Errorf("CropTypes = %v, want declaration order [Soybean Corn]", got)
	}
}

func TestKindsOrder(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	kinds, err := cat.Kinds("Corn")
	if err != nil {
		t.Fatalf("Kinds: %v", err)
	}
	var got []string
	for kind := kinds.Oldest(); kind != nil; kind = kind.Next() {
		got = append(got, kind.Key)
	}
	if len(got) != 2 || got[0] != "fertilizer" || got[1] != "seeds" {
		t.Errorf("kinds = %v, want declaration order [fertilizer seeds]", got)
	}
}

func TestKindsContent(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	kinds, _ := cat.Kinds("Soybean")
	info, ok := kinds.Get("pesticide")
	if !ok {
		t.Fatal("pesticide missing")
	}
	if info.Name != "Glyphosate" || info.Unit != "L" {
		t.Errorf("pesticide = %+v", info)
	}
}

func TestKindsUnknownCrop(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cat.Kinds("Wheat"); !errors.Is(err, apperr.ErrUnknownCrop) {
		t.Errorf("err = %v, want ErrUnknownCrop", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestLoadRejectsMissingUnit(t *testing.T) {
	bad := `Soybean:
  fertilizer:
    name: Nitrogen fertilizer
`
	if _, err := Load(writeCatalog(t, bad)); err == nil {
		t.Error("expected validation error for missing unit")
	}
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	if _, err := Load(writeCatalog(t, "{}\n")); err == nil {
		t.Error("expected error for catalog without crop types")
	}
}

func TestLoadRejectsNonMappingRoot(t *testing.T) {
	if _, err := Load(writeCatalog(t, "- a\n- b\n")); err == nil {
		t.Error("expected error for sequence root")
	}
}
