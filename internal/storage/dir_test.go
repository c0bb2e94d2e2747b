package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempDir(t *testing.T) *Dir {
	t.Helper()
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	return d
}

func TestWriteAndRead(t *testing.T) {
	d := tempDir(t)
	content := []byte("type,length\nSoybean,100\n")
	if err := d.Write("crop_data.csv", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := d.Read("crop_data.csv")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	d := tempDir(t)
	_, err := d.Read("nope.csv")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist in the chain", err)
	}
}

func TestWriteOverwritesWholesale(t *testing.T) {
	d := tempDir(t)
	_ = d.Write("crop_data.csv", []byte("old content that is longer"))
	if err := d.Write("crop_data.csv", []byte("new")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := d.Read("crop_data.csv")
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	d := tempDir(t)
	if err := d.Write("crop_data.csv", []byte("data")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(d.root, ".fieldbook-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestListOnlyCSV(t *testing.T) {
	d := tempDir(t)
	_ = d.Write("a.csv", []byte("a"))
	_ = d.Write("b.csv", []byte("b"))
	_ = d.Write("notes.txt", []byte("not csv"))

	got, err := d.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0] != "a.csv" || got[1] != "b.csv" {
		t.Errorf("List = %v, want [a.csv b.csv]", got)
	}
}

func TestTraversalBlocked(t *testing.T) {
	d := tempDir(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.csv",
		"/etc/shadow",
		"",
	}
	for _, name := range cases {
		if _, err := d.Read(name); err == nil {
			t.Errorf("expected error reading %q", name)
		}
		if err := d.Write(name, []byte("x")); err == nil {
			t.Errorf("expected error writing %q", name)
		}
	}
}

func TestNewDirNonExistent(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewDirFileNotDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDir(path); err == nil {
		t.Error("expected error when root is a file")
	}
}
