package assets

import (
	"os"
	"path/filepath"
	"testing"

	"taipamap/pkg/model"
)

func writePhoto(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not really an image"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveHit(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, filepath.Join(dir, "tremedal/fotos-total/IMG_001.jpg"))
	writePhoto(t, filepath.Join(dir, "tremedal/fotos-total/IMG_002.png"))
	writePhoto(t, filepath.Join(dir, "tremedal/fotos-total/notes.txt"))

	ix := Build(dir, []model.Source{
		{Name: "tremedal-total", PhotoDir: "tremedal/fotos-total"},
	})

	if ix.Len() != 2 {
		t.Errorf("indexed %d photos, want 2 (non-image files skipped)", ix.Len())
	}

	path, ok := ix.Resolve("tremedal/fotos-total", "IMG_001")
	if !ok {
		t.Fatal("expected index hit for IMG_001")
	}
	if filepath.Base(path) != "IMG_001.jpg" {
		t.Errorf("resolved %q", path)
	}

	// Extension-agnostic: identifier matches the png too.
	if _, ok := ix.Resolve("tremedal/fotos-total", "IMG_002"); !ok {
		t.Error("expected index hit for IMG_002")
	}
}

func TestResolveMissFallsBackToConstructedPath(t *testing.T) {
	dir := t.TempDir()
	ix := Build(dir, []model.Source{
		{Name: "anage-total", PhotoDir: "anage/fotos-total"},
	})

	path, ok := ix.Resolve("anage/fotos-total", "missing")
	if ok {
		t.Error("expected miss")
	}
	want := filepath.Join(dir, "anage/fotos-total", "missing.jpg")
	if path != want {
		t.Errorf("fallback path = %q, want %q", path, want)
	}
}

func TestResolveExactDirectoryKey(t *testing.T) {
	dir := t.TempDir()
	// Two directories where one's path is a suffix of the other. The
	// exact-pair key must keep them apart.
	writePhoto(t, filepath.Join(dir, "fotos/casa.jpg"))
	writePhoto(t, filepath.Join(dir, "velhas-fotos/casa.jpg"))

	ix := Build(dir, []model.Source{
		{Name: "a", PhotoDir: "fotos"},
		{Name: "b", PhotoDir: "velhas-fotos"},
	})

	pa, ok := ix.Resolve("fotos", "casa")
	if !ok {
		t.Fatal("expected hit in fotos")
	}
	pb, ok := ix.Resolve("velhas-fotos", "casa")
	if !ok {
		t.Fatal("expected hit in velhas-fotos")
	}
	if pa == pb {
		t.Error("same identifier in different directories must resolve to different files")
	}
}

func TestBuildToleratesMissingDirectory(t *testing.T) {
	ix := Build(t.TempDir(), []model.Source{
		{Name: "ghost", PhotoDir: "does/not/exist"},
	})
	if ix.Len() != 0 {
		t.Errorf("expected empty index, got %d", ix.Len())
	}
	if _, ok := ix.Resolve("does/not/exist", "x"); ok {
		t.Error("expected miss for unindexed directory")
	}
}
