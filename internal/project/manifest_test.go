package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"corec/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "corec.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_ResolvesRelativeSourcesAgainstManifestDir(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name = "demo"
sources = ["main.sg", "util.sg"]
`)
	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q, want %q", m.Name, "demo")
	}
	want := []string{filepath.Join(dir, "main.sg"), filepath.Join(dir, "util.sg")}
	for i, s := range m.Sources {
		if s != want[i] {
			t.Errorf("Sources[%d] = %q, want %q", i, s, want[i])
		}
	}
}

func TestLoad_AbsoluteSourcesAreLeftAsIs(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "abs.sg")
	path := writeManifest(t, dir, `
name = "demo"
sources = ["`+filepath.ToSlash(abs)+`"]
`)
	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Sources[0] != abs {
		t.Errorf("Sources[0] = %q, want %q", m.Sources[0], abs)
	}
}

func TestLoad_MissingNameIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `sources = ["main.sg"]`)
	if _, err := project.Load(path); err == nil {
		t.Fatal("expected an error for a manifest with no name")
	}
}

func TestLoad_EmptySourcesIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `name = "demo"`)
	if _, err := project.Load(path); err == nil {
		t.Fatal("expected an error for a manifest with no sources")
	}
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	if _, err := project.Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a nonexistent manifest")
	}
}
