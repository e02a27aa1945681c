package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nkcx/mediawiki-docker/internal/component"
)

func TestLoad_MissingFile(t *testing.T) {
	installed, err := Load(filepath.Join(t.TempDir(), "nope"), component.Extension)
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(installed) != 0 {
		t.Errorf("expected empty mapping, got %v", installed)
	}
}

func TestLoad_FiltersByType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed")
	content := "extension:Cite:git\nskin:Vector:git\nextension:SemanticMediaWiki:composer\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	exts, err := Load(path, component.Extension)
	if err != nil {
		t.Fatal(err)
	}
	if len(exts) != 2 {
		t.Fatalf("expected 2 extensions, got %v", exts)
	}
	if exts["Cite"] != component.SourceGit {
		t.Errorf("Cite source = %q, want git", exts["Cite"])
	}
	if exts["SemanticMediaWiki"] != component.SourceComposer {
		t.Errorf("SemanticMediaWiki source = %q, want composer", exts["SemanticMediaWiki"])
	}

	skins, err := Load(path, component.Skin)
	if err != nil {
		t.Fatal(err)
	}
	if len(skins) != 1 || skins["Vector"] != component.SourceGit {
		t.Errorf("expected Vector:git, got %v", skins)
	}
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed")
	content := "extension:Cite:git\ngarbage\nextension:broken\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	exts, err := Load(path, component.Extension)
	if err != nil {
		t.Fatal(err)
	}
	if len(exts) != 1 {
		t.Errorf("expected only the well-formed record, got %v", exts)
	}
}

func TestWrite_TruncatesAndOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed")
	if err := os.WriteFile(path, []byte("extension:Stale:git\n"), 0644); err != nil {
		t.Fatal(err)
	}

	entries := []Entry{
		{Type: component.Extension, Name: "Cite", Source: component.SourceGit},
		{Type: component.Extension, Name: "Scribunto", Source: component.SourceExisting},
	}
	if err := Write(path, entries); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "extension:Cite:git\nextension:Scribunto:existing\n"
	if string(data) != want {
		t.Errorf("manifest = %q, want %q", data, want)
	}
}

func TestPackages_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.installed")

	if err := WritePackages(path, []string{"mediawiki/semantic-media-wiki", "mediawiki/maps"}); err != nil {
		t.Fatal(err)
	}
	pkgs, err := LoadPackages(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 2 || pkgs[0] != "mediawiki/semantic-media-wiki" || pkgs[1] != "mediawiki/maps" {
		t.Errorf("unexpected packages: %v", pkgs)
	}

	// empty write clears the manifest
	if err := WritePackages(path, nil); err != nil {
		t.Fatal(err)
	}
	pkgs, err = LoadPackages(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 0 {
		t.Errorf("expected cleared manifest, got %v", pkgs)
	}
}
