package mediawiki

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectVersion_Defines(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "includes/Defines.php",
		"<?php\ndefine( 'MW_VERSION', '1.43.1' );\n")

	got, err := DetectVersion(root)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.43.1" {
		t.Errorf("version = %q, want 1.43.1", got)
	}
}

func TestDetectVersion_LegacyWgVersion(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "includes/DefaultSettings.php",
		"<?php\n$wgVersion = '1.31.16';\n")

	got, err := DetectVersion(root)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.31.16" {
		t.Errorf("version = %q, want 1.31.16", got)
	}
}

func TestDetectVersion_Missing(t *testing.T) {
	if _, err := DetectVersion(t.TempDir()); err == nil {
		t.Error("expected an error for a tree with no version marker")
	}
}

func TestDefaultBranch(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.43.1", "REL1_43"},
		{"1.39.0", "REL1_39"},
		{"1.43.0-rc.1", "REL1_43"},
		{"", FallbackBranch},
		{"garbage", FallbackBranch},
	}

	for _, tt := range tests {
		if got := DefaultBranch(tt.version); got != tt.want {
			t.Errorf("DefaultBranch(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}
