package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve_GeneratesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.env")

	pair, err := Resolve(Explicit{}, path)
	if err != nil {
		t.Fatal(err)
	}

	if len(pair.SecretKey) != 64 {
		t.Errorf("secret key length = %d, want 64 hex chars", len(pair.SecretKey))
	}
	if len(pair.UpgradeKey) != 32 {
		t.Errorf("upgrade key length = %d, want 32 hex chars", len(pair.UpgradeKey))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "SECRET_KEY='"+pair.SecretKey+"'") {
		t.Errorf("secret key not persisted:\n%s", content)
	}
	if !strings.Contains(content, "UPGRADE_KEY='"+pair.UpgradeKey+"'") {
		t.Errorf("upgrade key not persisted:\n%s", content)
	}
}

func TestResolve_StableAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.env")

	first, err := Resolve(Explicit{}, path)
	if err != nil {
		t.Fatal(err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		again, err := Resolve(Explicit{}, path)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("run %d: secrets changed: %+v != %+v", i, again, first)
		}
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("persisted file modified by a run with both values already set")
	}
}

func TestResolve_ExplicitOverrideNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.env")

	pair, err := Resolve(Explicit{SecretKey: "deadbeef"}, path)
	if err != nil {
		t.Fatal(err)
	}
	if pair.SecretKey != "deadbeef" {
		t.Errorf("explicit secret key ignored, got %q", pair.SecretKey)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "deadbeef") {
		t.Error("explicit override leaked into the persisted file")
	}
	if !strings.Contains(string(data), "UPGRADE_KEY='") {
		t.Error("non-overridden upgrade key should still be generated and persisted")
	}
}

func TestResolve_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.env")
	if err := os.WriteFile(path, []byte("SECRET_KEY='abc123'\n"), 0600); err != nil {
		t.Fatal(err)
	}

	pair, err := Resolve(Explicit{}, path)
	if err != nil {
		t.Fatal(err)
	}
	if pair.SecretKey != "abc123" {
		t.Errorf("persisted secret key not honored, got %q", pair.SecretKey)
	}
	if pair.UpgradeKey == "" {
		t.Error("missing upgrade key should be generated")
	}

	// the generated upgrade key must now be durable
	again, err := Resolve(Explicit{}, path)
	if err != nil {
		t.Fatal(err)
	}
	if again.UpgradeKey != pair.UpgradeKey {
		t.Error("generated upgrade key not persisted")
	}
}

func TestLoadFile_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.env")
	content := "# comment\nSECRET_KEY='good'\nbroken line\nUPGRADE_KEY=unquoted\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	values, err := loadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if values["SECRET_KEY"] != "good" {
		t.Errorf("SECRET_KEY = %q, want \"good\"", values["SECRET_KEY"])
	}
	if _, ok := values["UPGRADE_KEY"]; ok {
		t.Error("unquoted value should be skipped")
	}
}
