package desired

import (
	"reflect"
	"testing"
)

func TestBuild_Lists(t *testing.T) {
	extensions := "\nCite\n# a comment\n  VisualEditor  \n\nScribunto\n"
	skins := "Vector\nTimeless"

	s := Build("", extensions, skins)

	wantExt := []string{"Cite", "VisualEditor", "Scribunto"}
	if !reflect.DeepEqual(s.Extensions, wantExt) {
		t.Errorf("Extensions = %v, want %v", s.Extensions, wantExt)
	}
	wantSkins := []string{"Vector", "Timeless"}
	if !reflect.DeepEqual(s.Skins, wantSkins) {
		t.Errorf("Skins = %v, want %v", s.Skins, wantSkins)
	}
	if len(s.Packages) != 0 || len(s.ComposerProvided) != 0 {
		t.Errorf("empty package list should produce no packages, got %v", s.Packages)
	}
}

func TestBuild_Packages(t *testing.T) {
	packages := "mediawiki/semantic-media-wiki:^4.0\nwikimedia/less.php\n# skip\nmediawiki/maps:\n"

	s := Build(packages, "", "")

	want := []Package{
		{Name: "mediawiki/semantic-media-wiki", Constraint: "^4.0"},
		{Name: "wikimedia/less.php", Constraint: AnyVersion},
		{Name: "mediawiki/maps", Constraint: AnyVersion},
	}
	if !reflect.DeepEqual(s.Packages, want) {
		t.Errorf("Packages = %v, want %v", s.Packages, want)
	}

	if !s.ComposerProvided["SemanticMediaWiki"] {
		t.Error("SemanticMediaWiki should be composer-provided")
	}
	if !s.ComposerProvided["Maps"] {
		t.Error("Maps should be composer-provided")
	}
	if s.ComposerProvided["Less.php"] {
		t.Error("packages outside the provider namespace must not be inferred")
	}
}

func TestBuild_CustomPrefix(t *testing.T) {
	s := Build("vendor/foo-bar:^2.0", "FooBar", "", "vendor/")

	if !s.ComposerProvided["FooBar"] {
		t.Error("FooBar should be composer-provided under prefix vendor/")
	}
	if !s.WantsExtension("FooBar") {
		t.Error("FooBar should be a desired extension")
	}
}

func TestState_Wants(t *testing.T) {
	s := Build("", "Cite", "Vector")

	if !s.WantsExtension("Cite") || s.WantsExtension("Vector") {
		t.Error("WantsExtension wrong")
	}
	if !s.WantsSkin("Vector") || s.WantsSkin("Cite") {
		t.Error("WantsSkin wrong")
	}
}

func TestState_PackageNames(t *testing.T) {
	s := Build("a/x:1\nb/y", "", "")
	got := s.PackageNames()
	want := []string{"a/x", "b/y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PackageNames = %v, want %v", got, want)
	}
}
