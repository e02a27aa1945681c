// Package component defines the unit types managed by the reconciler:
// MediaWiki extensions and skins, together with their recorded install
// provenance and per-component override fields.
package component

// Type is the kind of component (extension or skin)
type Type string

const (
	Extension Type = "extension"
	Skin      Type = "skin"
)

// AllTypes returns all component types in reconciliation order
func AllTypes() []Type {
	return []Type{Extension, Skin}
}

// Dir returns the directory name under the MediaWiki root for this type
func (t Type) Dir() string {
	switch t {
	case Extension:
		return "extensions"
	case Skin:
		return "skins"
	default:
		return string(t) + "s"
	}
}

func (t Type) String() string {
	return string(t)
}

// Source is the recorded install provenance of a component
type Source string

const (
	// SourceGit means the component directory is a git checkout managed by us
	SourceGit Source = "git"
	// SourceComposer means the component is satisfied by a composer package
	SourceComposer Source = "composer"
	// SourceExisting means the directory pre-existed and is left untouched
	SourceExisting Source = "existing"
)

// Overrides holds the per-component override fields. Empty string means
// "not set, use the default".
type Overrides struct {
	Repo        string // clone URL instead of the default gerrit URL
	Branch      string // branch instead of the version-derived REL branch
	Tag         string // tag to check out (wins over branch)
	Commit      string // commit to check out (wins over tag and branch)
	PostInstall string // shell command run inside the component dir after install/update
	LoadCommand string // full load directive instead of the default (extensions only)
}
