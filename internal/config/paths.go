package config

import (
	"os"
	"path/filepath"

	"github.com/nkcx/mediawiki-docker/internal/component"
)

// Paths holds all resolved paths for init operations
type Paths struct {
	RootDir   string // /var/www/html (live MediaWiki tree, on the volume)
	BundleDir string // /usr/src/mediawiki (pristine tree shipped in the image)
	DataDir   string // /var/www/data (manifests, secrets, stamp, overrides)
}

// ResolvePaths resolves all paths based on environment and defaults
func ResolvePaths() *Paths {
	rootDir := os.Getenv("MEDIAWIKI_ROOT")
	if rootDir == "" {
		rootDir = "/var/www/html"
	}

	bundleDir := os.Getenv("MEDIAWIKI_BUNDLE_DIR")
	if bundleDir == "" {
		bundleDir = "/usr/src/mediawiki"
	}

	dataDir := os.Getenv("MEDIAWIKI_DATA_DIR")
	if dataDir == "" {
		dataDir = "/var/www/data"
	}

	return &Paths{
		RootDir:   rootDir,
		BundleDir: bundleDir,
		DataDir:   dataDir,
	}
}

// TypeDir returns the directory holding all components of a type
func (p *Paths) TypeDir(typ component.Type) string {
	return filepath.Join(p.RootDir, typ.Dir())
}

// ComponentDir returns the directory for a specific component
func (p *Paths) ComponentDir(typ component.Type, name string) string {
	return filepath.Join(p.RootDir, typ.Dir(), name)
}

// BundleTypeDir returns the bundled pristine directory for a component type
func (p *Paths) BundleTypeDir(typ component.Type) string {
	return filepath.Join(p.BundleDir, typ.Dir())
}

// ManifestPath returns the install-state manifest for a component type
func (p *Paths) ManifestPath(typ component.Type) string {
	return filepath.Join(p.DataDir, typ.Dir()+".installed")
}

// PackagesManifestPath returns the composer package manifest
func (p *Paths) PackagesManifestPath() string {
	return filepath.Join(p.DataDir, "composer.installed")
}

// SecretsPath returns the persisted secrets file
func (p *Paths) SecretsPath() string {
	return filepath.Join(p.DataDir, "secrets.env")
}

// StampPath returns the volume bootstrap version stamp
func (p *Paths) StampPath() string {
	return filepath.Join(p.DataDir, ".mw-init-version")
}

// OverridesPath returns the optional per-component overrides file
func (p *Paths) OverridesPath() string {
	if path := os.Getenv("MEDIAWIKI_OVERRIDES_FILE"); path != "" {
		return path
	}
	return filepath.Join(p.DataDir, "overrides.toml")
}

// LocalSettingsPath returns the generated configuration artifact
func (p *Paths) LocalSettingsPath() string {
	return filepath.Join(p.RootDir, "LocalSettings.php")
}

// ComposerLocalPath returns the composer requirement file consumed by
// MediaWiki's composer merge plugin
func (p *Paths) ComposerLocalPath() string {
	return filepath.Join(p.RootDir, "composer.local.json")
}

// EnsureDataDir creates the data directory if needed. This runs before the
// reconciliation sequence; failure here is pipeline-fatal.
func (p *Paths) EnsureDataDir() error {
	return os.MkdirAll(p.DataDir, 0755)
}
