// Package mediawiki covers the touchpoints with the host application: the
// installed-version probe, the bundled-component bootstrap, the schema
// migration script, and the final process handoff.
package mediawiki

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// FallbackBranch is the compatibility branch used when the installed
// MediaWiki version cannot be determined.
const FallbackBranch = "REL1_43"

var (
	mwVersionRe = regexp.MustCompile(`define\(\s*'MW_VERSION',\s*'(\d+\.\d+[^']*)'`)
	wgVersionRe = regexp.MustCompile(`\$wgVersion\s*=\s*'(\d+\.\d+[^']*)'`)
	relRe       = regexp.MustCompile(`^(\d+)\.(\d+)`)
)

// DetectVersion reads the installed MediaWiki version from the tree at root.
// It checks the MW_VERSION define first (1.35+), then the legacy $wgVersion
// assignment.
func DetectVersion(root string) (string, error) {
	candidates := []struct {
		file string
		re   *regexp.Regexp
	}{
		{filepath.Join(root, "includes", "Defines.php"), mwVersionRe},
		{filepath.Join(root, "includes", "DefaultSettings.php"), wgVersionRe},
	}

	for _, c := range candidates {
		data, err := os.ReadFile(c.file)
		if err != nil {
			continue
		}
		if m := c.re.FindSubmatch(data); m != nil {
			return string(m[1]), nil
		}
	}

	return "", fmt.Errorf("mediawiki version marker not found under %s", root)
}

// DefaultBranch derives the REL<major>_<minor> compatibility branch from a
// version string, falling back to FallbackBranch when the version is empty
// or unparsable.
func DefaultBranch(version string) string {
	m := relRe.FindStringSubmatch(version)
	if m == nil {
		return FallbackBranch
	}
	return fmt.Sprintf("REL%s_%s", m[1], m[2])
}
