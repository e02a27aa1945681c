// Package desired builds the desired-state sets for a run from the
// line-oriented declarative lists supplied through the environment.
package desired

import (
	"strings"

	"github.com/nkcx/mediawiki-docker/internal/naming"
)

// AnyVersion is the composer constraint used when a package line carries none
const AnyVersion = "*"

// Package is one desired composer package
type Package struct {
	Name       string
	Constraint string
}

// State is the full desired state for a run. Slices preserve declaration
// order; the generated configuration loads components in exactly this order.
type State struct {
	Extensions []string
	Skins      []string
	Packages   []Package

	// ComposerProvided maps inferred extension names to true for every
	// desired package under a known provider namespace. Extensions found
	// here are satisfied by composer and skipped by the git installer.
	ComposerProvided map[string]bool
}

// Build parses the three declarative lists. Each list is line oriented:
// blank lines and lines starting with '#' are ignored, everything else is
// trimmed. Package lines are name[:constraint] with a missing constraint
// meaning any version.
func Build(packages, extensions, skins string, composerPrefixes ...string) State {
	s := State{ComposerProvided: make(map[string]bool)}

	for _, line := range splitList(packages) {
		name, constraint, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		constraint = strings.TrimSpace(constraint)
		if !ok || constraint == "" {
			constraint = AnyVersion
		}
		s.Packages = append(s.Packages, Package{Name: name, Constraint: constraint})

		if ext, inferred := naming.InferExtension(name, composerPrefixes...); inferred {
			s.ComposerProvided[ext] = true
		}
	}

	s.Extensions = splitList(extensions)
	s.Skins = splitList(skins)

	return s
}

// PackageNames returns the desired package names in declaration order
func (s State) PackageNames() []string {
	names := make([]string, 0, len(s.Packages))
	for _, p := range s.Packages {
		names = append(names, p.Name)
	}
	return names
}

// WantsExtension reports whether name is in the desired extension set
func (s State) WantsExtension(name string) bool {
	return contains(s.Extensions, name)
}

// WantsSkin reports whether name is in the desired skin set
func (s State) WantsSkin(name string) bool {
	return contains(s.Skins, name)
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
