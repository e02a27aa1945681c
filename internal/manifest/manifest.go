// Package manifest reads and writes the persisted install-state records:
// one colon-delimited manifest per component type, plus the composer package
// manifest. Manifests are rewritten in full on every reconciliation pass.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/nkcx/mediawiki-docker/internal/component"
)

// Entry is one persisted record of a successfully applied component
type Entry struct {
	Type   component.Type
	Name   string
	Source component.Source
}

// Load parses a type:name:source manifest and returns the name -> source
// mapping for the requested type. A missing file is an empty mapping.
func Load(path string, typ component.Type) (map[string]component.Source, error) {
	installed := make(map[string]component.Source)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return installed, nil
		}
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}
		if component.Type(parts[0]) != typ {
			continue
		}
		installed[parts[1]] = component.Source(parts[2])
	}

	return installed, nil
}

// Write truncates path and writes exactly the given entries, in order.
// Components that failed to install this pass must not be passed in, so a
// failed install is retried on the next start instead of being treated as
// satisfied.
func Write(path string, entries []Entry) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s:%s:%s\n", e.Type, e.Name, e.Source)
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// LoadPackages reads the composer package manifest, one package name per
// line. A missing file is an empty list.
func LoadPackages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pkgs []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			pkgs = append(pkgs, line)
		}
	}
	return pkgs, nil
}

// WritePackages rewrites the composer package manifest in full. An empty
// list truncates the file, clearing the manifest.
func WritePackages(path string, names []string) error {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
