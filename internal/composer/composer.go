// Package composer drives the dependency-manager backend: it owns the
// composer.local.json requirement file and runs composer update against the
// MediaWiki root.
package composer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/nkcx/mediawiki-docker/internal/desired"
)

// ComposerError wraps a failed composer operation
type ComposerError struct {
	Op  string
	Err error
}

func (e *ComposerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ComposerError) Unwrap() error {
	return e.Err
}

// RunFunc executes one composer invocation in dir. Replaced in tests.
type RunFunc func(ctx context.Context, dir string, args ...string) error

// Manager owns the requirement file and the composer binary
type Manager struct {
	dir              string // MediaWiki root; composer runs here
	requirementsPath string // composer.local.json
	run              RunFunc
}

// New creates a manager backed by the real composer binary
func New(dir, requirementsPath string) *Manager {
	return &Manager{dir: dir, requirementsPath: requirementsPath, run: execComposer}
}

// NewWithRunner creates a manager with a custom command runner
func NewWithRunner(dir, requirementsPath string, run RunFunc) *Manager {
	return &Manager{dir: dir, requirementsPath: requirementsPath, run: run}
}

func execComposer(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "composer", args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// requirements is the composer.local.json document. The merge-plugin block
// makes composer pick up per-extension composer.json files, matching
// MediaWiki's composer.local.json-sample.
type requirements struct {
	Require map[string]string `json:"require"`
	Extra   extra             `json:"extra"`
}

type extra struct {
	MergePlugin mergePlugin `json:"merge-plugin"`
}

type mergePlugin struct {
	Include []string `json:"include"`
}

// Sync regenerates the requirement file from the full desired package set
// (an overwrite, not a merge) and runs composer update, which installs
// missing packages and upgrades present ones within each constraint.
func (m *Manager) Sync(ctx context.Context, pkgs []desired.Package) error {
	if err := m.WriteRequirements(pkgs); err != nil {
		return err
	}
	if err := m.run(ctx, m.dir, "update", "--no-dev", "--no-interaction"); err != nil {
		return &ComposerError{Op: "composer update", Err: err}
	}
	return nil
}

// WriteRequirements rewrites composer.local.json with exactly one require
// entry per desired package.
func (m *Manager) WriteRequirements(pkgs []desired.Package) error {
	doc := requirements{
		Require: make(map[string]string, len(pkgs)),
		Extra: extra{
			MergePlugin: mergePlugin{
				Include: []string{"extensions/*/composer.json", "skins/*/composer.json"},
			},
		},
	}
	for _, p := range pkgs {
		doc.Require[p.Name] = p.Constraint
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return &ComposerError{Op: "encode requirements", Err: err}
	}
	if err := os.WriteFile(m.requirementsPath, buf.Bytes(), 0644); err != nil {
		return &ComposerError{Op: "write requirements", Err: err}
	}
	return nil
}

// Clear removes the requirement file. Used when no packages are desired.
func (m *Manager) Clear() error {
	if err := os.Remove(m.requirementsPath); err != nil && !os.IsNotExist(err) {
		return &ComposerError{Op: "remove requirements", Err: err}
	}
	return nil
}
