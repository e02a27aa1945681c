// Package reconcile implements the core of the init sequence: diffing the
// previously installed component set against the desired set and applying
// removals, composer sync, and per-component installs and updates in order.
package reconcile

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nkcx/mediawiki-docker/internal/component"
	"github.com/nkcx/mediawiki-docker/internal/config"
	"github.com/nkcx/mediawiki-docker/internal/desired"
	"github.com/nkcx/mediawiki-docker/internal/manifest"
)

// VCS is the version-control backend used to install and update components
type VCS interface {
	IsCheckout(dir string) bool
	Clone(ctx context.Context, url, dest string) error
	Fetch(ctx context.Context, dir string) error
	Checkout(ctx context.Context, dir, ref string) error
	SyncBranch(ctx context.Context, dir, branch string) error
}

// PackageManager is the dependency-manager backend
type PackageManager interface {
	Sync(ctx context.Context, pkgs []desired.Package) error
	Clear() error
}

// HookRunner executes post-install commands
type HookRunner interface {
	Run(ctx context.Context, dir, script string) error
}

// OverrideSource resolves per-component override fields
type OverrideSource interface {
	Component(typ component.Type, name string) component.Overrides
}

// Previous is the install state recorded by the last successful pass
type Previous struct {
	Extensions map[string]component.Source
	Skins      map[string]component.Source
}

// Result is the outcome of one reconciliation pass. Manifest entries hold
// exactly the components that were retained, updated, or installed; failed
// installs are absent so they are retried on the next start. Load directives
// follow desired-declaration order.
type Result struct {
	Extensions     []manifest.Entry
	Skins          []manifest.Entry
	ExtensionLoads []string
	SkinLoads      []string
	Packages       []string
}

// Reconciler drives one pass. All state is passed in explicitly; the struct
// itself only carries collaborators and run-wide configuration.
type Reconciler struct {
	Paths         *config.Paths
	VCS           VCS
	Packages      PackageManager
	Hooks         HookRunner
	Overrides     OverrideSource
	DefaultBranch string
	Logger        *log.Logger
}

func (r *Reconciler) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// Run executes the pass in strict order: removals, composer sync, extension
// pass, skin pass. Individual component failures never abort the pass.
func (r *Reconciler) Run(ctx context.Context, prev Previous, want desired.State) *Result {
	res := &Result{}

	// Removals run first so a renamed or reconfigured component cannot
	// collide with stale state.
	r.removeStale(component.Extension, prev.Extensions, want.WantsExtension)
	r.removeStale(component.Skin, prev.Skins, want.WantsSkin)

	if len(want.Packages) > 0 {
		if err := r.Packages.Sync(ctx, want.Packages); err != nil {
			r.logger().Warn("composer sync failed", "error", err)
		}
		res.Packages = want.PackageNames()
	} else {
		if err := r.Packages.Clear(); err != nil {
			r.logger().Warn("could not remove composer requirements", "error", err)
		}
	}

	for _, name := range want.Extensions {
		if entry, ok := r.apply(ctx, component.Extension, name, want.ComposerProvided[name]); ok {
			res.Extensions = append(res.Extensions, entry)
		}
	}

	for _, name := range want.Skins {
		if entry, ok := r.apply(ctx, component.Skin, name, false); ok {
			res.Skins = append(res.Skins, entry)
		}
	}

	res.ExtensionLoads, res.SkinLoads = Directives(want, r.Overrides)

	return res
}

// Directives resolves the load directive for every desired component, in
// declaration order: the per-extension override load command when set, else
// the default by-name directive. The config generator consumes these, so
// they are also available without running a full pass.
func Directives(want desired.State, overrides OverrideSource) (extensions, skins []string) {
	for _, name := range want.Extensions {
		if lc := overrides.Component(component.Extension, name).LoadCommand; lc != "" {
			extensions = append(extensions, lc)
			continue
		}
		extensions = append(extensions, fmt.Sprintf("wfLoadExtension( '%s' );", name))
	}
	for _, name := range want.Skins {
		skins = append(skins, fmt.Sprintf("wfLoadSkin( '%s' );", name))
	}
	return extensions, skins
}

// removeStale deletes every component present in the previous state but
// absent from the desired set, regardless of its install source.
func (r *Reconciler) removeStale(typ component.Type, prev map[string]component.Source, wanted func(string) bool) {
	for name := range prev {
		if wanted(name) {
			continue
		}
		dir := r.Paths.ComponentDir(typ, name)
		if err := os.RemoveAll(dir); err != nil {
			r.logger().Warn("removal failed", "type", typ, "name", name, "error", err)
			continue
		}
		r.logger().Info("removed", "type", typ, "name", name)
	}
}

// apply classifies one desired component and runs the matching procedure.
// ok is false only for a failed fresh install, which must not be recorded.
func (r *Reconciler) apply(ctx context.Context, typ component.Type, name string, composerProvided bool) (manifest.Entry, bool) {
	dir := r.Paths.ComponentDir(typ, name)
	ov := r.Overrides.Component(typ, name)

	var src component.Source
	switch {
	case composerProvided:
		// satisfied by the dependency manager, nothing to fetch
		src = component.SourceComposer

	case r.VCS.IsCheckout(dir):
		r.update(ctx, typ, name, dir, ov)
		src = component.SourceGit

	case dirNonEmpty(dir):
		// supplied from outside our control, leave untouched
		src = component.SourceExisting

	default:
		if err := r.install(ctx, typ, name, dir, ov); err != nil {
			r.logger().Error("install failed", "type", typ, "name", name, "error", err)
			return manifest.Entry{}, false
		}
		src = component.SourceGit
	}

	return manifest.Entry{Type: typ, Name: name, Source: src}, true
}

// update refreshes an existing checkout. A fetch failure keeps the local
// state as-is and is only a warning; the component is still retained.
func (r *Reconciler) update(ctx context.Context, typ component.Type, name, dir string, ov component.Overrides) {
	if err := r.VCS.Fetch(ctx, dir); err != nil {
		r.logger().Warn("fetch failed, keeping local state", "type", typ, "name", name, "error", err)
		return
	}

	var err error
	switch {
	case ov.Commit != "":
		err = r.VCS.Checkout(ctx, dir, ov.Commit)
	case ov.Tag != "":
		err = r.VCS.Checkout(ctx, dir, ov.Tag)
	default:
		err = r.VCS.SyncBranch(ctx, dir, r.branch(ov))
	}
	if err != nil {
		r.logger().Warn("checkout failed", "type", typ, "name", name, "error", err)
		return
	}

	r.postInstall(ctx, typ, name, dir, ov)
}

// install clones a fresh checkout. Clone failure is fatal to this component
// only; everything after a successful clone is best-effort.
func (r *Reconciler) install(ctx context.Context, typ component.Type, name, dir string, ov component.Overrides) error {
	repo := ov.Repo
	if repo == "" {
		repo = defaultRepo(typ, name)
	}

	if err := r.VCS.Clone(ctx, repo, dir); err != nil {
		return err
	}

	var err error
	switch {
	case ov.Commit != "":
		err = r.VCS.Checkout(ctx, dir, ov.Commit)
	case ov.Tag != "":
		err = r.VCS.Checkout(ctx, dir, ov.Tag)
	default:
		err = r.VCS.Checkout(ctx, dir, r.branch(ov))
	}
	if err != nil {
		r.logger().Warn("checkout failed", "type", typ, "name", name, "error", err)
		return nil
	}

	r.postInstall(ctx, typ, name, dir, ov)
	return nil
}

func (r *Reconciler) postInstall(ctx context.Context, typ component.Type, name, dir string, ov component.Overrides) {
	if ov.PostInstall == "" {
		return
	}
	if err := r.Hooks.Run(ctx, dir, ov.PostInstall); err != nil {
		r.logger().Warn("post_install failed", "type", typ, "name", name, "error", err)
	}
}

func (r *Reconciler) branch(ov component.Overrides) string {
	if ov.Branch != "" {
		return ov.Branch
	}
	return r.DefaultBranch
}

// defaultRepo is the deterministic clone URL for components without a repo
// override.
func defaultRepo(typ component.Type, name string) string {
	return fmt.Sprintf("https://gerrit.wikimedia.org/r/mediawiki/%s/%s", typ.Dir(), name)
}

func dirNonEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
