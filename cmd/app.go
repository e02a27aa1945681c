package cmd

import (
	"github.com/charmbracelet/log"

	"github.com/nkcx/mediawiki-docker/internal/component"
	"github.com/nkcx/mediawiki-docker/internal/composer"
	"github.com/nkcx/mediawiki-docker/internal/config"
	"github.com/nkcx/mediawiki-docker/internal/desired"
	"github.com/nkcx/mediawiki-docker/internal/git"
	"github.com/nkcx/mediawiki-docker/internal/hooks"
	"github.com/nkcx/mediawiki-docker/internal/localsettings"
	"github.com/nkcx/mediawiki-docker/internal/manifest"
	"github.com/nkcx/mediawiki-docker/internal/mediawiki"
	"github.com/nkcx/mediawiki-docker/internal/reconcile"
	"github.com/nkcx/mediawiki-docker/internal/secrets"
)

// app bundles the resolved configuration shared by all subcommands
type app struct {
	paths     *config.Paths
	settings  *config.Settings
	overrides *config.Overrides
	version   string // detected MediaWiki version, may be empty
	branch    string // resolved default compatibility branch
}

func loadApp() (*app, error) {
	paths := config.ResolvePaths()
	settings := config.LoadSettings()

	overrides, err := config.LoadOverrides(paths.OverridesPath())
	if err != nil {
		return nil, err
	}

	version, err := mediawiki.DetectVersion(paths.RootDir)
	if err != nil {
		log.Warn("could not detect mediawiki version", "error", err)
	}

	branch := settings.DefaultBranch
	if branch == "" {
		branch = mediawiki.DefaultBranch(version)
	}

	return &app{
		paths:     paths,
		settings:  settings,
		overrides: overrides,
		version:   version,
		branch:    branch,
	}, nil
}

// desired builds the desired-state sets from the declarative lists
func (a *app) desired() desired.State {
	return desired.Build(
		a.settings.ComposerPackages,
		a.settings.Extensions,
		a.settings.Skins,
		a.settings.ComposerPrefixes...,
	)
}

// previous loads the install state recorded by the last pass
func (a *app) previous() (reconcile.Previous, error) {
	exts, err := manifest.Load(a.paths.ManifestPath(component.Extension), component.Extension)
	if err != nil {
		return reconcile.Previous{}, err
	}
	skins, err := manifest.Load(a.paths.ManifestPath(component.Skin), component.Skin)
	if err != nil {
		return reconcile.Previous{}, err
	}
	return reconcile.Previous{Extensions: exts, Skins: skins}, nil
}

// reconciler assembles the pass with the real backends
func (a *app) reconciler() *reconcile.Reconciler {
	return &reconcile.Reconciler{
		Paths:         a.paths,
		VCS:           git.New(),
		Packages:      composer.New(a.paths.RootDir, a.paths.ComposerLocalPath()),
		Hooks:         hooks.New(),
		Overrides:     a.overrides,
		DefaultBranch: a.branch,
	}
}

// writeManifests rewrites all three manifests from a pass result
func (a *app) writeManifests(res *reconcile.Result) error {
	if err := manifest.Write(a.paths.ManifestPath(component.Extension), res.Extensions); err != nil {
		return err
	}
	if err := manifest.Write(a.paths.ManifestPath(component.Skin), res.Skins); err != nil {
		return err
	}
	return manifest.WritePackages(a.paths.PackagesManifestPath(), res.Packages)
}

// values assembles the config generator input from settings, secrets, and
// the resolved load directives
func (a *app) values(pair secrets.Pair, extLoads, skinLoads []string) localsettings.Values {
	return localsettings.Values{
		SiteName:       a.settings.SiteName,
		MetaNamespace:  a.settings.MetaNamespace,
		SiteServer:     a.settings.SiteServer,
		SiteLang:       a.settings.SiteLang,
		ScriptPath:     a.settings.ScriptPath,
		DBType:         a.settings.DBType,
		DBHost:         a.settings.DBHost,
		DBName:         a.settings.DBName,
		DBUser:         a.settings.DBUser,
		DBPassword:     a.settings.DBPassword,
		SecretKey:      pair.SecretKey,
		UpgradeKey:     pair.UpgradeKey,
		EnableEmail:    a.settings.EnableEmail,
		EnableUploads:  a.settings.EnableUploads,
		AnonEdit:       a.settings.AnonEdit,
		DefaultSkin:    a.settings.DefaultSkin,
		SkinLoads:      skinLoads,
		ExtensionLoads: extLoads,
		ExtraSettings:  a.settings.ExtraSettings,
	}
}

// resolveSecrets resolves the secret pair from explicit overrides and the
// persisted file on the data volume
func (a *app) resolveSecrets() (secrets.Pair, error) {
	explicit := secrets.Explicit{
		SecretKey:  a.settings.SecretKey,
		UpgradeKey: a.settings.UpgradeKey,
	}
	return secrets.Resolve(explicit, a.paths.SecretsPath())
}
