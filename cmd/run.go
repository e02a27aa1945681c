package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nkcx/mediawiki-docker/internal/localsettings"
	"github.com/nkcx/mediawiki-docker/internal/mediawiki"
)

var (
	runNoExec     bool
	runSkipUpdate bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full init sequence and hand off to the web server",
	Long: `Run the complete container start sequence:

  1. Detect the MediaWiki version and pick the compatibility branch
  2. Resolve the secret pair (generated once, then persisted)
  3. Copy bundled extensions/skins on first run or version change
  4. Reconcile extensions, skins, and composer packages
  5. Regenerate LocalSettings.php
  6. Run maintenance/update.php (unless disabled)
  7. Exec into the web server command

Individual component failures are logged and retried on the next start;
they never block the handoff.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runNoExec, "no-exec", false, "Stop before exec'ing the server command")
	runCmd.Flags().BoolVar(&runSkipUpdate, "skip-update", false, "Skip maintenance/update.php even when auto-update is on")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}

	// everything up to here is pre-reconciliation and allowed to be fatal
	if err := app.paths.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	pair, err := app.resolveSecrets()
	if err != nil {
		return fmt.Errorf("resolve secrets: %w", err)
	}

	if err := mediawiki.Bootstrap(app.paths, app.version); err != nil {
		return fmt.Errorf("bootstrap bundled components: %w", err)
	}

	prev, err := app.previous()
	if err != nil {
		return fmt.Errorf("read manifests: %w", err)
	}

	ctx := context.Background()
	want := app.desired()

	log.Info("reconciling", "branch", app.branch,
		"extensions", len(want.Extensions), "skins", len(want.Skins), "packages", len(want.Packages))

	res := app.reconciler().Run(ctx, prev, want)

	// from here on the sequence always runs to the handoff
	if err := app.writeManifests(res); err != nil {
		log.Warn("could not write manifests", "error", err)
	}

	values := app.values(pair, res.ExtensionLoads, res.SkinLoads)
	if err := localsettings.Write(app.paths.LocalSettingsPath(), values); err != nil {
		log.Warn("could not write LocalSettings.php", "error", err)
	}

	if app.settings.AutoUpdate && !runSkipUpdate {
		if err := mediawiki.NewMaintenance(app.paths.RootDir).Update(ctx); err != nil {
			log.Warn("schema migration failed", "error", err)
		}
	}

	if runNoExec {
		fmt.Printf("init complete, would exec: %s\n", app.settings.ServerCommand)
		return nil
	}

	return mediawiki.Handoff(app.settings.ServerCommand)
}
