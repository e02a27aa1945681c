package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile components without generating configuration",
	Long: `Apply removals, composer sync, and per-component installs and updates,
then rewrite the install manifests. LocalSettings.php is left untouched and
no server is exec'd. Useful when iterating on extension lists.`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}

	if err := app.paths.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	prev, err := app.previous()
	if err != nil {
		return fmt.Errorf("read manifests: %w", err)
	}

	res := app.reconciler().Run(context.Background(), prev, app.desired())

	if err := app.writeManifests(res); err != nil {
		return err
	}

	fmt.Printf("reconciled %d extensions, %d skins, %d packages\n",
		len(res.Extensions), len(res.Skins), len(res.Packages))
	return nil
}
