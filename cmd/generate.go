package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkcx/mediawiki-docker/internal/localsettings"
	"github.com/nkcx/mediawiki-docker/internal/reconcile"
)

var generateStdout bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate LocalSettings.php only",
	Long: `Regenerate LocalSettings.php from the current environment without
reconciling any components. Load directives reflect the declared desired
state, not what is actually on disk.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "Print to stdout instead of writing the file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}

	if err := app.paths.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	pair, err := app.resolveSecrets()
	if err != nil {
		return fmt.Errorf("resolve secrets: %w", err)
	}

	extLoads, skinLoads := reconcile.Directives(app.desired(), app.overrides)
	values := app.values(pair, extLoads, skinLoads)

	if generateStdout {
		fmt.Print(string(localsettings.Generate(values)))
		return nil
	}

	if err := localsettings.Write(app.paths.LocalSettingsPath(), values); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", app.paths.LocalSettingsPath())
	return nil
}
