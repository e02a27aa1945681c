package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mw-init",
	Short: "MediaWiki container init",
	Long: `mw-init reconciles the extensions, skins, and composer packages declared
through MEDIAWIKI_* environment variables against the state on the MediaWiki
volume, regenerates LocalSettings.php, and hands off to the web server.

It is meant to run as the container entrypoint:

  mw-init run`,
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	})
}
