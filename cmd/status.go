package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nkcx/mediawiki-docker/internal/component"
	"github.com/nkcx/mediawiki-docker/internal/manifest"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installed state versus desired state",
	Long: `Compare the install manifests from the last run against the currently
declared desired state, without touching anything.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format: table or yaml")
	rootCmd.AddCommand(statusCmd)
}

type statusItem struct {
	Name   string `yaml:"name"`
	State  string `yaml:"state"` // installed, pending, or remove
	Source string `yaml:"source,omitempty"`
}

type statusReport struct {
	Version    string       `yaml:"version,omitempty"`
	Branch     string       `yaml:"branch"`
	Extensions []statusItem `yaml:"extensions,omitempty"`
	Skins      []statusItem `yaml:"skins,omitempty"`
	Packages   []statusItem `yaml:"packages,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}

	prev, err := app.previous()
	if err != nil {
		return err
	}
	installedPkgs, err := manifest.LoadPackages(app.paths.PackagesManifestPath())
	if err != nil {
		return err
	}

	want := app.desired()

	report := statusReport{
		Version:    app.version,
		Branch:     app.branch,
		Extensions: diffItems(want.Extensions, prev.Extensions),
		Skins:      diffItems(want.Skins, prev.Skins),
		Packages:   diffPackages(want.PackageNames(), installedPkgs),
	}

	if statusOutput == "yaml" {
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	printReport(report)
	return nil
}

// diffItems lists desired components with their recorded provenance, then
// installed components pending removal.
func diffItems(want []string, prev map[string]component.Source) []statusItem {
	var items []statusItem
	for _, name := range want {
		if src, ok := prev[name]; ok {
			items = append(items, statusItem{Name: name, State: "installed", Source: string(src)})
		} else {
			items = append(items, statusItem{Name: name, State: "pending"})
		}
	}
	for name := range prev {
		if !contains(want, name) {
			items = append(items, statusItem{Name: name, State: "remove"})
		}
	}
	return items
}

// diffPackages is the same diff keyed on the composer package manifest
func diffPackages(want, installed []string) []statusItem {
	var items []statusItem
	for _, name := range want {
		if contains(installed, name) {
			items = append(items, statusItem{Name: name, State: "installed"})
		} else {
			items = append(items, statusItem{Name: name, State: "pending"})
		}
	}
	for _, name := range installed {
		if !contains(want, name) {
			items = append(items, statusItem{Name: name, State: "remove"})
		}
	}
	return items
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	installedSty = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingSty   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	removeSty    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func printReport(r statusReport) {
	if r.Version != "" {
		fmt.Printf("MediaWiki %s (branch %s)\n\n", r.Version, r.Branch)
	} else {
		fmt.Printf("MediaWiki version unknown (branch %s)\n\n", r.Branch)
	}

	printSection("Extensions", r.Extensions)
	printSection("Skins", r.Skins)
	printSection("Composer packages", r.Packages)
}

func printSection(title string, items []statusItem) {
	if len(items) == 0 {
		return
	}
	fmt.Println(headerStyle.Render(title))
	for _, item := range items {
		state := item.State
		switch item.State {
		case "installed":
			state = installedSty.Render(item.State)
		case "pending":
			state = pendingSty.Render(item.State)
		case "remove":
			state = removeSty.Render(item.State)
		}
		if item.Source != "" {
			fmt.Printf("  %-30s %s (%s)\n", item.Name, state, item.Source)
		} else {
			fmt.Printf("  %-30s %s\n", item.Name, state)
		}
	}
	fmt.Println()
}
