package mediawiki

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// RunFunc executes one php invocation in dir. Replaced in tests.
type RunFunc func(ctx context.Context, dir string, args ...string) error

// Maintenance runs MediaWiki maintenance scripts against the live tree
type Maintenance struct {
	root string
	run  RunFunc
}

// NewMaintenance creates a runner backed by the real php binary
func NewMaintenance(root string) *Maintenance {
	return &Maintenance{root: root, run: execPHP}
}

// NewMaintenanceWithRunner creates a runner with a custom command runner
func NewMaintenanceWithRunner(root string, run RunFunc) *Maintenance {
	return &Maintenance{root: root, run: run}
}

func execPHP(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "php", args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Update runs the schema migration script. Callers treat failure as a
// warning; startup continues regardless.
func (m *Maintenance) Update(ctx context.Context) error {
	if err := m.run(ctx, m.root, "maintenance/update.php", "--quick"); err != nil {
		return fmt.Errorf("maintenance/update.php: %w", err)
	}
	return nil
}

// Handoff replaces the current process with the host application's server
// command. command is split on whitespace; the first field is resolved on
// PATH. On success this never returns.
func Handoff(command string) error {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return fmt.Errorf("empty server command")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("resolve server command: %w", err)
	}

	return syscall.Exec(path, argv, os.Environ())
}
