// Package hooks executes per-component post-install commands with an
// embedded POSIX shell interpreter, so the image does not need /bin/sh for
// override hooks to work.
package hooks

import (
	"context"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner runs post-install shell commands inside a component directory
type Runner struct{}

// New creates a post-install runner
func New() *Runner {
	return &Runner{}
}

// Run parses and executes script with dir as the working directory. The
// process environment is passed through, so hooks can see the MEDIAWIKI_*
// configuration.
func (r *Runner) Run(ctx context.Context, dir, script string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "post_install")
	if err != nil {
		return fmt.Errorf("parse post_install: %w", err)
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, os.Stdout, os.Stderr),
	)
	if err != nil {
		return fmt.Errorf("create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		return fmt.Errorf("post_install: %w", err)
	}
	return nil
}
