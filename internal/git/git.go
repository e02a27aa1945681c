// Package git wraps the git binary for the component installer: clone,
// fetch, checkout, and branch synchronization.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitError wraps a failed git operation with its context
type GitError struct {
	Op   string // operation
	Path string // repository path or clone URL
	Err  error  // underlying error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// RunFunc executes one git invocation. Replaced in tests.
type RunFunc func(ctx context.Context, args ...string) error

// Client shells out to the git binary
type Client struct {
	run RunFunc
}

// New creates a client backed by the real git binary
func New() *Client {
	return &Client{run: execGit}
}

// NewWithRunner creates a client with a custom command runner
func NewWithRunner(run RunFunc) *Client {
	return &Client{run: run}
}

func execGit(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Clone clones url into dest
func (c *Client) Clone(ctx context.Context, url, dest string) error {
	if err := c.run(ctx, "clone", url, dest); err != nil {
		return &GitError{Op: "git clone", Path: url, Err: err}
	}
	return nil
}

// Fetch fetches all remote refs and tags for the checkout at dir
func (c *Client) Fetch(ctx context.Context, dir string) error {
	if err := c.run(ctx, "-C", dir, "fetch", "--tags", "origin"); err != nil {
		return &GitError{Op: "git fetch", Path: dir, Err: err}
	}
	return nil
}

// Checkout checks out an explicit ref (commit or tag)
func (c *Client) Checkout(ctx context.Context, dir, ref string) error {
	if err := c.run(ctx, "-C", dir, "checkout", ref); err != nil {
		return &GitError{Op: "git checkout", Path: dir, Err: err}
	}
	return nil
}

// SyncBranch checks out branch and force-synchronizes the local state to the
// remote branch tip, discarding local drift.
func (c *Client) SyncBranch(ctx context.Context, dir, branch string) error {
	if err := c.run(ctx, "-C", dir, "checkout", branch); err != nil {
		return &GitError{Op: "git checkout", Path: dir, Err: err}
	}
	if err := c.run(ctx, "-C", dir, "reset", "--hard", "origin/"+branch); err != nil {
		return &GitError{Op: "git reset", Path: dir, Err: err}
	}
	return nil
}

// IsCheckout reports whether dir is a git checkout
func (c *Client) IsCheckout(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Commit returns the commit SHA of the checkout at dir, or "" if it cannot
// be determined.
func (c *Client) Commit(dir string) string {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
