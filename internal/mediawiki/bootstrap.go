package mediawiki

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nkcx/mediawiki-docker/internal/component"
	"github.com/nkcx/mediawiki-docker/internal/config"
)

// Bootstrap copies the image's bundled extensions and skins onto the volume
// on the first run or after a version change, recorded by a stamp file on
// the data volume. Component directories that already exist on the volume
// are never clobbered. A missing bundle directory is skipped silently.
func Bootstrap(paths *config.Paths, version string) error {
	if stampMatches(paths.StampPath(), version) {
		return nil
	}

	for _, typ := range component.AllTypes() {
		srcRoot := paths.BundleTypeDir(typ)
		entries, err := os.ReadDir(srcRoot)
		if err != nil {
			continue
		}

		dstRoot := paths.TypeDir(typ)
		if err := os.MkdirAll(dstRoot, 0755); err != nil {
			return err
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dst := filepath.Join(dstRoot, entry.Name())
			if dirNonEmpty(dst) {
				continue
			}
			if err := copyDir(filepath.Join(srcRoot, entry.Name()), dst); err != nil {
				return err
			}
		}
	}

	return os.WriteFile(paths.StampPath(), []byte(version+"\n"), 0644)
}

func stampMatches(path, version string) bool {
	if version == "" {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == version
}

func dirNonEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
