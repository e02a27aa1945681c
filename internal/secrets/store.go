// Package secrets manages the two MediaWiki secrets ($wgSecretKey and
// $wgUpgradeKey). Values are generated once, appended to a durable file on
// the data volume, and reloaded verbatim on every subsequent start.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

const (
	secretKeyName  = "SECRET_KEY"
	upgradeKeyName = "UPGRADE_KEY"

	secretKeyBytes  = 32
	upgradeKeyBytes = 16
)

// Pair holds the two resolved secrets
type Pair struct {
	SecretKey  string
	UpgradeKey string
}

// Explicit holds externally supplied override values. An explicit value is
// used as-is and never written to the persisted file.
type Explicit struct {
	SecretKey  string
	UpgradeKey string
}

// Resolve returns the secret pair for this run. Precedence per secret:
// explicit override > value persisted at path > freshly generated value.
// Freshly generated values are appended to path, so a given secret is
// generated at most once for the lifetime of the file. Single writer
// assumed; the init sequence runs once per container start.
func Resolve(explicit Explicit, path string) (Pair, error) {
	persisted, err := loadFile(path)
	if err != nil {
		return Pair{}, err
	}

	var pair Pair

	pair.SecretKey, err = resolveOne(explicit.SecretKey, persisted, secretKeyName, secretKeyBytes, path)
	if err != nil {
		return Pair{}, err
	}

	pair.UpgradeKey, err = resolveOne(explicit.UpgradeKey, persisted, upgradeKeyName, upgradeKeyBytes, path)
	if err != nil {
		return Pair{}, err
	}

	return pair, nil
}

func resolveOne(explicit string, persisted map[string]string, key string, numBytes int, path string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if v, ok := persisted[key]; ok && v != "" {
		return v, nil
	}

	v, err := generateToken(numBytes)
	if err != nil {
		return "", err
	}
	if err := appendValue(path, key, v); err != nil {
		return "", err
	}
	return v, nil
}

// loadFile parses a KEY='value' assignment-per-line file. A missing file is
// an empty map. Malformed lines are skipped rather than rejected, so a
// hand-edited file cannot brick startup.
func loadFile(path string) (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		key, rest, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if len(rest) < 2 || rest[0] != '\'' || rest[len(rest)-1] != '\'' {
			continue
		}
		values[strings.TrimSpace(key)] = rest[1 : len(rest)-1]
	}

	return values, nil
}

func appendValue(path, key, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s='%s'\n", key, value)
	return err
}

func generateToken(numBytes int) (string, error) {
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
