package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/nkcx/mediawiki-docker/internal/component"
	"github.com/nkcx/mediawiki-docker/internal/naming"
)

// overrideEntry mirrors one [extension.<Name>] or [skin.<Name>] table in
// overrides.toml
type overrideEntry struct {
	Repo        string `toml:"repo"`
	Branch      string `toml:"branch"`
	Tag         string `toml:"tag"`
	Commit      string `toml:"commit"`
	PostInstall string `toml:"post_install"`
	LoadCommand string `toml:"load_command"`
}

type overridesFile struct {
	Extension map[string]overrideEntry `toml:"extension"`
	Skin      map[string]overrideEntry `toml:"skin"`
}

// Overrides resolves per-component override fields. Precedence for each
// field independently: environment variable > overrides.toml entry > unset.
// Environment variables are addressed by normalized name:
// MEDIAWIKI_EXT_<KEY>_REPO, MEDIAWIKI_SKIN_<KEY>_BRANCH, and so on, with
// KEY produced by naming.EnvKey.
type Overrides struct {
	file overridesFile
}

// LoadOverrides reads the optional overrides file. A missing file yields an
// empty set of file-level overrides; environment lookups still apply.
func LoadOverrides(path string) (*Overrides, error) {
	o := &Overrides{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return o, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, &o.file); err != nil {
		return nil, err
	}
	return o, nil
}

// Component returns the fully resolved override set for one component
func (o *Overrides) Component(typ component.Type, name string) component.Overrides {
	entry := o.entry(typ, name)
	prefix := envPrefix(typ) + naming.EnvKey(name)

	ov := component.Overrides{
		Repo:        resolve(prefix+"_REPO", entry.Repo),
		Branch:      resolve(prefix+"_BRANCH", entry.Branch),
		Tag:         resolve(prefix+"_TAG", entry.Tag),
		Commit:      resolve(prefix+"_COMMIT", entry.Commit),
		PostInstall: resolve(prefix+"_POST_INSTALL", entry.PostInstall),
	}
	if typ == component.Extension {
		ov.LoadCommand = resolve(prefix+"_LOAD_COMMAND", entry.LoadCommand)
	}
	return ov
}

func (o *Overrides) entry(typ component.Type, name string) overrideEntry {
	switch typ {
	case component.Extension:
		return o.file.Extension[name]
	case component.Skin:
		return o.file.Skin[name]
	default:
		return overrideEntry{}
	}
}

func envPrefix(typ component.Type) string {
	if typ == component.Skin {
		return "MEDIAWIKI_SKIN_"
	}
	return "MEDIAWIKI_EXT_"
}

func resolve(envName, fileValue string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return fileValue
}
