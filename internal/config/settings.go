package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Settings holds every global setting consumed by the init sequence. All
// values come from MEDIAWIKI_* environment variables; every optional field
// has a documented default set below.
type Settings struct {
	SiteName      string
	MetaNamespace string
	SiteServer    string
	SiteLang      string
	ScriptPath    string

	DBType     string
	DBHost     string
	DBName     string
	DBUser     string
	DBPassword string

	// explicit secret overrides; empty means resolve from the persisted file
	SecretKey  string
	UpgradeKey string

	EnableEmail   bool
	EnableUploads bool
	AnonEdit      bool
	DefaultSkin   string

	// AutoUpdate runs maintenance/update.php after config generation
	AutoUpdate bool

	// DefaultBranch overrides the branch derived from the MediaWiki version
	DefaultBranch string

	// line-oriented declarative lists
	Extensions       string
	Skins            string
	ComposerPackages string

	// provider namespaces whose composer packages ship extensions
	ComposerPrefixes []string

	// ExtraSettings is appended verbatim to LocalSettings.php
	ExtraSettings string

	// ServerCommand is exec'd after the init sequence completes
	ServerCommand string
}

// LoadSettings reads all global settings from the environment, applying
// defaults for everything optional.
func LoadSettings() *Settings {
	v := viper.New()

	v.SetDefault("site_name", "MediaWiki")
	v.SetDefault("meta_namespace", "")
	v.SetDefault("site_server", "http://localhost")
	v.SetDefault("site_lang", "en")
	v.SetDefault("script_path", "")
	v.SetDefault("db_type", "mysql")
	v.SetDefault("db_host", "db")
	v.SetDefault("db_name", "mediawiki")
	v.SetDefault("db_user", "wikiuser")
	v.SetDefault("db_password", "")
	v.SetDefault("secret_key", "")
	v.SetDefault("upgrade_key", "")
	v.SetDefault("enable_email", false)
	v.SetDefault("enable_uploads", false)
	v.SetDefault("anon_edit", true)
	v.SetDefault("default_skin", "vector")
	v.SetDefault("auto_update", true)
	v.SetDefault("default_branch", "")
	v.SetDefault("extensions", "")
	v.SetDefault("skins", "")
	v.SetDefault("composer_packages", "")
	v.SetDefault("composer_prefixes", "mediawiki/")
	v.SetDefault("extra_settings", "")
	v.SetDefault("server_command", "apache2-foreground")

	v.SetEnvPrefix("mediawiki")
	v.AutomaticEnv()

	s := &Settings{
		SiteName:         v.GetString("site_name"),
		MetaNamespace:    v.GetString("meta_namespace"),
		SiteServer:       v.GetString("site_server"),
		SiteLang:         v.GetString("site_lang"),
		ScriptPath:       v.GetString("script_path"),
		DBType:           v.GetString("db_type"),
		DBHost:           v.GetString("db_host"),
		DBName:           v.GetString("db_name"),
		DBUser:           v.GetString("db_user"),
		DBPassword:       v.GetString("db_password"),
		SecretKey:        v.GetString("secret_key"),
		UpgradeKey:       v.GetString("upgrade_key"),
		EnableEmail:      v.GetBool("enable_email"),
		EnableUploads:    v.GetBool("enable_uploads"),
		AnonEdit:         v.GetBool("anon_edit"),
		DefaultSkin:      v.GetString("default_skin"),
		AutoUpdate:       v.GetBool("auto_update"),
		DefaultBranch:    v.GetString("default_branch"),
		Extensions:       v.GetString("extensions"),
		Skins:            v.GetString("skins"),
		ComposerPackages: v.GetString("composer_packages"),
		ComposerPrefixes: splitPrefixes(v.GetString("composer_prefixes")),
		ExtraSettings:    v.GetString("extra_settings"),
		ServerCommand:    v.GetString("server_command"),
	}

	if s.MetaNamespace == "" {
		s.MetaNamespace = s.SiteName
	}

	return s
}

func splitPrefixes(s string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
