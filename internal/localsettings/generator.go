// Package localsettings assembles LocalSettings.php from resolved values.
// The file is pure output: it is regenerated in full on every start and
// never read back by the init sequence.
package localsettings

import (
	"fmt"
	"os"
	"strings"
)

// Values is everything the generated configuration depends on. Generation
// is a pure function of this struct.
type Values struct {
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

	SecretKey  string
	UpgradeKey string

	EnableEmail   bool
	EnableUploads bool
	AnonEdit      bool
	DefaultSkin   string

	// load directives in desired-declaration order
	SkinLoads      []string
	ExtensionLoads []string

	// ExtraSettings is appended verbatim at the end of the file
	ExtraSettings string
}

// Generate renders the complete LocalSettings.php content
func Generate(v Values) []byte {
	var b strings.Builder

	b.WriteString("<?php\n")
	b.WriteString("# This file is generated on every container start.\n")
	b.WriteString("# Do not edit: changes will be overwritten. Use MEDIAWIKI_EXTRA_SETTINGS\n")
	b.WriteString("# or the overrides file instead.\n\n")

	b.WriteString("if ( !defined( 'MEDIAWIKI' ) ) {\n\texit;\n}\n\n")

	setString(&b, "wgSitename", v.SiteName)
	setString(&b, "wgMetaNamespace", v.MetaNamespace)
	setString(&b, "wgServer", v.SiteServer)
	setString(&b, "wgLanguageCode", v.SiteLang)
	setString(&b, "wgScriptPath", v.ScriptPath)
	b.WriteString("\n")

	setString(&b, "wgDBtype", v.DBType)
	setString(&b, "wgDBserver", v.DBHost)
	setString(&b, "wgDBname", v.DBName)
	setString(&b, "wgDBuser", v.DBUser)
	setString(&b, "wgDBpassword", v.DBPassword)
	b.WriteString("\n")

	setString(&b, "wgSecretKey", v.SecretKey)
	setString(&b, "wgUpgradeKey", v.UpgradeKey)
	b.WriteString("\n")

	setBool(&b, "wgEnableEmail", v.EnableEmail)
	setBool(&b, "wgEnableUserEmail", v.EnableEmail)
	setBool(&b, "wgEnableUploads", v.EnableUploads)
	fmt.Fprintf(&b, "$wgGroupPermissions['*']['edit'] = %s;\n\n", phpBool(v.AnonEdit))

	if len(v.SkinLoads) > 0 {
		for _, line := range v.SkinLoads {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if v.DefaultSkin != "" {
		setString(&b, "wgDefaultSkin", v.DefaultSkin)
		b.WriteString("\n")
	}

	if len(v.ExtensionLoads) > 0 {
		for _, line := range v.ExtensionLoads {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.ExtraSettings != "" {
		b.WriteString("# --- custom settings ---\n")
		b.WriteString(v.ExtraSettings)
		if !strings.HasSuffix(v.ExtraSettings, "\n") {
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}

// Write regenerates the configuration file at path
func Write(path string, v Values) error {
	return os.WriteFile(path, Generate(v), 0644)
}

func setString(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "$%s = '%s';\n", name, phpEscape(value))
}

func setBool(b *strings.Builder, name string, value bool) {
	fmt.Fprintf(b, "$%s = %s;\n", name, phpBool(value))
}

func phpBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// phpEscape makes a value safe inside a single-quoted PHP string
func phpEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
