// Package naming holds the name transformations used to address components:
// the environment-key normalizer and the composer package name inference.
package naming

import "strings"

// EnvKey normalizes a component display name into the token used to build
// override environment variable names. Every character is uppercased and
// hyphens and spaces become underscores; everything else passes through.
// The function is total and idempotent.
func EnvKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToUpper(name) {
		if r == '-' || r == ' ' {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultComposerPrefix is the provider namespace whose packages are assumed
// to ship MediaWiki extensions.
const DefaultComposerPrefix = "mediawiki/"

// InferExtension derives an extension name from a composer package name.
// Packages under a known provider namespace map their kebab-case tail to
// PascalCase ("mediawiki/semantic-media-wiki" -> "SemanticMediaWiki").
// Packages outside every known namespace yield ("", false).
//
// This is a best-effort heuristic: the composer package name is not required
// to match the extension's canonical registration name, so a miss here only
// means the extension pass falls back to a git install.
func InferExtension(pkg string, prefixes ...string) (string, bool) {
	if len(prefixes) == 0 {
		prefixes = []string{DefaultComposerPrefix}
	}
	for _, prefix := range prefixes {
		if prefix == "" || !strings.HasPrefix(pkg, prefix) {
			continue
		}
		tail := strings.TrimPrefix(pkg, prefix)
		if tail == "" {
			return "", false
		}
		var b strings.Builder
		for _, word := range strings.Split(tail, "-") {
			if word == "" {
				continue
			}
			b.WriteString(strings.ToUpper(word[:1]))
			b.WriteString(word[1:])
		}
		if b.Len() == 0 {
			return "", false
		}
		return b.String(), true
	}
	return "", false
}
