package domain

import (
	"path"
	"path/filepath"
	"strings"
)

// ToPortablePath converts an absolute filesystem path to the on-disk
// portable form: "~" for the home directory itself, "~/..." for its
// descendants, and a forward-slash path otherwise.
func ToPortablePath(abs, home string) string {
	norm := normalizeSlashes(abs)
	homeNorm := strings.TrimSuffix(normalizeSlashes(home), "/")
	if homeNorm != "" {
		if norm == homeNorm {
			return "~"
		}
		if strings.HasPrefix(norm, homeNorm+"/") {
			return "~/" + strings.TrimPrefix(norm, homeNorm+"/")
		}
	}
	return norm
}

// ResolvePortablePath converts a portable path back to an absolute path.
// A leading "~" maps to the home directory; relative paths resolve against
// the directory containing the config file, never against any ambient
// working directory, so the document stays portable across machines.
func ResolvePortablePath(portable, configDir, home string) string {
	p := portable
	switch {
	case p == "~":
		p = home
	case strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`):
		p = filepath.Join(home, p[2:])
	case filepath.IsAbs(p) || strings.HasPrefix(p, "/"):
		// already absolute
	default:
		p = filepath.Join(configDir, p)
	}
	return filepath.Clean(filepath.FromSlash(p))
}

// normalizeSlashes converts separators to forward slashes and collapses
// "." and ".." segments without touching a leading "//".
func normalizeSlashes(s string) string {
	s = strings.ReplaceAll(s, `\`, "/")
	if s == "" {
		return s
	}
	// Preserve a Windows drive prefix ("C:/...") through path.Clean.
	return path.Clean(s)
}
