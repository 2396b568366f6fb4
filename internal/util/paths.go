package util

import (
	"os"
	"path/filepath"
	"strings"
)

// userHome is the current user's home directory, or "" when unknown.
func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// xdgDir resolves app's directory under the XDG base directory named by
// env, falling back to fallback under the home directory.
func xdgDir(env, fallback, app string) string {
	if base := strings.TrimSpace(os.Getenv(env)); base != "" {
		return filepath.Join(expandHome(base), app)
	}
	home := userHome()
	if home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, fallback, app)
}

// DataDir holds the database and log file.
func DataDir(app string) string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"), app)
}

// ConfigDir holds config.toml.
func ConfigDir(app string) string {
	return xdgDir("XDG_CONFIG_HOME", ".config", app)
}

// ReportsDir is where exports and PDF reports are written.
func ReportsDir(app string) string {
	return filepath.Join(DocumentsDir(), strings.ToUpper(app))
}

// DocumentsDir follows XDG_DOCUMENTS_DIR, then user-dirs.dirs, then
// ~/Documents.
func DocumentsDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_DOCUMENTS_DIR")); dir != "" {
		return expandHome(dir)
	}
	home := userHome()
	if home == "" {
		return "."
	}
	if data, err := os.ReadFile(filepath.Join(ConfigDir(""), "user-dirs.dirs")); err == nil {
		if dir := parseUserDir(string(data), "XDG_DOCUMENTS_DIR"); dir != "" {
			return expandHome(dir)
		}
	}
	return filepath.Join(home, "Documents")
}

func parseUserDir(data, key string) string {
	prefix := key + "="
	for _, line := range strings.Split(data, "\n") {
		if value, ok := strings.CutPrefix(strings.TrimSpace(line), prefix); ok {
			return strings.Trim(value, `"`)
		}
	}
	return ""
}

// expandHome replaces $HOME and a leading ~ with the home directory. With
// no known home the path is returned unchanged.
func expandHome(path string) string {
	home := userHome()
	if home == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = home + path[1:]
	}
	return strings.ReplaceAll(path, "$HOME", home)
}
