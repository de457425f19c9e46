package config

import (
	"os"
	"path/filepath"
)

const appDirName = "underc0de-admin"

// DefaultPaths lists the config files looked up when none is given: the
// working directory first, then the user config directory.
func DefaultPaths(ext string) []string {
	paths := []string{"underc0de." + ext, filepath.Join("config", "underc0de."+ext)}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appDirName, "config."+ext))
	}
	return paths
}

func defaultSessionFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, "session.json")
	}
	return ".underc0de-session.json"
}
