package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nibzard/todoboard/internal/datadir"
)

// projectConfigNames are looked up in the working directory, in order.
var projectConfigNames = []string{datadir.ConfigFile, "." + datadir.ConfigFile}

// expandPath expands environment variables and a leading ~ in p.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// findProjectConfigFile returns the first project config file present in the
// working directory, or "".
func findProjectConfigFile() string {
	for _, name := range projectConfigNames {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

// findUserConfigFile returns the user config file, or "". The file under
// ~/.todoboard wins over the one in the OS config directory.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, datadir.ConfigPath(home))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "todoboard", datadir.ConfigFile))
	}
	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
