// Package datadir provides constants and utilities for the .todoboard directory structure.
package datadir

import "path/filepath"

const (
	// Dir is the name of the todoboard state directory.
	Dir = ".todoboard"

	// DataFile is the default data file name (inside .todoboard).
	DataFile = "todos.json"

	// SchemaFile is the file name the schema command writes next to the data file.
	SchemaFile = "todos.schema.json"

	// ConfigFile is the config file name inside a user-level .todoboard directory.
	ConfigFile = "todoboard.toml"
)

// DataPath returns the full path to the data file within a work directory.
func DataPath(workDir string) string {
	return joinPath(workDir, DataFile)
}

// ConfigPath returns the full path to the config file within a directory
// holding a .todoboard directory, such as the user's home.
func ConfigPath(baseDir string) string {
	return joinPath(baseDir, ConfigFile)
}

// SchemaPathFor returns where the schema for the given data file is written.
func SchemaPathFor(dataFile string) string {
	return filepath.Join(filepath.Dir(dataFile), SchemaFile)
}

// DirPath returns the full path to the .todoboard directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}
