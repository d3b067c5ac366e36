// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BuildFileNames are the conventional build file names looked up in a
// directory, in order of preference.
var BuildFileNames = []string{"bundlecfg.hcl", "bundlecfg.yaml", "bundlecfg.yml"}

// ErrNoBuildFile is returned when a directory holds none of BuildFileNames.
var ErrNoBuildFile = errors.New("no build file found")

// FindBuildFile returns the single conventional build file directly inside
// dir. More than one candidate is an error, since either could be meant.
func FindBuildFile(dir string) (string, error) {
	var found []string
	for _, name := range BuildFileNames {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("error accessing path %s: %w", p, err)
		}
		if !info.IsDir() {
			found = append(found, p)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w in %s (looked for %s)", ErrNoBuildFile, dir, strings.Join(BuildFileNames, ", "))
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("multiple build files in %s: %s", dir, strings.Join(found, ", "))
	}
}

// ResolveConfigPath returns path unchanged when it names a file, or the
// conventional build file inside it when it names a directory.
func ResolveConfigPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Let the loader report the missing file.
			return path, nil
		}
		return "", fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	return FindBuildFile(path)
}
