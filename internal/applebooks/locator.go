package applebooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	StoreAnnotations = "annotations"
	StoreLibrary     = "library"

	storeExtension = ".sqlite"
)

// Container paths relative to the user's home directory.
var (
	annotationsDir = filepath.Join("Library", "Containers", "com.apple.iBooksX", "Data", "Documents", "AEAnnotation")
	libraryDir     = filepath.Join("Library", "Containers", "com.apple.iBooksX", "Data", "Documents", "BKLibrary")
)

// StorePaths holds the two SQLite files Apple Books keeps its data in.
type StorePaths struct {
	Annotations string
	Library     string
}

// Complete reports whether both paths are set.
func (p StorePaths) Complete() bool {
	return p.Annotations != "" && p.Library != ""
}

// Locator finds the Apple Books stores under a home directory. The zero
// value uses the current user's home.
type Locator struct {
	HomeDir string
}

// FindStores resolves store paths for the current user.
func FindStores(overrides StorePaths) (StorePaths, error) {
	return Locator{}.Find(overrides)
}

// Find returns overrides untouched when both are set. Any path left empty is
// discovered by scanning the container directory; when several candidate
// files exist the first one in directory order is used.
func (l Locator) Find(overrides StorePaths) (StorePaths, error) {
	if overrides.Complete() {
		return overrides, nil
	}

	home, err := l.home()
	if err != nil {
		return StorePaths{}, err
	}

	paths := overrides
	if paths.Annotations == "" {
		paths.Annotations, err = scanDir(filepath.Join(home, annotationsDir), "AEAnnotation", StoreAnnotations)
		if err != nil {
			return StorePaths{}, err
		}
	}
	if paths.Library == "" {
		paths.Library, err = scanDir(filepath.Join(home, libraryDir), "BKLibrary", StoreLibrary)
		if err != nil {
			return StorePaths{}, err
		}
	}

	return paths, nil
}

// Dirs returns the directories Find scans, for help output.
func (l Locator) Dirs() (StorePaths, error) {
	home, err := l.home()
	if err != nil {
		return StorePaths{}, err
	}
	return StorePaths{
		Annotations: filepath.Join(home, annotationsDir),
		Library:     filepath.Join(home, libraryDir),
	}, nil
}

func (l Locator) home() (string, error) {
	if l.HomeDir != "" {
		return l.HomeDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

func scanDir(dir, prefix, store string) (string, error) {
	// os.ReadDir sorts by name, which makes the pick deterministic.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &NotFoundError{Store: store, Path: dir, Err: err}
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || filepath.Ext(name) != storeExtension {
			continue
		}
		return filepath.Join(dir, name), nil
	}

	return "", &NotFoundError{Store: store, Path: dir}
}
