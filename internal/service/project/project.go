// Package project reads and writes files inside a project directory.
package project

import (
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/zjregee/tibr/internal/models"
)

// ListEntries partitions the immediate children of path into files and
// directories, each sorted by name.
func ListEntries(path string) (*models.ProjectInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading project %s", path)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("project path is not a directory: %s", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "listing project %s", path)
	}

	result := &models.ProjectInfo{
		Files:       []string{},
		Directories: []string{},
	}
	for _, entry := range entries {
		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			target, err := os.Stat(filepath.Join(path, entry.Name()))
			if err != nil {
				continue
			}
			mode = target.Mode().Type()
		}

		switch {
		case mode.IsDir():
			result.Directories = append(result.Directories, entry.Name())
		case mode.IsRegular():
			result.Files = append(result.Files, entry.Name())
		}
	}

	sort.Strings(result.Files)
	sort.Strings(result.Directories)

	return result, nil
}

// ReadFile returns the UTF-8 contents of path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	if !utf8.Valid(data) {
		return "", errors.Errorf("file is not valid UTF-8: %s", path)
	}

	return string(data), nil
}

// WriteFile replaces the contents of path with data.
func WriteFile(path, data string) error {
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}
