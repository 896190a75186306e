package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// SourceFilter selects files for ListSourceFiles. An empty Extensions list
// matches every file. Exclude entries are slash-separated prefixes relative
// to the project root.
type SourceFilter struct {
	Extensions []string
	Exclude    []string
}

// ListSourceFiles walks root and returns matching files as "./"-prefixed
// slash paths, sorted.
func ListSourceFiles(root string, filter SourceFilter) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading project %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("project path is not a directory: %s", root)
	}

	extensions := make(map[string]struct{}, len(filter.Extensions))
	for _, ext := range filter.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = struct{}{}
	}

	excludes := make([]string, 0, len(filter.Exclude))
	for _, prefix := range filter.Exclude {
		prefix = strings.Trim(filepath.ToSlash(strings.TrimSpace(prefix)), "/")
		prefix = strings.TrimPrefix(prefix, "./")
		if prefix != "" {
			excludes = append(excludes, prefix)
		}
	}

	files := []string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if isExcluded(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if len(extensions) > 0 {
			if _, ok := extensions[strings.ToLower(filepath.Ext(rel))]; !ok {
				return nil
			}
		}

		files = append(files, "./"+rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking project %s", root)
	}

	sort.Strings(files)
	return files, nil
}

func isExcluded(rel string, excludes []string) bool {
	for _, prefix := range excludes {
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	return false
}
