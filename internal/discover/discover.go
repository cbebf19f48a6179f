// Package discover finds .feature files on disk and parses them.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const Ext = ".feature"

var ErrInvalidPath = errors.New("path does not exist")

// Files returns the .feature files under root, sorted. A root that is itself
// a file is returned when it has the .feature extension.
func Files(root string) ([]string, error) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if strings.HasSuffix(root, Ext) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Collect runs Files over every root and drops duplicates, keeping the first
// occurrence of each path.
func Collect(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var all []string
	for _, root := range roots {
		files, err := Files(root)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			key := filepath.Clean(f)
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, f)
		}
	}
	return all, nil
}
