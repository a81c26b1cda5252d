package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover returns the files in dir matching a glob pattern such as
// "dusit*.csv", in lexical order
func Discover(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.IsDir() {
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, filepath.Join(dir, pattern))
	}
	sort.Strings(files)
	return files, nil
}

// FindPeriod returns the first workbook in dir whose name contains tag,
// ignoring case. Office lock files (~$...) are never returned.
func FindPeriod(dir, tag string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingInput, err)
	}

	want := strings.ToUpper(tag)
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		if strings.Contains(strings.ToUpper(name), want) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no *%s*.xlsx in %s", ErrMissingInput, tag, dir)
	}

	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}
