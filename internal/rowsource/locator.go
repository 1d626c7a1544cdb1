package rowsource

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Locator resolves a glob pattern inside the data directory to a concrete
// file. Exports are year-stamped (UpperclassTimeOrder2025.csv), so when a
// pattern matches several revisions the lexically largest, i.e. newest, wins.
type Locator struct {
	dir string
}

// NewLocator creates a locator rooted at the given data directory.
func NewLocator(dir string) *Locator {
	return &Locator{dir: dir}
}

// Resolve returns the path of the newest file matching the pattern.
func (l *Locator) Resolve(pattern string) (string, error) {
	full := pattern
	if !filepath.IsAbs(pattern) {
		full = filepath.Join(l.dir, pattern)
	}

	matches, err := filepath.Glob(full)
	if err != nil {
		return "", NewSourceError(pattern, ErrCodeUnknown, "bad file pattern", err)
	}
	if len(matches) == 0 {
		return "", NewSourceError(pattern, ErrCodeNotFound,
			fmt.Sprintf("no file matching %s", full), nil)
	}

	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
