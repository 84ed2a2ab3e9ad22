package counting

import (
	"path/filepath"
	"sort"
	"strings"
)

// ExclusionSet holds bare entry names that are skipped during counting.
// It is built once and never modified afterwards.
type ExclusionSet struct {
	names map[string]struct{}
}

// NewExclusionSet builds a set from names. Surrounding whitespace is trimmed and
// empty names are dropped.
func NewExclusionSet(names ...string) ExclusionSet {
	set := ExclusionSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		trimmedName := strings.TrimSpace(name)
		if trimmedName == "" {
			continue
		}
		set.names[trimmedName] = struct{}{}
	}
	return set
}

// IsExcluded reports whether the final component of path exactly matches an
// excluded name. Paths without a usable base name are never excluded.
func (set ExclusionSet) IsExcluded(path string) bool {
	if len(set.names) == 0 {
		return false
	}
	baseName, ok := baseNameOf(path)
	if !ok {
		return false
	}
	_, excluded := set.names[baseName]
	return excluded
}

// Len returns the number of excluded names.
func (set ExclusionSet) Len() int {
	return len(set.names)
}

// Names returns the excluded names in sorted order.
func (set ExclusionSet) Names() []string {
	names := make([]string, 0, len(set.names))
	for name := range set.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func baseNameOf(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	baseName := filepath.Base(path)
	switch baseName {
	case ".", "..", string(filepath.Separator):
		return "", false
	}
	return baseName, true
}
