// Package counting implements the line counting engine: a per-file line counter,
// a base-name exclusion filter, and a directory walker that aggregates counts.
package counting

import (
	"bytes"
	"fmt"
	"strings"
)

// CountRule selects which lines contribute to a line count.
type CountRule int

const (
	// NonEmptyTrimmedLines counts lines that are non-empty after trimming whitespace.
	NonEmptyTrimmedLines CountRule = iota
	// AllLines counts every line, including a final line without a terminator.
	AllLines
)

const (
	// RuleNameAll is the textual name of AllLines.
	RuleNameAll = "all"
	// RuleNameNonEmpty is the textual name of NonEmptyTrimmedLines.
	RuleNameNonEmpty = "non-empty"

	errorUnknownRuleFormat = "unknown count rule '%s' (expected %s or %s)"
)

var ruleAliases = map[string]CountRule{
	RuleNameAll:       AllLines,
	"all-lines":       AllLines,
	RuleNameNonEmpty:  NonEmptyTrimmedLines,
	"nonempty":        NonEmptyTrimmedLines,
	"non-empty-lines": NonEmptyTrimmedLines,
}

// ParseCountRule converts a rule name into a CountRule. Matching is case-insensitive.
func ParseCountRule(name string) (CountRule, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	rule, known := ruleAliases[normalized]
	if !known {
		return NonEmptyTrimmedLines, fmt.Errorf(errorUnknownRuleFormat, name, RuleNameAll, RuleNameNonEmpty)
	}
	return rule, nil
}

// String returns the canonical name of the rule.
func (rule CountRule) String() string {
	if rule == AllLines {
		return RuleNameAll
	}
	return RuleNameNonEmpty
}

func (rule CountRule) accepts(line []byte) bool {
	if rule == AllLines {
		return true
	}
	return len(bytes.TrimSpace(line)) > 0
}
