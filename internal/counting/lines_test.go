package counting_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyemirov/gaspy/internal/counting"
)

func TestCountReaderAppliesRule(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		rule     counting.CountRule
		expected int
	}{
		{name: "empty_input", content: "", rule: counting.AllLines, expected: 0},
		{name: "single_terminated_line", content: "a\n", rule: counting.AllLines, expected: 1},
		{name: "unterminated_final_line", content: "a\nb\nc", rule: counting.AllLines, expected: 3},
		{name: "blank_lines_count_for_all", content: "a\n\n   \nb", rule: counting.AllLines, expected: 4},
		{name: "blank_lines_skipped_for_non_empty", content: "a\n\n   \nb", rule: counting.NonEmptyTrimmedLines, expected: 2},
		{name: "crlf_terminators", content: "a\r\nb\r\n\r\n", rule: counting.AllLines, expected: 3},
		{name: "crlf_blank_is_empty", content: "a\r\n\r\nb\r\n", rule: counting.NonEmptyTrimmedLines, expected: 2},
		{name: "tabs_are_whitespace", content: "\t\t\nx\n", rule: counting.NonEmptyTrimmedLines, expected: 1},
		{name: "only_newlines", content: "\n\n\n", rule: counting.AllLines, expected: 3},
		{name: "only_newlines_non_empty", content: "\n\n\n", rule: counting.NonEmptyTrimmedLines, expected: 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			lineCount, err := counting.CountReader(strings.NewReader(testCase.content), testCase.rule)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, lineCount)
		})
	}
}

func TestCountReaderHandlesLongLines(t *testing.T) {
	longLine := strings.Repeat("x", 256*1024)
	lineCount, err := counting.CountReader(strings.NewReader(longLine+"\n"+longLine), counting.AllLines)
	require.NoError(t, err)
	assert.Equal(t, 2, lineCount)
}

func TestCountReaderRejectsInvalidText(t *testing.T) {
	lineCount, err := counting.CountReader(strings.NewReader("ok\n\xff\xfe\n"), counting.AllLines)
	require.Error(t, err)
	assert.True(t, errors.Is(err, counting.ErrInvalidText))
	assert.Zero(t, lineCount)
}

func TestCountLinesReadsFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("x\ny\n"), 0o644))

	lineCount, err := counting.CountLines(filePath, counting.AllLines)
	require.NoError(t, err)
	assert.Equal(t, 2, lineCount)
}

func TestCountLinesReportsPathOnInvalidText(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "binary.bin")
	require.NoError(t, os.WriteFile(filePath, []byte{0xff, 0x00, 0xfe}, 0o644))

	_, err := counting.CountLines(filePath, counting.AllLines)
	require.Error(t, err)
	assert.ErrorIs(t, err, counting.ErrInvalidText)
	assert.Contains(t, err.Error(), filePath)
}

func TestCountLinesMissingFile(t *testing.T) {
	_, err := counting.CountLines(filepath.Join(t.TempDir(), "missing.txt"), counting.AllLines)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCountRule(t *testing.T) {
	testCases := []struct {
		input       string
		expected    counting.CountRule
		expectError bool
	}{
		{input: "all", expected: counting.AllLines},
		{input: " ALL ", expected: counting.AllLines},
		{input: "non-empty", expected: counting.NonEmptyTrimmedLines},
		{input: "nonempty", expected: counting.NonEmptyTrimmedLines},
		{input: "blank", expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			rule, err := counting.ParseCountRule(testCase.input)
			if testCase.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, rule)
			assert.Equal(t, rule, mustParse(t, rule.String()))
		})
	}
}

func mustParse(t *testing.T, name string) counting.CountRule {
	t.Helper()
	rule, err := counting.ParseCountRule(name)
	require.NoError(t, err)
	return rule
}
