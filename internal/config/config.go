// Package config loads application configuration and exclusion-name files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tyemirov/gaspy/internal/utils"
)

const commentPrefix = "#"

// LoadExclusionNames reads one excluded name per line from exclusionFilePath.
// Blank lines and lines starting with # are skipped and surrounding whitespace is
// trimmed. Names are returned in file order without duplicates.
//
// #nosec G304
func LoadExclusionNames(exclusionFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(exclusionFilePath)
	if openFileError != nil {
		return nil, fmt.Errorf("open exclusion file %s: %w", exclusionFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", exclusionFilePath, closeError)
		}
	}()

	var exclusionNames []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		exclusionNames = append(exclusionNames, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("read exclusion file %s: %w", exclusionFilePath, scanError)
	}
	return utils.DeduplicatePatterns(exclusionNames), nil
}
