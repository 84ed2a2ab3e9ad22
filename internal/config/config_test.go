package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadExclusionNamesSkipsCommentsAndBlanks verifies that only trimmed names survive.
func TestLoadExclusionNamesSkipsCommentsAndBlanks(testingHandle *testing.T) {
	exclusionFilePath := filepath.Join(testingHandle.TempDir(), "exclude.txt")
	writeTestFile(testingHandle, exclusionFilePath, "# build output\nnode_modules\n\n  .git  \n\t\ndist\n.git\n")

	names, loadError := LoadExclusionNames(exclusionFilePath)
	if loadError != nil {
		testingHandle.Fatalf("LoadExclusionNames failed: %v", loadError)
	}
	expectedNames := []string{"node_modules", ".git", "dist"}
	if !reflect.DeepEqual(names, expectedNames) {
		testingHandle.Fatalf("unexpected names: got %v want %v", names, expectedNames)
	}
}

// TestLoadExclusionNamesMissingFile verifies that an explicitly named file must exist.
func TestLoadExclusionNamesMissingFile(testingHandle *testing.T) {
	_, loadError := LoadExclusionNames(filepath.Join(testingHandle.TempDir(), "absent"))
	if !errors.Is(loadError, os.ErrNotExist) {
		testingHandle.Fatalf("expected not-exist error, got %v", loadError)
	}
}
