package printer_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tyemirov/gaspy/internal/printer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestPrintReaderNumbering(t *testing.T) {
	testCases := []struct {
		name     string
		options  printer.Options
		input    string
		expected string
	}{
		{name: "pass_through", input: "a\n\nb", expected: "a\n\nb"},
		{name: "number_all", options: printer.Options{Number: true}, input: "a\n\nb\n", expected: "     1\ta\n     2\t\n     3\tb\n"},
		{name: "number_non_blank", options: printer.Options{NumberNonBlank: true}, input: "a\n  \nb\n", expected: "     1\ta\n  \n     2\tb\n"},
		{name: "non_blank_wins", options: printer.Options{Number: true, NumberNonBlank: true}, input: "\nx\n", expected: "\n     1\tx\n"},
		{name: "unterminated_last_line", options: printer.Options{Number: true}, input: "a\nb", expected: "     1\ta\n     2\tb"},
		{name: "empty_input", options: printer.Options{Number: true}, input: "", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var stdout bytes.Buffer
			linePrinter := printer.New(&stdout, nil, nil, testCase.options)
			if err := linePrinter.PrintReader(strings.NewReader(testCase.input)); err != nil {
				t.Fatalf("print failed: %v", err)
			}
			if stdout.String() != testCase.expected {
				t.Fatalf("unexpected output %q, want %q", stdout.String(), testCase.expected)
			}
		})
	}
}

func TestPrintPathsNumbersContinuouslyAndReportsFailures(t *testing.T) {
	directory := t.TempDir()
	firstPath := filepath.Join(directory, "first.txt")
	secondPath := filepath.Join(directory, "second.txt")
	missingPath := filepath.Join(directory, "missing.txt")
	writeFile(t, firstPath, "one\ntwo\n")
	writeFile(t, secondPath, "three\n")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	linePrinter := printer.New(&stdout, &stderr, nil, printer.Options{Number: true})
	if err := linePrinter.PrintPaths([]string{firstPath, missingPath, secondPath}); err != nil {
		t.Fatalf("print failed: %v", err)
	}

	expected := "     1\tone\n     2\ttwo\n     3\tthree\n"
	if stdout.String() != expected {
		t.Fatalf("unexpected output %q, want %q", stdout.String(), expected)
	}
	expectedPrefix := "Error reading file " + missingPath + ": "
	if !strings.HasPrefix(stderr.String(), expectedPrefix) || strings.Count(stderr.String(), "\n") != 1 {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
	if strings.Count(stderr.String(), missingPath) != 1 {
		t.Fatalf("path repeated in diagnostic: %q", stderr.String())
	}
}

func TestPrintPathsReadsStandardInput(t *testing.T) {
	testCases := []struct {
		name  string
		paths []string
	}{
		{name: "no_paths", paths: nil},
		{name: "dash", paths: []string{printer.StdinPath}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var stdout bytes.Buffer
			linePrinter := printer.New(&stdout, nil, strings.NewReader("from stdin\n"), printer.Options{})
			if err := linePrinter.PrintPaths(testCase.paths); err != nil {
				t.Fatalf("print failed: %v", err)
			}
			if stdout.String() != "from stdin\n" {
				t.Fatalf("unexpected output %q", stdout.String())
			}
		})
	}
}

func TestPrintPathsReportsDirectory(t *testing.T) {
	directory := t.TempDir()
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	if err := printer.New(&stdout, &stderr, nil, printer.Options{}).PrintPaths([]string{directory}); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if !strings.HasPrefix(stderr.String(), "Error reading file "+directory+": ") {
		t.Fatalf("expected read error for directory, got %q", stderr.String())
	}
}

type failingWriter struct{}

var errClosed = errors.New("closed pipe")

func (failingWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestPrintPathsStopsOnOutputFailure(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "input.txt")
	writeFile(t, filePath, "payload\n")

	for _, options := range []printer.Options{{}, {Number: true}} {
		var stderr bytes.Buffer
		err := printer.New(failingWriter{}, &stderr, nil, options).PrintPaths([]string{filePath, filePath})
		if !errors.Is(err, errClosed) {
			t.Fatalf("options %+v: expected output failure, got %v", options, err)
		}
		if stderr.Len() != 0 {
			t.Fatalf("output failures must not be reported as read errors: %q", stderr.String())
		}
	}
}
