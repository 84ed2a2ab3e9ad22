// Package printer copies files or standard input to an output stream, optionally
// numbering lines.
package printer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// StdinPath selects standard input in a list of paths.
const StdinPath = "-"

const (
	numberedLineFormat = "%6d\t"
	readErrorFormat    = "Error reading file %s: %s\n"
	readerBufferSize   = 32 * 1024
)

// Options controls line numbering. NumberNonBlank takes precedence over Number.
type Options struct {
	Number         bool
	NumberNonBlank bool
}

func (options Options) numbering() bool {
	return options.Number || options.NumberNonBlank
}

// Printer writes inputs to stdout and read failures to stderr. Line numbers
// continue across every input handled by the same Printer.
type Printer struct {
	stdout     io.Writer
	stderr     io.Writer
	stdin      io.Reader
	options    Options
	lineNumber int
}

func New(stdout, stderr io.Writer, stdin io.Reader, options Options) *Printer {
	return &Printer{stdout: stdout, stderr: stderr, stdin: stdin, options: options}
}

// writeError marks a failure of the output stream, which aborts printing.
type writeError struct {
	err error
}

func (failure writeError) Error() string { return failure.err.Error() }

func (failure writeError) Unwrap() error { return failure.err }

// PrintPaths prints every path in order. An empty list prints standard input.
// A path that cannot be opened or read is reported on stderr and skipped; only a
// failure to write the output is returned.
func (printer *Printer) PrintPaths(paths []string) error {
	if len(paths) == 0 {
		paths = []string{StdinPath}
	}
	for _, path := range paths {
		if err := printer.printPath(path); err != nil {
			var outputFailure writeError
			if errors.As(err, &outputFailure) {
				return outputFailure.err
			}
			printer.reportFailure(path, err)
		}
	}
	return nil
}

func (printer *Printer) printPath(path string) error {
	if path == StdinPath {
		if printer.stdin == nil {
			return nil
		}
		return printer.PrintReader(printer.stdin)
	}
	file, openErr := os.Open(path)
	if openErr != nil {
		return openErr
	}
	defer file.Close()
	return printer.PrintReader(file)
}

// PrintReader copies reader to stdout, numbering lines when requested.
func (printer *Printer) PrintReader(reader io.Reader) error {
	if !printer.options.numbering() {
		if _, err := io.Copy(writerOnly{printer.stdout}, reader); err != nil {
			return err
		}
		return nil
	}

	bufferedReader := bufio.NewReaderSize(reader, readerBufferSize)
	for {
		line, readErr := bufferedReader.ReadBytes('\n')
		if len(line) > 0 {
			if err := printer.writeLine(line); err != nil {
				return writeError{err: err}
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func (printer *Printer) writeLine(line []byte) error {
	if printer.options.NumberNonBlank && len(bytes.TrimSpace(line)) == 0 {
		_, err := printer.stdout.Write(line)
		return err
	}
	printer.lineNumber++
	if _, err := fmt.Fprintf(printer.stdout, numberedLineFormat, printer.lineNumber); err != nil {
		return err
	}
	_, err := printer.stdout.Write(line)
	return err
}

func (printer *Printer) reportFailure(path string, err error) {
	if printer.stderr == nil {
		return
	}
	reason := err.Error()
	var pathError *fs.PathError
	if errors.As(err, &pathError) {
		reason = pathError.Err.Error()
	}
	fmt.Fprintf(printer.stderr, readErrorFormat, path, reason)
}

// writerOnly tags errors from the destination so io.Copy failures can be told
// apart from read failures.
type writerOnly struct {
	writer io.Writer
}

func (destination writerOnly) Write(data []byte) (int, error) {
	written, err := destination.writer.Write(data)
	if err != nil {
		return written, writeError{err: err}
	}
	return written, nil
}
