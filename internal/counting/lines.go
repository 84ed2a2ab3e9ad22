package counting

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

const (
	readBufferSize = 32 * 1024

	errorInvalidTextFormat = "line %d: %w"
	errorCloseFileFormat   = "closing %s: %w"
)

// ErrInvalidText reports content that is not valid UTF-8 text.
var ErrInvalidText = errors.New("stream did not contain valid UTF-8")

// CountLines returns the number of lines in the file at path accepted by rule.
// The file is closed before CountLines returns. On error no partial count is returned.
//
// #nosec G304
func CountLines(path string, rule CountRule) (lineCount int, err error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return 0, openError
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			lineCount = 0
			err = fmt.Errorf(errorCloseFileFormat, path, closeError)
		}
	}()

	count, countError := CountReader(fileHandle, rule)
	if countError != nil {
		var pathError *os.PathError
		if errors.As(countError, &pathError) {
			return 0, countError
		}
		return 0, &os.PathError{Op: "read", Path: path, Err: countError}
	}
	return count, nil
}

// CountReader counts the lines of reader accepted by rule. Lines end at "\n"; a
// trailing "\r" is removed before the rule is applied. A final line without a
// terminator is counted like any other line.
func CountReader(reader io.Reader, rule CountRule) (int, error) {
	bufferedReader := bufio.NewReaderSize(reader, readBufferSize)
	lineCount := 0
	lineNumber := 0
	for {
		line, readError := bufferedReader.ReadBytes('\n')
		if len(line) > 0 {
			lineNumber++
			content := trimLineTerminator(line)
			if !utf8.Valid(content) {
				return 0, fmt.Errorf(errorInvalidTextFormat, lineNumber, ErrInvalidText)
			}
			if rule.accepts(content) {
				lineCount++
			}
		}
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				return lineCount, nil
			}
			return 0, readError
		}
	}
}

func trimLineTerminator(line []byte) []byte {
	length := len(line)
	if length > 0 && line[length-1] == '\n' {
		length--
		if length > 0 && line[length-1] == '\r' {
			length--
		}
	}
	return line[:length]
}
