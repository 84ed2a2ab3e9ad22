package output

import (
	"fmt"
	"io"

	"github.com/tyemirov/gaspy/internal/services/stream"
)

const (
	rootLineFormat  = "%s: %d lines\n"
	totalLineFormat = "Total: %d lines\n"
)

type rawStreamRenderer struct {
	stdout  io.Writer
	stderr  io.Writer
	palette diagnosticPalette
}

// NewRawStreamRenderer prints one line per root as soon as it is counted. When
// colorize is set, diagnostics on stderr are colored.
func NewRawStreamRenderer(stdout, stderr io.Writer, colorize bool) StreamRenderer {
	return &rawStreamRenderer{
		stdout:  stdout,
		stderr:  stderr,
		palette: newDiagnosticPalette(colorize),
	}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	if handled, err := writeDiagnostic(renderer.stderr, renderer.palette, event); handled {
		return err
	}
	if renderer.stdout == nil {
		return nil
	}
	switch event.Kind {
	case stream.EventKindRoot:
		if event.Root == nil {
			return nil
		}
		_, err := fmt.Fprintf(renderer.stdout, rootLineFormat, event.Root.Path, event.Root.Lines)
		return err
	case stream.EventKindTotal:
		if event.Total == nil {
			return nil
		}
		_, err := fmt.Fprintf(renderer.stdout, totalLineFormat, event.Total.Lines)
		return err
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	return nil
}
