package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/tyemirov/gaspy/internal/services/stream"
)

const (
	skipFormat    = "Skipping excluded path: %s"
	warningFormat = "Warning: skipping %s: %s"
	errorFormat   = "Error processing %s: %s"
)

// diagnosticPalette colors stderr lines. The zero value prints plain text.
type diagnosticPalette struct {
	skip    *color.Color
	warning *color.Color
	err     *color.Color
}

func newDiagnosticPalette(colorize bool) diagnosticPalette {
	if !colorize {
		return diagnosticPalette{}
	}
	palette := diagnosticPalette{
		skip:    color.New(color.FgCyan),
		warning: color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}
	for _, tone := range []*color.Color{palette.skip, palette.warning, palette.err} {
		tone.EnableColor()
	}
	return palette
}

// diagnosticLine formats the stderr line for a diagnostic event.
func diagnosticLine(event stream.Event) (string, bool) {
	switch event.Kind {
	case stream.EventKindSkip:
		return fmt.Sprintf(skipFormat, event.Path), true
	case stream.EventKindWarning:
		reason := ""
		if event.Message != nil {
			reason = event.Message.Message
		}
		return fmt.Sprintf(warningFormat, event.Path, reason), true
	case stream.EventKindError:
		reason := ""
		if event.Err != nil {
			reason = event.Err.Message
		}
		return fmt.Sprintf(errorFormat, event.Path, reason), true
	default:
		return "", false
	}
}

func (palette diagnosticPalette) tone(kind stream.EventKind) *color.Color {
	switch kind {
	case stream.EventKindSkip:
		return palette.skip
	case stream.EventKindWarning:
		return palette.warning
	case stream.EventKindError:
		return palette.err
	default:
		return nil
	}
}

// writeDiagnostic prints event to stderr when it is a diagnostic and reports
// whether it was one.
func writeDiagnostic(stderr io.Writer, palette diagnosticPalette, event stream.Event) (bool, error) {
	line, ok := diagnosticLine(event)
	if !ok {
		return false, nil
	}
	if stderr == nil {
		return true, nil
	}
	if tone := palette.tone(event.Kind); tone != nil {
		line = tone.Sprint(line)
	}
	_, err := fmt.Fprintln(stderr, line)
	return true, err
}
