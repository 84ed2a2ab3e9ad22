package output

import (
	"fmt"
	"io"

	"github.com/tyemirov/gaspy/internal/services/stream"
	"github.com/tyemirov/gaspy/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	errorUnsupportedFormat = "unsupported output format '%s'"
)

// NewStreamRenderer returns the renderer for format. Diagnostics are colored only
// for the raw format and only when colorize is set.
func NewStreamRenderer(format string, stdout, stderr io.Writer, colorize bool) (StreamRenderer, error) {
	switch format {
	case types.FormatRaw:
		return NewRawStreamRenderer(stdout, stderr, colorize), nil
	case types.FormatJSON:
		return NewJSONStreamRenderer(stdout, stderr), nil
	case types.FormatXML:
		return NewXMLStreamRenderer(stdout, stderr), nil
	case types.FormatYAML:
		return NewYAMLStreamRenderer(stdout, stderr), nil
	default:
		return nil, fmt.Errorf(errorUnsupportedFormat, format)
	}
}

// reportCollector accumulates count events into the document written by the
// structured formats.
type reportCollector struct {
	report types.CountReport
}

func (collector *reportCollector) add(event stream.Event) {
	switch event.Kind {
	case stream.EventKindRoot:
		if event.Root == nil {
			return
		}
		lines := event.Root.Lines
		collector.report.Roots = append(collector.report.Roots, types.RootReport{Path: event.Root.Path, Lines: &lines})
	case stream.EventKindError:
		message := ""
		if event.Err != nil {
			message = event.Err.Message
		}
		collector.report.Roots = append(collector.report.Roots, types.RootReport{Path: event.Path, Error: message})
	case stream.EventKindTotal:
		if event.Total == nil {
			return
		}
		total := event.Total.Lines
		collector.report.Total = &total
	}
}

func (collector *reportCollector) document() types.CountReport {
	document := collector.report
	if document.Roots == nil {
		document.Roots = []types.RootReport{}
	}
	return document
}
