package output

import (
	"encoding/xml"
	"io"

	"github.com/tyemirov/gaspy/internal/services/stream"
)

type xmlStreamRenderer struct {
	stdout    io.Writer
	stderr    io.Writer
	collector reportCollector
}

func NewXMLStreamRenderer(stdout, stderr io.Writer) StreamRenderer {
	return &xmlStreamRenderer{stdout: stdout, stderr: stderr}
}

func (renderer *xmlStreamRenderer) Handle(event stream.Event) error {
	if _, err := writeDiagnostic(renderer.stderr, diagnosticPalette{}, event); err != nil {
		return err
	}
	renderer.collector.add(event)
	return nil
}

func (renderer *xmlStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	if _, err := io.WriteString(renderer.stdout, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(renderer.stdout)
	encoder.Indent(indentPrefix, indentSpacer)
	if err := encoder.Encode(renderer.collector.document()); err != nil {
		return err
	}
	if err := encoder.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(renderer.stdout, "\n")
	return err
}
