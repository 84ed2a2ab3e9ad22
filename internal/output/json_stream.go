package output

import (
	"encoding/json"
	"io"

	"github.com/tyemirov/gaspy/internal/services/stream"
)

type jsonStreamRenderer struct {
	stdout    io.Writer
	stderr    io.Writer
	collector reportCollector
}

func NewJSONStreamRenderer(stdout, stderr io.Writer) StreamRenderer {
	return &jsonStreamRenderer{stdout: stdout, stderr: stderr}
}

func (renderer *jsonStreamRenderer) Handle(event stream.Event) error {
	if _, err := writeDiagnostic(renderer.stderr, diagnosticPalette{}, event); err != nil {
		return err
	}
	renderer.collector.add(event)
	return nil
}

func (renderer *jsonStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	encoder := json.NewEncoder(renderer.stdout)
	encoder.SetIndent(indentPrefix, indentSpacer)
	return encoder.Encode(renderer.collector.document())
}
