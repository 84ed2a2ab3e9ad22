package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tyemirov/gaspy/internal/services/stream"
)

const yamlIndentWidth = 2

type yamlStreamRenderer struct {
	stdout    io.Writer
	stderr    io.Writer
	collector reportCollector
}

func NewYAMLStreamRenderer(stdout, stderr io.Writer) StreamRenderer {
	return &yamlStreamRenderer{stdout: stdout, stderr: stderr}
}

func (renderer *yamlStreamRenderer) Handle(event stream.Event) error {
	if _, err := writeDiagnostic(renderer.stderr, diagnosticPalette{}, event); err != nil {
		return err
	}
	renderer.collector.add(event)
	return nil
}

func (renderer *yamlStreamRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	encoder := yaml.NewEncoder(renderer.stdout)
	encoder.SetIndent(yamlIndentWidth)
	if err := encoder.Encode(renderer.collector.document()); err != nil {
		return err
	}
	return encoder.Close()
}
