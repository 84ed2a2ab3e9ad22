package output_test

import (
	"bytes"
	"encoding/xml"
	"testing"

	"github.com/tyemirov/gaspy/internal/output"
	"github.com/tyemirov/gaspy/internal/types"
)

func TestXMLStreamRendererWritesCountDocument(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	renderEvents(t, output.NewXMLStreamRenderer(&stdout, &stderr), multiRootEvents())

	if !bytes.HasPrefix(stdout.Bytes(), []byte(xml.Header)) {
		t.Fatalf("expected xml header, got %q", stdout.String())
	}

	var decoded types.CountReport
	if err := xml.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode xml output: %v\noutput: %s", err, stdout.String())
	}
	if len(decoded.Roots) != 2 {
		t.Fatalf("expected two roots, got %d", len(decoded.Roots))
	}
	if !decoded.Roots[0].Succeeded() || *decoded.Roots[0].Lines != 10 {
		t.Fatalf("unexpected first root: %+v", decoded.Roots[0])
	}
	if decoded.Roots[1].Succeeded() || decoded.Roots[1].Path != "root2" {
		t.Fatalf("unexpected second root: %+v", decoded.Roots[1])
	}
	if decoded.Total == nil || *decoded.Total != 10 {
		t.Fatalf("unexpected total: %v", decoded.Total)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("Skipping excluded path: root1/.git")) {
		t.Fatalf("expected skip diagnostic on stderr, got %q", stderr.String())
	}
}
