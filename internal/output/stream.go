package output

import (
	"github.com/tyemirov/gaspy/internal/services/stream"
)

type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}
