package stream

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/tyemirov/gaspy/internal/counting"
	"github.com/tyemirov/gaspy/internal/types"
)

const (
	errorNilChannel = "stream: event channel is nil"
	errorNoRoots    = "stream: no root paths to count"

	levelInfo    = "info"
	levelWarning = "warning"

	messageExcluded = "excluded"
)

// CountOptions describes one counting run over a list of roots.
type CountOptions struct {
	Roots  []string
	Config counting.Config
}

type emitter struct {
	ctx     context.Context
	out     chan<- Event
	command string
}

func newEmitter(ctx context.Context, out chan<- Event, command string) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out, command: command}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return errors.New(errorNilChannel)
	}
	event.Version = SchemaVersion
	if event.Command == "" {
		event.Command = e.command
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

func (e *emitter) warn(path, message string) {
	trimmed := strings.TrimRight(message, "\n")
	if trimmed == "" {
		return
	}
	_ = e.send(Event{
		Kind:    EventKindWarning,
		Path:    path,
		Message: &LogEvent{Level: levelWarning, Message: trimmed},
	})
}

func (e *emitter) skip(path string) {
	_ = e.send(Event{
		Kind:    EventKindSkip,
		Path:    path,
		Message: &LogEvent{Level: levelInfo, Message: messageExcluded},
	})
}

// StreamCount counts every root in order and emits one event per outcome: a
// skip or warning event for each diagnostic, then a root or error event for the
// root itself. A total event follows when more than one root was given. Failures
// of individual roots do not stop the run; only a cancelled context does.
func StreamCount(ctx context.Context, opts CountOptions, out chan<- Event) error {
	if len(opts.Roots) == 0 {
		return errors.New(errorNoRoots)
	}

	emitter := newEmitter(ctx, out, types.CommandCount)
	if err := emitter.send(Event{
		Kind: EventKindStart,
		Start: &StartEvent{
			Roots:     len(opts.Roots),
			Recursive: opts.Config.Recursive,
			Rule:      opts.Config.Rule.String(),
		},
	}); err != nil {
		return err
	}

	walker := counting.NewWalker(opts.Config, counting.ReporterFuncs{
		OnExcluded: emitter.skip,
		OnFailed: func(path string, err error) {
			emitter.warn(path, FailureReason(err))
		},
	})

	total := 0
	for _, root := range opts.Roots {
		lineCount, countErr := walker.CountTree(emitter.ctx, root)
		if countErr != nil {
			if errors.Is(countErr, context.Canceled) || errors.Is(countErr, context.DeadlineExceeded) {
				return countErr
			}
			if err := emitter.send(Event{Kind: EventKindError, Path: root, Err: &ErrorEvent{Message: FailureReason(countErr)}}); err != nil {
				return err
			}
			continue
		}
		total += lineCount
		if err := emitter.send(Event{Kind: EventKindRoot, Path: root, Root: &RootEvent{Path: root, Lines: lineCount}}); err != nil {
			return err
		}
	}

	if len(opts.Roots) > 1 {
		if err := emitter.send(Event{Kind: EventKindTotal, Total: &TotalEvent{Roots: len(opts.Roots), Lines: total}}); err != nil {
			return err
		}
	}
	return emitter.send(Event{Kind: EventKindDone})
}

// FailureReason renders err without repeating the path it concerns.
func FailureReason(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range []error{counting.ErrNotFound, counting.ErrSymlinkCycle} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	var pathError *fs.PathError
	if errors.As(err, &pathError) {
		return pathError.Err.Error()
	}
	return err.Error()
}
