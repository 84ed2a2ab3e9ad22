package stream

import (
	"encoding/xml"
	"time"
)

const SchemaVersion = 1

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindSkip    EventKind = "skip"
	EventKindWarning EventKind = "warning"
	EventKindRoot    EventKind = "root"
	EventKindError   EventKind = "error"
	EventKindTotal   EventKind = "total"
	EventKindDone    EventKind = "done"
)

type Event struct {
	XMLName   xml.Name  `json:"-" xml:"event"`
	Version   int       `json:"version" xml:"version,attr"`
	Kind      EventKind `json:"kind" xml:"kind,attr"`
	Command   string    `json:"command,omitempty" xml:"command,attr,omitempty"`
	Path      string    `json:"path,omitempty" xml:"path,attr,omitempty"`
	EmittedAt time.Time `json:"emittedAt,omitempty" xml:"emittedAt,attr,omitempty"`

	Start   *StartEvent `json:"start,omitempty" xml:"start,omitempty"`
	Root    *RootEvent  `json:"root,omitempty" xml:"root,omitempty"`
	Total   *TotalEvent `json:"total,omitempty" xml:"total,omitempty"`
	Message *LogEvent   `json:"message,omitempty" xml:"message,omitempty"`
	Err     *ErrorEvent `json:"error,omitempty" xml:"error,omitempty"`
}

// StartEvent describes the run that is about to begin.
type StartEvent struct {
	Roots     int    `json:"roots" xml:"roots,attr"`
	Recursive bool   `json:"recursive" xml:"recursive,attr"`
	Rule      string `json:"rule" xml:"rule,attr"`
}

// RootEvent carries the count of one root path.
type RootEvent struct {
	Path  string `json:"path" xml:"path,attr"`
	Lines int    `json:"lines" xml:"lines,attr"`
}

// TotalEvent carries the grand total across roots. It is emitted only when more
// than one root was requested.
type TotalEvent struct {
	Roots int `json:"roots" xml:"roots,attr"`
	Lines int `json:"lines" xml:"lines,attr"`
}

type LogEvent struct {
	Level   string `json:"level,omitempty" xml:"level,attr,omitempty"`
	Message string `json:"message" xml:",chardata"`
}

type ErrorEvent struct {
	Message string `json:"message" xml:",chardata"`
}
