// Package types defines every cross‑package data structure used by the gaspy CLI.
package types

import "encoding/xml"

const (
	CommandCount = "count"
	CommandPrint = "print"
	CommandInit  = "init"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatYAML = "yaml"
)

// RootReport is the outcome of counting one root path. Exactly one of Lines or
// Error is meaningful.
type RootReport struct {
	XMLName xml.Name `json:"-" xml:"root" yaml:"-"`
	Path    string   `json:"path" xml:"path,attr" yaml:"path"`
	Lines   *int     `json:"lines,omitempty" xml:"lines,attr,omitempty" yaml:"lines,omitempty"`
	Error   string   `json:"error,omitempty" xml:"error,attr,omitempty" yaml:"error,omitempty"`
}

// Succeeded reports whether the root was counted.
func (report RootReport) Succeeded() bool {
	return report.Lines != nil
}

// CountReport is the document rendered by the structured output formats.
type CountReport struct {
	XMLName xml.Name     `json:"-" xml:"count" yaml:"-"`
	Roots   []RootReport `json:"roots" xml:"roots>root" yaml:"roots"`
	Total   *int         `json:"total,omitempty" xml:"total,omitempty" yaml:"total,omitempty"`
}
