// Package report renders scan events as text, JSON lines or YAML documents.
package report

import (
	"fmt"
	"io"

	"github.com/starford/keyscan/internal/models"
	"github.com/starford/keyscan/internal/scanner"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Reporter is a scanner.Sink that writes to a stream.
type Reporter interface {
	scanner.Sink
	// Close flushes anything the encoder still buffers.
	Close() error
}

// Event is the structured form of one scan event, used by the JSON and YAML
// reporters and by the server surfaces.
type Event struct {
	Type  string          `json:"type" yaml:"type"`
	Match *models.Match   `json:"match,omitempty" yaml:"match,omitempty"`
	Error *FileErrorEvent `json:"error,omitempty" yaml:"error,omitempty"`
}

// FileErrorEvent is the serialisable form of models.FileError.
type FileErrorEvent struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// Event types.
const (
	EventMatch  = "match"
	EventError  = "error"
	EventDone   = "done"
	EventFailed = "failed"
)

// MatchEvent wraps m as an Event.
func MatchEvent(m models.Match) Event {
	return Event{Type: EventMatch, Match: &m}
}

// ErrorEvent wraps e as an Event.
func ErrorEvent(e models.FileError) Event {
	return Event{Type: EventError, Error: &FileErrorEvent{Path: e.Path, Message: e.Message()}}
}

// New returns the reporter for format writing to w.
func New(format string, w io.Writer) (Reporter, error) {
	switch format {
	case "", FormatText:
		return NewText(w), nil
	case FormatJSON:
		return NewJSON(w), nil
	case FormatYAML:
		return NewYAML(w), nil
	default:
		return nil, fmt.Errorf("report: unknown format %q", format)
	}
}
