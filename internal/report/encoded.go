package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/starford/keyscan/internal/models"
)

// JSON writes one JSON object per line.
type JSON struct {
	enc *json.Encoder
}

// NewJSON creates a JSON-lines reporter.
func NewJSON(w io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(w)}
}

func (j *JSON) Match(m models.Match) error         { return j.enc.Encode(MatchEvent(m)) }
func (j *JSON) FileError(e models.FileError) error { return j.enc.Encode(ErrorEvent(e)) }
func (j *JSON) Close() error                       { return nil }

// YAML writes a stream of YAML documents, one per event.
type YAML struct {
	enc *yaml.Encoder
}

// NewYAML creates a YAML reporter.
func NewYAML(w io.Writer) *YAML {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YAML{enc: enc}
}

func (y *YAML) Match(m models.Match) error         { return y.enc.Encode(MatchEvent(m)) }
func (y *YAML) FileError(e models.FileError) error { return y.enc.Encode(ErrorEvent(e)) }
func (y *YAML) Close() error                       { return y.enc.Close() }
