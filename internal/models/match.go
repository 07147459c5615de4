// Package models defines the domain types for keyscan.
package models

// ScanRequest describes a single scan. It is built once by the entry point
// and never modified while the scan runs. Root is the directory to walk,
// relative to the storage root ("" walks the whole tree).
type ScanRequest struct {
	Root     string   `json:"root"`
	Keywords []string `json:"keywords"`
	Exclude  string   `json:"exclude,omitempty"`
}

// Match is one (keyword, file, line) hit.
type Match struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Path    string `json:"path" yaml:"path"`
	Line    int    `json:"line" yaml:"line"`
	Text    string `json:"text" yaml:"text"`
}

// FileError records a file that was skipped because it could not be read.
type FileError struct {
	Path string `json:"path" yaml:"path"`
	Err  error  `json:"-" yaml:"-"`
}

// Message returns the underlying error text, or empty string.
func (e FileError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Summary counts what a scan touched.
type Summary struct {
	FilesScanned int `json:"files_scanned" yaml:"files_scanned"`
	FilesSkipped int `json:"files_skipped" yaml:"files_skipped"`
	Matches      int `json:"matches" yaml:"matches"`
}
