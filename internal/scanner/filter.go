package scanner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TextExtensions is the fixed allow-list of file-name suffixes that mark a
// file as text. Matching is a case-sensitive suffix test, so FILE.TXT is not
// eligible.
var TextExtensions = []string{
	".txt", ".py", ".md", ".json", ".yaml", ".yml", ".csv", ".xml",
	".html", ".css", ".js", ".java", ".cpp", ".c", ".h", ".cs",
}

// HasTextExtension reports whether name ends with an allow-listed suffix.
func HasTextExtension(name string) bool {
	for _, ext := range TextExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Filter decides which walked files get scanned.
type Filter struct {
	exclude string // absolute, cleaned; empty excludes nothing
}

// NewFilter builds a Filter that rejects the file at exclude.
func NewFilter(exclude string) (*Filter, error) {
	if exclude == "" {
		return &Filter{}, nil
	}
	abs, err := filepath.Abs(exclude)
	if err != nil {
		return nil, fmt.Errorf("scanner: resolve exclude path: %w", err)
	}
	return &Filter{exclude: abs}, nil
}

// Eligible reports whether the file at path (absolute form abs) is scanned.
func (f *Filter) Eligible(path, abs string) bool {
	if !HasTextExtension(filepath.Base(path)) {
		return false
	}
	return f.exclude == "" || abs != f.exclude
}
