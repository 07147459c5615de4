package scanner

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/starford/keyscan/internal/apperr"
	"github.com/starford/keyscan/internal/models"
)

// scanFile reads one file and reports every (keyword, line) hit to sink.
// The whole file is decoded before the first match is emitted, so a file with
// invalid UTF-8 never produces a partial set of matches.
func (s *Scanner) scanFile(path string, keywords []string, sink Sink) (int, error) {
	rc, err := s.store.Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	if off := invalidUTF8Offset(data); off >= 0 {
		return 0, fmt.Errorf("%w at byte offset %d", apperr.ErrInvalidEncoding, off)
	}

	n := 0
	err = eachLine(string(data), func(num int, line string) error {
		for _, kw := range keywords {
			if !strings.Contains(line, kw) {
				continue
			}
			n++
			if err := sink.Match(models.Match{
				Keyword: kw,
				Path:    path,
				Line:    num,
				Text:    trimLine(line),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	return n, err
}

// eachLine calls fn for every line of text with 1-based numbering. Lines end
// at "\n", "\r\n" or a lone "\r"; terminators are not passed to fn. A trailing
// terminator does not start an extra empty line.
func eachLine(text string, fn func(num int, line string) error) error {
	num := 0
	for len(text) > 0 {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			num++
			return fn(num, text)
		}
		line := text[:i]
		next := i + 1
		if text[i] == '\r' && next < len(text) && text[next] == '\n' {
			next++
		}
		num++
		if err := fn(num, line); err != nil {
			return err
		}
		text = text[next:]
	}
	return nil
}

// trimLine strips leading and trailing whitespace. The ASCII information
// separators U+001C to U+001F count as whitespace too.
func trimLine(line string) string {
	return strings.TrimFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
	})
}

// invalidUTF8Offset returns the byte offset of the first invalid UTF-8
// sequence in data, or -1 if data is valid.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
