// Package keywords reads the comma-separated keyword list a scan searches for.
package keywords

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PromptText is printed before reading keywords interactively.
const PromptText = "Enter keywords to search for (comma-separated): "

// Parse splits line on commas and trims surrounding whitespace from each
// piece. Empty and duplicate pieces are kept.
func Parse(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Prompt writes PromptText to w, reads one line from r and parses it.
// A final line without a newline is accepted; reading nothing at all is an
// error.
func Prompt(r io.Reader, w io.Writer) ([]string, error) {
	if _, err := io.WriteString(w, PromptText); err != nil {
		return nil, fmt.Errorf("keywords: write prompt: %w", err)
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return nil, fmt.Errorf("keywords: read input: %w", err)
	}
	return Parse(strings.TrimRight(line, "\r\n")), nil
}
