// Package corpus loads and validates fixed-length word corpora.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrEmpty is returned when a corpus has no words.
	ErrEmpty = errors.New("corpus is empty")
	// ErrUnequalLength is returned when words differ in length.
	ErrUnequalLength = errors.New("corpus words have unequal lengths")
)

// Corpus is an ordered list of lowercase words sharing one length.
type Corpus struct {
	Name   string
	Words  []string
	Length int
}

// New validates the word list and returns a Corpus. Every word must
// share the first word's rune length.
func New(name string, words []string) (*Corpus, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	length := len([]rune(words[0]))
	for _, word := range words {
		if len([]rune(word)) != length {
			return nil, fmt.Errorf("%s: %w: %q is not %d letters", name, ErrUnequalLength, word, length)
		}
	}
	return &Corpus{Name: name, Words: words, Length: length}, nil
}

// Split breaks a delimited blob into trimmed lowercase words, dropping
// empty segments.
func Split(blob, delimiter string) []string {
	parts := strings.Split(blob, delimiter)
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		word := strings.ToLower(strings.TrimSpace(part))
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}

// LoadDelimited reads a whole file and splits it on the delimiter.
// Wordle answers are persisted pipe-delimited.
func LoadDelimited(name, path, delimiter string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(name, Split(string(data), delimiter))
}

// LoadLines reads one word per line, skipping blank lines.
func LoadLines(name, path string) (*Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(name, words)
}
