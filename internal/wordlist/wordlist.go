// Package wordlist loads word lists from embedded dictionaries and user files.
//
// A list holds one word per line. Blank lines and lines starting with '#' are skipped, and only
// the first field of a line counts, so frequency lists like "word 1234" import as is.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadWords reads the word list at path.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
	}()
	return ReadWords(f)
}

// ReadWords parses a word list, keeping the first occurrence of each word.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		word := fields[0]
		if seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// WriteWords replaces path with words, one per line. The file is written to a temporary
// sibling first and renamed into place.
func WriteWords(path string, words []string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	var body strings.Builder
	for _, w := range words {
		body.WriteString(w)
		body.WriteByte('\n')
	}
	if _, err = io.WriteString(tmp, body.String()); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace word list: %w", err)
	}
	return nil
}

// Filter returns the words accepted by keep, in order.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
