package wordlist

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultLanguage sorts first, so a fresh record's language index 0 selects it.
const DefaultLanguage = "en"

//go:embed dictionary/*.txt
var dictionaries embed.FS

// Language is one selectable word list.
type Language struct {
	Name string
	// Path is empty for embedded dictionaries.
	Path string
}

// Embedded reports whether the language ships with the binary.
func (l Language) Embedded() bool {
	return l.Path == ""
}

// Catalog lists the available languages in a stable order and loads their words.
// User files in the word list directory shadow embedded dictionaries of the same name.
type Catalog struct {
	langs []Language
	cache map[int][]string
}

// NewCatalog builds a catalog from the embedded dictionaries and the user directory.
// A missing user directory is not an error.
func NewCatalog(userDir string) (*Catalog, error) {
	byName := map[string]Language{}
	entries, err := dictionaries.ReadDir("dictionary")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded dictionaries: %w", err)
	}
	for _, entry := range entries {
		name, ok := langName(entry.Name())
		if !ok {
			continue
		}
		byName[name] = Language{Name: name}
	}

	if userDir != "" {
		userEntries, err := os.ReadDir(userDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
		}
		for _, entry := range userEntries {
			if entry.IsDir() {
				continue
			}
			name, ok := langName(entry.Name())
			if !ok {
				continue
			}
			byName[name] = Language{Name: name, Path: filepath.Join(userDir, entry.Name())}
		}
	}

	langs := make([]Language, 0, len(byName))
	for _, lang := range byName {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if (langs[i].Name == DefaultLanguage) != (langs[j].Name == DefaultLanguage) {
			return langs[i].Name == DefaultLanguage
		}
		return langs[i].Name < langs[j].Name
	})
	return &Catalog{langs: langs, cache: map[int][]string{}}, nil
}

func langName(file string) (string, bool) {
	if !strings.HasSuffix(file, ".txt") {
		return "", false
	}
	name := strings.TrimSuffix(file, ".txt")
	if name == "" || strings.HasPrefix(name, ".") || strings.ToUpper(name) == name {
		// Skips hidden files, LICENSE.txt and similar.
		return "", false
	}
	return name, true
}

// Languages returns the catalog entries in selection order.
func (c *Catalog) Languages() []Language {
	out := make([]Language, len(c.langs))
	copy(out, c.langs)
	return out
}

// Len returns the number of languages.
func (c *Catalog) Len() int {
	return len(c.langs)
}

// Normalize wraps index into the catalog range.
func (c *Catalog) Normalize(index int) int {
	if len(c.langs) == 0 || index < 0 {
		return 0
	}
	return index % len(c.langs)
}

// Next returns the index after index, wrapping around.
func (c *Catalog) Next(index int) int {
	return c.Normalize(c.Normalize(index) + 1)
}

// Name returns the language name at index.
func (c *Catalog) Name(index int) string {
	if len(c.langs) == 0 {
		return ""
	}
	return c.langs[c.Normalize(index)].Name
}

// Index returns the position of name.
func (c *Catalog) Index(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, lang := range c.langs {
		if lang.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Words returns the filtered words of the language at index.
func (c *Catalog) Words(index int) ([]string, error) {
	if len(c.langs) == 0 {
		return nil, fmt.Errorf("no languages available")
	}
	index = c.Normalize(index)
	if words, ok := c.cache[index]; ok {
		return words, nil
	}
	lang := c.langs[index]
	words, err := c.load(lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s word list: %w", lang.Name, err)
	}
	words = Filter(words, FilterForLang(lang.Name))
	if len(words) == 0 {
		return nil, fmt.Errorf("%s word list has no usable words", lang.Name)
	}
	c.cache[index] = words
	return words, nil
}

func (c *Catalog) load(lang Language) ([]string, error) {
	if !lang.Embedded() {
		return LoadWords(lang.Path)
	}
	file, err := dictionaries.Open(path.Join("dictionary", lang.Name+".txt"))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for embedded file.
			_ = cerr
		}
	}()
	return ReadWords(file)
}
