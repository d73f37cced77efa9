package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := NewCatalog("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	names := []string{}
	for _, lang := range c.Languages() {
		if !lang.Embedded() {
			t.Fatalf("expected embedded language, got %+v", lang)
		}
		names = append(names, lang.Name)
	}
	if strings.Join(names, ",") != "en,de,es" {
		t.Fatalf("unexpected languages %v", names)
	}
	words, err := c.Words(0)
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	if len(words) < 100 {
		t.Fatalf("expected a sizable english list, got %d", len(words))
	}
}

func TestCatalogIndexWraps(t *testing.T) {
	c, err := NewCatalog("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if got := c.Next(c.Len() - 1); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	if got := c.Name(c.Len() + 1); got != "de" {
		t.Fatalf("expected out-of-range index to wrap to de, got %q", got)
	}
	if idx, ok := c.Index("ES"); !ok || idx != 2 {
		t.Fatalf("expected es at 2, got %d %v", idx, ok)
	}
	if _, ok := c.Index("fr"); ok {
		t.Fatalf("expected fr to be missing")
	}
}

func TestUserListsShadowAndExtend(t *testing.T) {
	dir := t.TempDir()
	if err := WriteWords(filepath.Join(dir, "en.txt"), []string{"alpha", "Beta", "gamma", "alpha"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteWords(filepath.Join(dir, "fr.txt"), []string{"bonjour", "merci"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "LICENSE.txt"), []byte("text\n"), 0o644); err != nil {
		t.Fatalf("write license: %v", err)
	}

	c, err := NewCatalog(dir)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("expected 4 languages, got %d", c.Len())
	}
	idx, ok := c.Index("en")
	if !ok {
		t.Fatalf("missing en")
	}
	words, err := c.Words(idx)
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	if strings.Join(words, ",") != "alpha,gamma" {
		t.Fatalf("expected filtered deduplicated user list, got %v", words)
	}
}

func TestMissingUserDirIsIgnored(t *testing.T) {
	c, err := NewCatalog(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected embedded languages only, got %d", c.Len())
	}
}

func TestReadWordsRejectsEmpty(t *testing.T) {
	if _, err := ReadWords(strings.NewReader("\n  \n")); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestReadWordsFrequencyFormat(t *testing.T) {
	words, err := ReadWords(strings.NewReader("# top words\nthe 5000\n\nof 3000\nthe 12\n  and\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Join(words, ",") != "the,of,and" {
		t.Fatalf("unexpected words: %v", words)
	}
}
