// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/tukai/internal/model"
)

// RepeatCount is how many times a word is repeated in repeat-word mode.
const RepeatCount = 12

var mottos = []string{
	"Practice today, master tomorrow",
	"Fingers on keys, progress with ease",
	"Consistency breeds accuracy",
	"Type smarter, not harder",
	"Precision today, perfection tomorrow",
}

// Options controls optional text decoration.
type Options struct {
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// WordCount returns the number of words sampled for a session of the given duration.
func WordCount(duration model.TypingDuration) int {
	return duration.Seconds() * 2
}

// Sample picks up to count distinct entries from words without replacement.
// When count exceeds the list, every word is returned in shuffled order.
func (g *Generator) Sample(words []string, count int, opts Options) []string {
	if count <= 0 || len(words) == 0 {
		return nil
	}
	if count > len(words) {
		count = len(words)
	}
	perm := g.rnd.Perm(len(words))
	result := make([]string, 0, count)
	for _, idx := range perm[:count] {
		word := words[idx]
		word = applyCaps(g.rnd, word, opts.CapsPct)
		word = applyPunct(g.rnd, word, opts.PunctPct, opts.PunctSet)
		result = append(result, word)
	}
	return result
}

// Text returns a session text sized for duration. Every word is followed by a space.
func (g *Generator) Text(words []string, duration model.TypingDuration, opts Options) string {
	return joinWords(g.Sample(words, WordCount(duration), opts))
}

// RepeatText returns a single random word repeated RepeatCount times.
func (g *Generator) RepeatText(words []string) string {
	if len(words) == 0 {
		return ""
	}
	word := words[g.rnd.Intn(len(words))]
	repeated := make([]string, RepeatCount)
	for i := range repeated {
		repeated[i] = word
	}
	return joinWords(repeated)
}

// Motto returns a random motto for the typing view.
func (g *Generator) Motto() string {
	return mottos[g.rnd.Intn(len(mottos))]
}

func joinWords(words []string) string {
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(w)
		b.WriteByte(' ')
	}
	return b.String()
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
