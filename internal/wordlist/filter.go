package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// extraLetters lists the non-ascii letters a language may use on top of a-z.
var extraLetters = map[string]string{
	"de": "äöüß",
	"es": "áéíóúñü",
	"fr": "àâæçéèêëîïôœùûüÿ",
	"pt": "áâãàçéêíóôõú",
}

// FilterForLang returns the filter applied to a language's word list. Known languages accept
// lowercase a-z plus their own letters; any other language accepts lowercase letters only.
func FilterForLang(lang string) FilterFunc {
	lang = strings.ToLower(lang)
	if lang == "en" {
		return alphabet("")
	}
	if extra, ok := extraLetters[lang]; ok {
		return alphabet(extra)
	}
	return lowercaseLetters
}

func alphabet(extra string) FilterFunc {
	return func(word string) bool {
		if word == "" {
			return false
		}
		for _, r := range word {
			if (r < 'a' || r > 'z') && !strings.ContainsRune(extra, r) {
				return false
			}
		}
		return true
	}
}

func lowercaseLetters(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) || unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
