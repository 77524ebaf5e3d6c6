package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiPunct is the POSIX punctuation class.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// stripAccents removes combining marks: "dólares" becomes "dolares".
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// isWordLetter reports whether r counts as a letter for whole-word matching.
// Accented Spanish vowels and ñ are letters; digits are not.
func isWordLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	return strings.ContainsRune("ÁÉÍÓÚáéíóúÑñ", r)
}

// containsWord reports whether needle occurs in haystack with no letter
// immediately before or after it.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; start < len(haystack); {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(needle)
		before, _ := utf8.DecodeLastRuneInString(haystack[:i])
		after, _ := utf8.DecodeRuneInString(haystack[end:])
		if !isWordLetter(before) && !isWordLetter(after) {
			return true
		}
		_, size := utf8.DecodeRuneInString(haystack[i:])
		start = i + size
	}
	return false
}

func isPunct(r rune) bool {
	return (r < utf8.RuneSelf && strings.ContainsRune(asciiPunct, r)) || unicode.IsPunct(r)
}

// isPunctToken reports whether w is made only of punctuation.
func isPunctToken(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !isPunct(r) {
			return false
		}
	}
	return true
}

func isPunctOrSpace(r rune) bool {
	return isPunct(r) || unicode.IsSpace(r)
}

// trimPunct strips leading and trailing punctuation and whitespace.
func trimPunct(s string) string {
	return strings.TrimFunc(s, isPunctOrSpace)
}

// trimTrailingPunct strips trailing punctuation and whitespace only.
func trimTrailingPunct(s string) string {
	return strings.TrimRightFunc(s, isPunctOrSpace)
}

// stripLeadingPreposition removes at most one leading preposition followed by
// a space, trying prepositions in order, case-insensitively.
func stripLeadingPreposition(s string, prepositions []string) string {
	for _, p := range prepositions {
		prefix := p + " "
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			return strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}
