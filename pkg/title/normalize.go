// Package title normalizes movie titles and scores fuzzy title matches.
//
// The catalog and the ratings provider spell the same film differently:
// en dashes against hyphens, curly against straight apostrophes, "Vol. 1"
// against "Volume 1", "Part II" against "Part 2", and a "(2019)"
// disambiguation suffix on remakes. Clean maps all of those spellings to
// one key.
package title

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// yearSuffix matches a trailing "(1999)" style disambiguator.
var yearSuffix = regexp.MustCompile(`\s*\((18|19|20|21)\d{2}\)\s*$`)

var punctuation = strings.NewReplacer(
	"&", " and ",
	"'", "", "’", "", "‘", "", "ʼ", "", "`", "",
	"-", " ", "‐", " ", "‑", " ", "–", " ", "—", " ", "−", " ",
	".", " ", "/", " ",
)

var articles = map[string]bool{"the": true, "a": true, "an": true}

// sequelNumerals are rewritten anywhere but the first word, so "I, Robot",
// "V for Vendetta" and "Malcolm X" keep their letters.
var sequelNumerals = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

var abbreviations = map[string]string{
	"vol": "volume",
	"pt":  "part",
	"ep":  "episode",
	"ch":  "chapter",
}

// installment words are followed by a number that may be spelled out.
var installment = map[string]bool{"part": true, "volume": true, "chapter": true, "episode": true}

var numberWords = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9",
}

// Clean normalizes a title for cache keys and comparison. The result is
// lowercase ASCII-folded words separated by single spaces; Clean(Clean(s))
// equals Clean(s).
func Clean(title string) string {
	s := foldAccents(strings.ToLower(title))
	s = yearSuffix.ReplaceAllString(s, "")
	s = punctuation.Replace(s)

	var words []string
	// Each subtitle drops its own leading article ("Léon: The Professional").
	for _, segment := range strings.Split(s, ":") {
		seg := strings.FieldsFunc(segment, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(seg) > 1 && articles[seg[0]] {
			seg = seg[1:]
		}
		words = append(words, seg...)
	}

	for i, w := range words {
		if full, ok := abbreviations[w]; ok {
			w = full
		}
		if i > 0 {
			if n, ok := sequelNumerals[w]; ok {
				w = n
			} else if n, ok := numberWords[w]; ok && installment[words[i-1]] {
				w = n
			}
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Overrides maps catalog titles to the titles a ratings provider knows them by.
// Lookups are exact on the whitespace-trimmed title.
type Overrides map[string]string

// Apply returns the canonical title for t, or t itself when no override exists.
func (o Overrides) Apply(t string) string {
	t = strings.TrimSpace(t)
	if canonical, ok := o[t]; ok {
		return canonical
	}
	return t
}
