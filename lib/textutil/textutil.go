package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases, trims and collapses inner whitespace to a
// single space. Used as the canonical form for comparing scraped names.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

var titleCaser = cases.Title(language.English)

func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

// Similarity scores two strings on a 0-100 scale using a Levenshtein
// edit-distance ratio over their normalized forms. 100 means identical,
// 0 means nothing in common.
func Similarity(a, b string) int {
	a = NormalizeName(a)
	b = NormalizeName(b)
	if a == b {
		return 100
	}

	longest := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}

	dist := matchr.Levenshtein(a, b)
	if dist >= longest {
		return 0
	}
	return (longest - dist) * 100 / longest
}

// Initialism builds the uppercase first-letter acronym of a multi-word
// name, e.g. "Tata Consultancy Services" -> "TCS". Returns "" for
// single-word input.
func Initialism(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		r, _ := utf8.DecodeRuneInString(f)
		if r == utf8.RuneError {
			continue
		}
		b.WriteString(strings.ToUpper(string(r)))
	}
	return b.String()
}
