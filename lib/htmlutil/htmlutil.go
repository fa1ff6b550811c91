package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText flattens a selection's text content into single-spaced
// printable text, the form search result titles and snippets come in.
func CleanText(sel *goquery.Selection) string {
	text := sel.Text()
	text = removeNonPrintable(text)
	text = strings.Trim(text, " \t\n")
	text = innerWhitespace.ReplaceAllString(text, " ")
	return text
}

type Anchor struct {
	Name string
	Href string
}

// GetAnchors extracts (link text, href) pairs from every node of the
// selection, skipping anchors without an href.
func GetAnchors(sel *goquery.Selection) []Anchor {
	var anchors []Anchor
	sel.Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		anchors = append(anchors, Anchor{
			Name: CleanText(s),
			Href: href,
		})
	})
	return anchors
}
