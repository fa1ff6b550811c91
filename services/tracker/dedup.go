package tracker

import (
	"strings"

	"gcctracker-backend/lib/textutil"
)

// nameMatchThreshold is the 0-100 similarity above which two parsed
// names are considered the same person. Tuned high enough that
// boundary cases like "John Smith" vs "John Smyth" stay distinct.
const nameMatchThreshold = 90

// DeduplicateExecutives parses raw person hits into executive records
// and collapses duplicates discovered under different role searches.
// The first-seen record wins and output order is first-seen order.
//
// Two candidates are the same person when their LinkedIn URLs match
// exactly, or their normalized names score >= nameMatchThreshold.
// Candidates whose display text has no "name - title" separator are
// discarded, there is no reliable title to classify.
func DeduplicateExecutives(company string, candidates []PersonCandidate) []Executive {
	var kept []Executive

	for _, c := range candidates {
		name, title, ok := splitDisplayText(c.DisplayText)
		if !ok {
			continue
		}
		if isDuplicate(kept, name, c.LinkedinURL) {
			continue
		}
		kept = append(kept, Executive{
			Name:        name,
			Title:       title,
			Role:        ClassifyRole(title),
			LinkedinURL: c.LinkedinURL,
			Company:     company,
		})
	}

	return kept
}

func isDuplicate(kept []Executive, name, linkedinURL string) bool {
	for _, e := range kept {
		if linkedinURL != "" && e.LinkedinURL == linkedinURL {
			return true
		}
		if textutil.Similarity(e.Name, name) >= nameMatchThreshold {
			return true
		}
	}
	return false
}

func splitDisplayText(display string) (name, title string, ok bool) {
	name, title, found := strings.Cut(display, "-")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	title = strings.TrimSpace(title)
	if name == "" || title == "" {
		return "", "", false
	}
	return name, title, true
}
