package tracker

import (
	"strings"

	"gcctracker-backend/lib/textutil"
)

// minDescriptionLen filters out search snippets too short to be a
// usable company description.
const minDescriptionLen = 50

// MergeCompanyCandidates folds partial candidates from multiple sources
// into one canonical record. Scalar fields resolve first-writer-wins in
// input order, so the caller must order candidates by source priority.
// Locations accumulate as a union across all candidates.
//
// Returns false when there are no candidates, or when none of them
// carries a website or LinkedIn URL to anchor the record on.
func MergeCompanyCandidates(name string, candidates []CompanyCandidate) (*Company, bool) {
	if !anyAnchored(candidates) {
		return nil, false
	}

	company := &Company{Name: name}
	seenSources := map[SourceID]struct{}{}
	seenLocations := map[string]struct{}{}

	for _, c := range candidates {
		if company.Website == "" && c.Website != "" {
			company.Website = c.Website
		}
		if company.LinkedinURL == "" && c.LinkedinURL != "" {
			company.LinkedinURL = c.LinkedinURL
		}
		if company.Description == "" && len(strings.TrimSpace(c.Description)) >= minDescriptionLen {
			company.Description = strings.TrimSpace(c.Description)
		}

		for _, loc := range c.Locations {
			key := textutil.NormalizeName(loc)
			if key == "" {
				continue
			}
			if _, dup := seenLocations[key]; dup {
				continue
			}
			seenLocations[key] = struct{}{}
			company.Locations = append(company.Locations, loc)
		}

		if _, dup := seenSources[c.Source]; !dup {
			seenSources[c.Source] = struct{}{}
			company.Sources = append(company.Sources, c.Source)
		}
	}

	return company, true
}

func anyAnchored(candidates []CompanyCandidate) bool {
	for _, c := range candidates {
		if c.Website != "" || c.LinkedinURL != "" {
			return true
		}
	}
	return false
}
