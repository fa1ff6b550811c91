package tracker

import (
	"context"
	"strings"

	"gcctracker-backend/lib/scrapers/linkedin"
	"gcctracker-backend/lib/scrapers/websearch"
)

const (
	SourceLinkedin  SourceID = "linkedin"
	SourceWebsearch SourceID = "websearch"
)

// LinkedinSource resolves company pages directly. It ranks first in
// source priority: a direct profile lookup beats generic search hits.
type LinkedinSource struct {
	client *linkedin.Client
}

func NewLinkedinSource(client *linkedin.Client) LinkedinSource {
	return LinkedinSource{client: client}
}

func (s LinkedinSource) ID() SourceID {
	return SourceLinkedin
}

func (s LinkedinSource) QueryCompany(ctx context.Context, term string) ([]CompanyCandidate, error) {
	profile, err := s.client.CompanyProfile(ctx, linkedin.Slugify(term))
	if err != nil {
		return nil, err
	}
	return []CompanyCandidate{{
		Website:     profile.Website,
		LinkedinURL: profile.Url,
		Description: profile.Description,
		Locations:   profile.Locations,
	}}, nil
}

// Public people pages are not reachable without an authenticated
// session; person hits come from the websearch source instead.
func (s LinkedinSource) QueryPeople(ctx context.Context, term string) ([]PersonCandidate, error) {
	return nil, nil
}

// WebsearchSource turns organic search results into candidates. For
// companies it looks for a linkedin company page and a plausible
// website among the hits; for people it scopes the query to linkedin
// profile pages and reads "Name - Title" display texts.
type WebsearchSource struct {
	client *websearch.Client
}

func NewWebsearchSource(client *websearch.Client) WebsearchSource {
	return WebsearchSource{client: client}
}

func (s WebsearchSource) ID() SourceID {
	return SourceWebsearch
}

func (s WebsearchSource) QueryCompany(ctx context.Context, term string) ([]CompanyCandidate, error) {
	results, err := s.client.Search(ctx, term+" company")
	if err != nil {
		return nil, err
	}

	var candidates []CompanyCandidate
	for _, r := range results {
		candidate := CompanyCandidate{Description: r.Snippet}
		if isLinkedinCompanyUrl(r.Href) {
			candidate.LinkedinURL = r.Href
		} else if isPlausibleWebsite(r.Href) {
			candidate.Website = r.Href
		} else {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func (s WebsearchSource) QueryPeople(ctx context.Context, term string) ([]PersonCandidate, error) {
	results, err := s.client.Search(ctx, "site:linkedin.com/in "+term)
	if err != nil {
		return nil, err
	}

	var candidates []PersonCandidate
	for _, r := range results {
		if !strings.Contains(r.Href, "linkedin.com/in/") {
			continue
		}
		candidates = append(candidates, PersonCandidate{
			DisplayText: stripTitleSuffix(r.Title),
			LinkedinURL: r.Href,
		})
	}
	return candidates, nil
}

func isLinkedinCompanyUrl(href string) bool {
	return strings.Contains(href, "linkedin.com/company/")
}

// directories and aggregators that should never be taken for the
// company's own website
var excludedHosts = []string{
	"linkedin.com", "facebook.com", "twitter.com", "x.com",
	"wikipedia.org", "glassdoor.", "crunchbase.com", "zaubacorp.com",
	"youtube.com", "instagram.com",
}

func isPlausibleWebsite(href string) bool {
	if !strings.HasPrefix(href, "http") {
		return false
	}
	for _, host := range excludedHosts {
		if strings.Contains(href, host) {
			return false
		}
	}
	return true
}

// search titles usually end with "| LinkedIn" or similar branding
func stripTitleSuffix(title string) string {
	if idx := strings.Index(title, "|"); idx >= 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}
