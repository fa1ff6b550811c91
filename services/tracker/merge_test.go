package tracker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMergeNoCandidates(t *testing.T) {
	company, ok := MergeCompanyCandidates("Acme", nil)
	require.False(t, ok)
	require.Nil(t, company)
}

func TestMergeNoAnchor(t *testing.T) {
	// a candidate with only a description cannot anchor a record
	company, ok := MergeCompanyCandidates("Acme", []CompanyCandidate{
		{Source: SourceWebsearch, Description: "A very long description of the Acme company and what it does."},
	})
	require.False(t, ok)
	require.Nil(t, company)
}

func TestMergeFirstWriterWins(t *testing.T) {
	company, ok := MergeCompanyCandidates("Acme", []CompanyCandidate{
		{Source: SourceLinkedin, Website: "https://a.com", Locations: []string{"Bangalore"}},
		{Source: SourceWebsearch, Website: "https://b.com", LinkedinURL: "https://linkedin.com/company/acme", Locations: []string{"Hyderabad", "bangalore"}},
	})
	require.True(t, ok)
	require.Equal(t, "Acme", company.Name)
	require.Equal(t, "https://a.com", company.Website)
	require.Equal(t, "https://linkedin.com/company/acme", company.LinkedinURL)
	require.Empty(t, cmp.Diff([]string{"Bangalore", "Hyderabad"}, company.Locations))
	require.Empty(t, cmp.Diff([]SourceID{SourceLinkedin, SourceWebsearch}, company.Sources))
}

func TestMergeDescriptionGate(t *testing.T) {
	long := "Acme builds enterprise widgets for global capability centers worldwide."
	require.GreaterOrEqual(t, len(long), minDescriptionLen)

	company, ok := MergeCompanyCandidates("Acme", []CompanyCandidate{
		{Source: SourceLinkedin, Website: "https://a.com", Description: "Too short."},
		{Source: SourceWebsearch, Description: long},
	})
	require.True(t, ok)
	require.Equal(t, long, company.Description, "short snippets must not consume the description slot")
}

func TestMergeSourceDedup(t *testing.T) {
	company, ok := MergeCompanyCandidates("Acme", []CompanyCandidate{
		{Source: SourceWebsearch, Website: "https://a.com"},
		{Source: SourceWebsearch, LinkedinURL: "https://linkedin.com/company/acme"},
	})
	require.True(t, ok)
	require.Empty(t, cmp.Diff([]SourceID{SourceWebsearch}, company.Sources))
}
