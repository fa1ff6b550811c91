package tracker

import (
	"errors"
	"strings"

	"gcctracker-backend/lib/textutil"
)

var ErrEmptyQuery = errors.New("company query is empty")

// aliasMatchThreshold is the 0-100 similarity needed for a raw query to
// fuzzily match one of an alias entry's known spellings.
const aliasMatchThreshold = 80

// Alias maps informal names and abbreviations to a canonical company
// name. Matching is exact or fuzzy against any of the known variants.
type Alias struct {
	Canonical string
	Variants  []string
}

func DefaultAliases() []Alias {
	return []Alias{
		{Canonical: "Microsoft", Variants: []string{"msft", "microsoft corp", "microsoft corporation"}},
		{Canonical: "Google", Variants: []string{"alphabet", "google llc", "google inc"}},
		{Canonical: "Amazon", Variants: []string{"amzn", "amazon.com", "amazon web services", "aws"}},
		{Canonical: "Tata Consultancy Services", Variants: []string{"tcs", "tata consultancy"}},
		{Canonical: "International Business Machines", Variants: []string{"ibm", "ibm corp"}},
	}
}

type Normalized struct {
	Base     string
	Variants []string
}

type Normalizer struct {
	aliases []Alias
}

func NewNormalizer(aliases []Alias) Normalizer {
	return Normalizer{aliases: aliases}
}

// Normalize canonicalizes a raw company query into a base name and a
// stable, deduplicated list of search variants. It is pure and
// idempotent on the base name.
func (n Normalizer) Normalize(raw string) (Normalized, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Normalized{}, ErrEmptyQuery
	}

	base := textutil.TitleCase(trimmed)
	if canonical, ok := n.lookupAlias(trimmed); ok {
		base = canonical
	}

	variants := []string{
		base,
		base + " India",
		base + " GCC",
		base + " Development Center",
		base + " R&D",
	}
	if initialism := textutil.Initialism(base); initialism != "" {
		variants = append(variants, initialism)
	}

	return Normalized{Base: base, Variants: dedupVariants(variants)}, nil
}

func (n Normalizer) lookupAlias(raw string) (string, bool) {
	normalized := textutil.NormalizeName(raw)
	for _, alias := range n.aliases {
		if textutil.NormalizeName(alias.Canonical) == normalized {
			return alias.Canonical, true
		}
		for _, variant := range alias.Variants {
			if textutil.NormalizeName(variant) == normalized {
				return alias.Canonical, true
			}
			if textutil.Similarity(variant, normalized) >= aliasMatchThreshold {
				return alias.Canonical, true
			}
		}
	}
	return "", false
}

func dedupVariants(variants []string) []string {
	seen := make(map[string]struct{}, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		key := textutil.NormalizeName(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
