package tracker

import (
	"fmt"
	"regexp"
	"strings"
)

// roleRules are evaluated in order, specific categories before generic
// ones, so "Chief Technology Officer" lands on technology rather than
// leadership. The bare "chief" fallback runs only after every category
// has had a chance to match.
var roleRules = []struct {
	category RoleCategory
	keywords []string
}{
	{RoleLeadership, []string{
		"ceo", "chief executive", "managing director", "country head",
		"founder", "chairman", "president",
	}},
	{RoleTechnology, []string{
		"cto", "chief technology", "engineering head", "head of engineering",
		"engineering director", "director of engineering",
		"vp engineering", "engineering vp", "vp of engineering",
	}},
	{RoleProduct, []string{
		"cpo", "chief product", "product head", "head of product",
		"product director", "director of product",
		"vp product", "product vp", "vp of product",
	}},
	{RoleOperations, []string{
		"coo", "chief operating", "operations head", "head of operations",
		"vp operations", "operations vp", "vp of operations",
	}},
	{RoleManagement, []string{
		"director", "vp", "vice president", "head",
	}},
}

var keywordPatterns = compileKeywordPatterns()

func compileKeywordPatterns() map[string]*regexp.Regexp {
	patterns := map[string]*regexp.Regexp{}
	for _, rule := range roleRules {
		for _, kw := range rule.keywords {
			patterns[kw] = regexp.MustCompile(fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(kw)))
		}
	}
	patterns["chief"] = regexp.MustCompile(`\bchief\b`)
	return patterns
}

// ClassifyRole maps a free-text job title to a fixed category. It
// never fails; titles matching nothing fall through to RoleOther.
func ClassifyRole(title string) RoleCategory {
	// "vice president" would otherwise trip the "president" keyword
	canon := strings.ToLower(title)
	canon = strings.ReplaceAll(canon, "vice president", "vp")

	for _, rule := range roleRules {
		for _, kw := range rule.keywords {
			if keywordPatterns[kw].MatchString(canon) {
				return rule.category
			}
		}
	}
	if keywordPatterns["chief"].MatchString(canon) {
		return RoleLeadership
	}
	return RoleOther
}
