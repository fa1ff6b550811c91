package tracker

import "time"

type SourceID string

// CompanyCandidate is one source's partially populated view of a
// company, produced by querying a single search variant.
type CompanyCandidate struct {
	Source         SourceID
	QueriedVariant string
	Website        string
	LinkedinURL    string
	Description    string
	Locations      []string
}

// Company is the canonical merged record for one resolved query. It is
// built once by the merge pass and never mutated afterward.
type Company struct {
	Name           string
	Website        string
	LinkedinURL    string
	Description    string
	Locations      []string
	Sources        []SourceID
	LastResolvedAt time.Time
}

// PersonCandidate is one raw person hit, one per
// (role search term x source result) pairing.
type PersonCandidate struct {
	DisplayText string
	LinkedinURL string
	MatchedRole string
}

type RoleCategory string

const (
	RoleLeadership RoleCategory = "leadership"
	RoleTechnology RoleCategory = "technology"
	RoleProduct    RoleCategory = "product"
	RoleOperations RoleCategory = "operations"
	RoleManagement RoleCategory = "management"
	RoleOther      RoleCategory = "other"
)

type Executive struct {
	Name        string
	Title       string
	Role        RoleCategory
	LinkedinURL string
	Company     string
}

// Resolution is the cached output of one full resolution pass.
type Resolution struct {
	Company    *Company
	Executives []Executive
	ExpiresAt  time.Time
}
