package tracker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// mockSource serves canned candidates and records how often it was
// queried.
type mockSource struct {
	id        SourceID
	mu        sync.Mutex
	companies map[string][]CompanyCandidate
	people    map[string][]PersonCandidate
	err       error
	calls     atomic.Int64
}

func (m *mockSource) ID() SourceID { return m.id }

func (m *mockSource) QueryCompany(ctx context.Context, term string) ([]CompanyCandidate, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.companies[term], nil
}

func (m *mockSource) QueryPeople(ctx context.Context, term string) ([]PersonCandidate, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.people[term], nil
}

func newTestResolver(t *testing.T, clock Clock, sources ...Source) *Resolver {
	t.Helper()
	return NewResolver(ResolverOptions{
		Sources:    sources,
		Normalizer: NewNormalizer(DefaultAliases()),
		RoleTerms:  []string{"CEO", "CTO"},
		Clock:      clock,
		TTL:        time.Hour,
	})
}

func TestResolveEndToEnd(t *testing.T) {
	linkedin := &mockSource{
		id: SourceLinkedin,
		companies: map[string][]CompanyCandidate{
			"Microsoft": {{
				Website:     "https://microsoft.com",
				LinkedinURL: "https://linkedin.com/company/microsoft",
				Description: "Microsoft enables digital transformation for the era of the intelligent cloud.",
				Locations:   []string{"Redmond", "Bangalore"},
			}},
		},
	}
	websearch := &mockSource{
		id: SourceWebsearch,
		companies: map[string][]CompanyCandidate{
			"Microsoft India": {{
				Website:   "https://news.example/microsoft",
				Locations: []string{"Hyderabad", "bangalore"},
			}},
		},
		people: map[string][]PersonCandidate{
			"Microsoft CEO": {
				{DisplayText: "Satya Nadella - Chief Executive Officer", LinkedinURL: "https://linkedin.com/in/satyanadella"},
			},
			"Microsoft CTO": {
				{DisplayText: "Satya Nadella - CEO of Microsoft", LinkedinURL: "https://linkedin.com/in/satyanadella"},
				{DisplayText: "Kevin Scott - Chief Technology Officer"},
			},
		},
	}

	r := newTestResolver(t, nil, linkedin, websearch)

	company, executives, err := r.ResolveAll(context.Background(), "msft")
	require.NoError(t, err)
	require.NotNil(t, company)

	// linkedin outranks websearch for scalar fields
	require.Equal(t, "Microsoft", company.Name)
	require.Equal(t, "https://microsoft.com", company.Website)
	require.Empty(t, cmp.Diff([]string{"Redmond", "Bangalore", "Hyderabad"}, company.Locations))
	require.Empty(t, cmp.Diff([]SourceID{SourceLinkedin, SourceWebsearch}, company.Sources))
	require.False(t, company.LastResolvedAt.IsZero())

	require.Len(t, executives, 2)
	require.Equal(t, "Satya Nadella", executives[0].Name)
	require.Equal(t, RoleLeadership, executives[0].Role)
	require.Equal(t, "Kevin Scott", executives[1].Name)
	require.Equal(t, RoleTechnology, executives[1].Role)
}

func TestResolveEmptyQuery(t *testing.T) {
	r := newTestResolver(t, nil)
	_, _, err := r.ResolveAll(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestResolveNothingFound(t *testing.T) {
	r := newTestResolver(t, nil, &mockSource{id: SourceWebsearch})

	company, executives, err := r.ResolveAll(context.Background(), "Acme")
	require.NoError(t, err, "empty sources are not an error")
	require.Nil(t, company)
	require.Empty(t, executives)
}

func TestResolveCacheHit(t *testing.T) {
	source := &mockSource{
		id: SourceLinkedin,
		companies: map[string][]CompanyCandidate{
			"Acme": {{Website: "https://acme.com"}},
		},
	}
	r := newTestResolver(t, nil, source)

	_, _, err := r.ResolveAll(context.Background(), "Acme")
	require.NoError(t, err)
	callsAfterFirst := source.calls.Load()

	// differently cased queries normalize to the same cache key
	_, _, err = r.ResolveAll(context.Background(), "  ACME ")
	require.NoError(t, err)
	require.Equal(t, callsAfterFirst, source.calls.Load(), "second resolution must be served from cache")
}

func TestResolveTTLExpiry(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := &mockSource{
		id: SourceLinkedin,
		companies: map[string][]CompanyCandidate{
			"Acme": {{Website: "https://acme.com"}},
		},
	}
	r := newTestResolver(t, func() time.Time { return current }, source)

	_, _, err := r.ResolveAll(context.Background(), "Acme")
	require.NoError(t, err)
	callsAfterFirst := source.calls.Load()

	current = current.Add(time.Hour + time.Minute)
	_, _, err = r.ResolveAll(context.Background(), "Acme")
	require.NoError(t, err)
	require.Greater(t, source.calls.Load(), callsAfterFirst, "expired entry must trigger a re-resolution")
}

func TestResolveNeverRegresses(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := &mockSource{
		id: SourceLinkedin,
		companies: map[string][]CompanyCandidate{
			"Acme": {{
				Website:   "https://acme.com",
				Locations: []string{"Pune"},
			}},
		},
	}
	r := newTestResolver(t, func() time.Time { return current }, source)

	first, _, err := r.ResolveAll(context.Background(), "Acme")
	require.NoError(t, err)
	require.NotNil(t, first)

	// the source goes dark and the cache entry expires
	source.err = errors.New("blocked by upstream")
	current = current.Add(2 * time.Hour)

	second, _, err := r.ResolveAll(context.Background(), "Acme")
	require.NoError(t, err)
	require.NotNil(t, second, "degraded re-resolution must not evict previous data")
	require.Equal(t, first.Website, second.Website)
	require.Empty(t, cmp.Diff(first.Locations, second.Locations))
}

func TestResolveCoalescesConcurrent(t *testing.T) {
	source := &mockSource{
		id: SourceLinkedin,
		companies: map[string][]CompanyCandidate{
			"Acme": {{Website: "https://acme.com"}},
		},
	}
	r := newTestResolver(t, nil, source)

	var wg sync.WaitGroup
	results := make([]*Company, 8)
	for i := 0; i < len(results); i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			company, _, err := r.ResolveAll(context.Background(), "Acme")
			require.NoError(t, err)
			results[i] = company
		}()
	}
	wg.Wait()

	for _, company := range results {
		require.NotNil(t, company)
		require.Equal(t, "https://acme.com", company.Website)
	}
	// 5 variants + 2 role terms for a single coalesced resolution
	require.LessOrEqual(t, source.calls.Load(), int64(7))
}
