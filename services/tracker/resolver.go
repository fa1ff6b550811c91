package tracker

import (
	"context"
	"log/slog"
	"time"

	"gcctracker-backend/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var tracer = otel.Tracer("services/tracker")
var resolverMeter = otel.Meter("services/tracker")
var sourceFailureCounter, _ = resolverMeter.Int64Counter("tracker.source_failures")

// Source is one external provider of raw candidate records. Queries
// are expected to be unreliable: implementations return errors freely
// and the resolver absorbs them as empty results.
type Source interface {
	ID() SourceID
	QueryCompany(ctx context.Context, term string) ([]CompanyCandidate, error)
	QueryPeople(ctx context.Context, term string) ([]PersonCandidate, error)
}

// DefaultRoleTerms are the role searches run per resolution to surface
// executives.
func DefaultRoleTerms() []string {
	return []string{
		"CEO",
		"Managing Director",
		"Country Head",
		"CTO",
		"VP Engineering",
		"Head of Product",
		"COO",
		"Director",
	}
}

type ResolverOptions struct {
	// Sources in fixed priority order; candidates are merged in this
	// order regardless of which network call returns first.
	Sources []Source
	Cache   *ResultCache
	// TTL of a cached resolution, defaults to an hour.
	TTL time.Duration
	// SourceTimeout bounds each individual source call, defaults to 8s.
	SourceTimeout time.Duration
	// MaxConcurrent bounds the query fan-out, defaults to 4.
	MaxConcurrent int
	RoleTerms     []string
	Normalizer    Normalizer
	Clock         Clock
}

type Resolver struct {
	sources       []Source
	cache         *ResultCache
	ttl           time.Duration
	sourceTimeout time.Duration
	maxConcurrent int
	roleTerms     []string
	normalizer    Normalizer
	now           Clock
	group         singleflight.Group
}

func NewResolver(opts ResolverOptions) *Resolver {
	if opts.TTL <= 0 {
		opts.TTL = time.Hour
	}
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = time.Second * 8
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if opts.RoleTerms == nil {
		opts.RoleTerms = DefaultRoleTerms()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Cache == nil {
		opts.Cache = NewResultCache(opts.Clock)
	}
	return &Resolver{
		sources:       opts.Sources,
		cache:         opts.Cache,
		ttl:           opts.TTL,
		sourceTimeout: opts.SourceTimeout,
		maxConcurrent: opts.MaxConcurrent,
		roleTerms:     opts.RoleTerms,
		normalizer:    opts.Normalizer,
		now:           opts.Clock,
	}
}

func (r *Resolver) ResolveCompany(ctx context.Context, raw string) (*Company, error) {
	company, _, err := r.ResolveAll(ctx, raw)
	return company, err
}

func (r *Resolver) ResolveExecutives(ctx context.Context, raw string) ([]Executive, error) {
	_, executives, err := r.ResolveAll(ctx, raw)
	return executives, err
}

// ResolveAll is the cache-aware entry point. Only an empty query is an
// error; sources yielding no data is a normal (nil, empty) outcome.
func (r *Resolver) ResolveAll(ctx context.Context, raw string) (*Company, []Executive, error) {
	ctx, span := tracer.Start(ctx, "ResolveAll")
	defer span.End()

	norm, err := r.normalizer.Normalize(raw)
	if err != nil {
		return nil, nil, err
	}
	key := textutil.NormalizeName(norm.Base)
	span.SetAttributes(attribute.String("key", key))

	if cached, hit := r.cache.Get(key); hit {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached.Company, cached.Executives, nil
	}

	// concurrent resolutions for the same key are coalesced
	out, err, _ := r.group.Do(key, func() (interface{}, error) {
		if cached, hit := r.cache.Get(key); hit {
			return cached, nil
		}
		return r.resolve(ctx, key, norm), nil
	})
	if err != nil {
		return nil, nil, err
	}

	res := out.(Resolution)
	return res.Company, res.Executives, nil
}

// resolve performs one full aggregation pass and reconciles the result
// with whatever the cache already holds for this key.
func (r *Resolver) resolve(ctx context.Context, key string, norm Normalized) Resolution {
	ctx, span := tracer.Start(ctx, "resolve")
	defer span.End()

	companyCandidates, personCandidates := r.queryAll(ctx, norm)

	company, ok := MergeCompanyCandidates(norm.Base, companyCandidates)
	if ok {
		company.LastResolvedAt = r.now()
	}
	executives := DeduplicateExecutives(norm.Base, personCandidates)

	fresh := Resolution{
		Company:    company,
		Executives: executives,
		ExpiresAt:  r.now().Add(r.ttl),
	}

	// never regress: a degraded re-resolution (transient source outage,
	// scraping block) must not evict previously good data
	if prev, present := r.cache.Peek(key); present {
		if resolutionScore(fresh) < resolutionScore(prev) {
			slog.WarnContext(
				ctx,
				"resolution regressed, keeping previous result",
				"key", key,
				"prev_executives", len(prev.Executives),
				"new_executives", len(executives),
			)
			span.SetAttributes(attribute.Bool("regressed", true))
			return prev
		}
	}

	r.cache.Put(key, fresh)
	return fresh
}

// queryAll fans queries out across a bounded worker pool. Results are
// written into slots indexed by (source priority, term index) so the
// merge input order stays reproducible no matter which call finishes
// first: concurrency affects latency only, never the output.
func (r *Resolver) queryAll(ctx context.Context, norm Normalized) ([]CompanyCandidate, []PersonCandidate) {
	companySlots := make([][]CompanyCandidate, len(r.sources)*len(norm.Variants))
	personSlots := make([][]PersonCandidate, len(r.sources)*len(r.roleTerms))

	g := errgroup.Group{}
	g.SetLimit(r.maxConcurrent)

	for si, source := range r.sources {
		source := source

		for vi, variant := range norm.Variants {
			slot := si*len(norm.Variants) + vi
			variant := variant
			g.Go(func() error {
				candidates, err := withTimeoutCall(ctx, r.sourceTimeout, func(ctx context.Context) ([]CompanyCandidate, error) {
					return source.QueryCompany(ctx, variant)
				})
				if err != nil {
					recordSourceFailure(ctx, source.ID(), variant, err)
					return nil
				}
				for i := range candidates {
					candidates[i].Source = source.ID()
					candidates[i].QueriedVariant = variant
				}
				companySlots[slot] = candidates
				return nil
			})
		}

		for ti, term := range r.roleTerms {
			slot := si*len(r.roleTerms) + ti
			query := norm.Base + " " + term
			term := term
			g.Go(func() error {
				candidates, err := withTimeoutCall(ctx, r.sourceTimeout, func(ctx context.Context) ([]PersonCandidate, error) {
					return source.QueryPeople(ctx, query)
				})
				if err != nil {
					recordSourceFailure(ctx, source.ID(), query, err)
					return nil
				}
				for i := range candidates {
					if candidates[i].MatchedRole == "" {
						candidates[i].MatchedRole = term
					}
				}
				personSlots[slot] = candidates
				return nil
			})
		}
	}
	g.Wait()

	var companyCandidates []CompanyCandidate
	for _, slot := range companySlots {
		companyCandidates = append(companyCandidates, slot...)
	}
	var personCandidates []PersonCandidate
	for _, slot := range personSlots {
		personCandidates = append(personCandidates, slot...)
	}
	return companyCandidates, personCandidates
}

func recordSourceFailure(ctx context.Context, source SourceID, term string, err error) {
	slog.WarnContext(
		ctx,
		"source unavailable",
		"source", source,
		"term", term,
		"err", err,
	)
	sourceFailureCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", string(source)),
	))
}

func withTimeoutCall[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

// resolutionScore orders resolutions by how much data they carry, used
// by the never-regress comparison.
func resolutionScore(res Resolution) int {
	score := len(res.Executives)
	if res.Company == nil {
		return score
	}
	for _, field := range []string{
		res.Company.Website,
		res.Company.LinkedinURL,
		res.Company.Description,
	} {
		if field != "" {
			score++
		}
	}
	score += len(res.Company.Locations)
	return score
}
