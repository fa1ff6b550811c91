package tracker

import (
	"context"
	"database/sql"
	"strings"

	"gcctracker-backend/lib/scrapers/websearch"
	"gcctracker-backend/services/tracker/db"

	"go.opentelemetry.io/otel/codes"
)

// NewsSearcher is the slice of the search client the development feed
// needs. Kept narrow so tests can fake it.
type NewsSearcher interface {
	Search(ctx context.Context, query string) ([]websearch.Result, error)
}

// Service glues the resolver to durable storage and the HTTP surface.
// Resolutions are upserted into sqlite so the tracker keeps a browsable
// dataset across restarts; the in-memory cache still owns freshness.
type Service struct {
	resolver *Resolver
	db       *sql.DB
	qry      *db.Queries
	news     NewsSearcher
	now      Clock
}

type ServiceOptions struct {
	Resolver *Resolver
	DB       *sql.DB
	// News is optional; without it no developments are collected.
	News  NewsSearcher
	Clock Clock
}

func NewService(opts ServiceOptions) Service {
	if opts.Clock == nil {
		opts.Clock = opts.Resolver.now
	}
	return Service{
		resolver: opts.Resolver,
		db:       opts.DB,
		qry:      db.New(opts.DB),
		news:     opts.News,
		now:      opts.Clock,
	}
}

// Resolve runs a full resolution and persists whatever it produced.
func (s Service) Resolve(ctx context.Context, raw string) (*Company, []Executive, error) {
	ctx, span := tracer.Start(ctx, "Service.Resolve")
	defer span.End()

	company, executives, err := s.resolver.ResolveAll(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}
	if company == nil {
		return nil, executives, nil
	}

	if err := s.persist(ctx, company, executives); err != nil {
		// storage trouble should not hide a successful resolution
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return company, executives, nil
}

func (s Service) persist(ctx context.Context, company *Company, executives []Executive) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	now := s.now().Unix()
	companyID, err := txqry.UpsertCompany(ctx, db.UpsertCompanyParams{
		Name:        company.Name,
		Website:     company.Website,
		LinkedinURL: company.LinkedinURL,
		Description: company.Description,
		Locations:   strings.Join(company.Locations, ", "),
		Sources:     joinSources(company.Sources),
		Now:         now,
	})
	if err != nil {
		return err
	}

	err = txqry.DeleteStakeholdersByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	for _, e := range executives {
		err := txqry.CreateStakeholder(ctx, db.CreateStakeholderParams{
			CompanyID:    companyID,
			Name:         e.Name,
			Role:         e.Title,
			RoleCategory: string(e.Role),
			LinkedinURL:  e.LinkedinURL,
			Now:          now,
		})
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.collectDevelopments(ctx, companyID, company.Name)
	return nil
}

// collectDevelopments pulls recent headlines for the company into the
// developments table. Failures are absorbed like any other source
// outage.
func (s Service) collectDevelopments(ctx context.Context, companyID int64, name string) {
	if s.news == nil {
		return
	}

	results, err := s.news.Search(ctx, name+" GCC India news")
	if err != nil {
		recordSourceFailure(ctx, SourceID("news"), name, err)
		return
	}

	now := s.now().Unix()
	for _, r := range results {
		if r.Title == "" {
			continue
		}
		err := s.qry.CreateDevelopment(ctx, db.CreateDevelopmentParams{
			CompanyID: companyID,
			Title:     r.Title,
			Content:   r.Snippet,
			SourceURL: r.Href,
			Now:       now,
		})
		if err != nil {
			recordSourceFailure(ctx, SourceID("news"), name, err)
			return
		}
	}
}

func joinSources(sources []SourceID) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
