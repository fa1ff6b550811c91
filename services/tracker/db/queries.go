package db

import (
	"context"
	"database/sql"
	"strings"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Company struct {
	ID          int64
	Name        string
	Website     string
	LinkedinURL string
	Description string
	Locations   string
	Sources     string
	CreatedAt   int64
	UpdatedAt   int64
}

type UpsertCompanyParams struct {
	Name        string
	Website     string
	LinkedinURL string
	Description string
	Locations   string
	Sources     string
	Now         int64
}

func (q *Queries) UpsertCompany(ctx context.Context, arg UpsertCompanyParams) (int64, error) {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO companies (name, website, linkedin_url, description, locations, sources, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			website = excluded.website,
			linkedin_url = excluded.linkedin_url,
			description = excluded.description,
			locations = excluded.locations,
			sources = excluded.sources,
			updated_at = excluded.updated_at
	`, arg.Name, arg.Website, arg.LinkedinURL, arg.Description, arg.Locations, arg.Sources, arg.Now, arg.Now)
	if err != nil {
		return 0, err
	}

	var id int64
	err = q.db.QueryRowContext(ctx, `SELECT id FROM companies WHERE name = ?`, arg.Name).Scan(&id)
	return id, err
}

func (q *Queries) GetCompanyByName(ctx context.Context, name string) (Company, error) {
	var c Company
	err := q.db.QueryRowContext(ctx, `
		SELECT id, name, website, linkedin_url, description, locations, sources, created_at, updated_at
		FROM companies WHERE name = ?
	`, name).Scan(
		&c.ID, &c.Name, &c.Website, &c.LinkedinURL, &c.Description,
		&c.Locations, &c.Sources, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

type ListCompaniesParams struct {
	// Query filters by substring of the company name, empty matches all.
	Query string
	// Location filters by substring of the locations column.
	Location string
}

func (q *Queries) ListCompanies(ctx context.Context, arg ListCompaniesParams) ([]Company, error) {
	query := `
		SELECT id, name, website, linkedin_url, description, locations, sources, created_at, updated_at
		FROM companies
	`
	var conditions []string
	var args []interface{}
	if arg.Query != "" {
		conditions = append(conditions, "name LIKE ? COLLATE NOCASE")
		args = append(args, "%"+arg.Query+"%")
	}
	if arg.Location != "" {
		conditions = append(conditions, "locations LIKE ? COLLATE NOCASE")
		args = append(args, "%"+arg.Location+"%")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var c Company
		err := rows.Scan(
			&c.ID, &c.Name, &c.Website, &c.LinkedinURL, &c.Description,
			&c.Locations, &c.Sources, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type Stakeholder struct {
	ID           int64
	CompanyID    int64
	CompanyName  string
	Name         string
	Role         string
	RoleCategory string
	LinkedinURL  string
	CreatedAt    int64
	UpdatedAt    int64
}

type CreateStakeholderParams struct {
	CompanyID    int64
	Name         string
	Role         string
	RoleCategory string
	LinkedinURL  string
	Now          int64
}

func (q *Queries) CreateStakeholder(ctx context.Context, arg CreateStakeholderParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO stakeholders (company_id, name, role, role_category, linkedin_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, arg.CompanyID, arg.Name, arg.Role, arg.RoleCategory, arg.LinkedinURL, arg.Now, arg.Now)
	return err
}

func (q *Queries) DeleteStakeholdersByCompany(ctx context.Context, companyID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM stakeholders WHERE company_id = ?`, companyID)
	return err
}

type ListStakeholdersParams struct {
	// CompanyID of 0 lists stakeholders across all companies.
	CompanyID int64
	// Query filters by substring of the stakeholder name or role.
	Query string
}

func (q *Queries) ListStakeholders(ctx context.Context, arg ListStakeholdersParams) ([]Stakeholder, error) {
	query := `
		SELECT s.id, s.company_id, c.name, s.name, s.role, s.role_category, s.linkedin_url, s.created_at, s.updated_at
		FROM stakeholders s
		JOIN companies c ON s.company_id = c.id
	`
	var conditions []string
	var args []interface{}
	if arg.CompanyID != 0 {
		conditions = append(conditions, "s.company_id = ?")
		args = append(args, arg.CompanyID)
	}
	if arg.Query != "" {
		conditions = append(conditions, "(s.name LIKE ? COLLATE NOCASE OR s.role LIKE ? COLLATE NOCASE)")
		args = append(args, "%"+arg.Query+"%", "%"+arg.Query+"%")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.id"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Stakeholder
	for rows.Next() {
		var s Stakeholder
		err := rows.Scan(
			&s.ID, &s.CompanyID, &s.CompanyName, &s.Name, &s.Role,
			&s.RoleCategory, &s.LinkedinURL, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type Development struct {
	ID            int64
	CompanyID     int64
	CompanyName   string
	Title         string
	Content       string
	SourceURL     string
	PublishedDate int64
	CreatedAt     int64
}

type CreateDevelopmentParams struct {
	CompanyID     int64
	Title         string
	Content       string
	SourceURL     string
	PublishedDate int64
	Now           int64
}

func (q *Queries) CreateDevelopment(ctx context.Context, arg CreateDevelopmentParams) error {
	// the same headline reappears across search refreshes
	var count int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM developments WHERE company_id = ? AND title = ?
	`, arg.CompanyID, arg.Title).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO developments (company_id, title, content, source_url, published_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, arg.CompanyID, arg.Title, arg.Content, arg.SourceURL, arg.PublishedDate, arg.Now)
	return err
}

func (q *Queries) ListDevelopments(ctx context.Context, companyID int64) ([]Development, error) {
	query := `
		SELECT d.id, d.company_id, c.name, d.title, d.content, d.source_url, d.published_date, d.created_at
		FROM developments d
		JOIN companies c ON d.company_id = c.id
	`
	var args []interface{}
	if companyID != 0 {
		query += " WHERE d.company_id = ?"
		args = append(args, companyID)
	}
	query += " ORDER BY d.published_date DESC, d.id DESC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Development
	for rows.Next() {
		var d Development
		err := rows.Scan(
			&d.ID, &d.CompanyID, &d.CompanyName, &d.Title, &d.Content,
			&d.SourceURL, &d.PublishedDate, &d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
