package tracker

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gcctracker-backend/services/tracker/db"

	"github.com/go-chi/chi/v5"
)

// Router mounts the HTTP surface the UI talks to.
func (s Service) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/resolve", s.handleResolve)
	r.Get("/companies", s.handleListCompanies)
	r.Get("/companies/{id}/stakeholders", s.handleCompanyStakeholders)
	r.Get("/stakeholders", s.handleListStakeholders)
	r.Get("/developments", s.handleListDevelopments)
	r.Get("/export/companies.xlsx", s.handleExportCompanies)

	return r
}

type resolveRequest struct {
	Name string `json:"name"`
}

type companyResponse struct {
	Name           string    `json:"name"`
	Website        string    `json:"website,omitempty"`
	LinkedinURL    string    `json:"linkedin_url,omitempty"`
	Description    string    `json:"description,omitempty"`
	Locations      []string  `json:"locations,omitempty"`
	Sources        []string  `json:"sources,omitempty"`
	LastResolvedAt time.Time `json:"last_resolved_at"`
}

type executiveResponse struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	RoleCategory string `json:"role_category"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	Company      string `json:"company"`
}

type resolveResponse struct {
	Company    *companyResponse    `json:"company"`
	Executives []executiveResponse `json:"executives"`
}

func (s Service) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, executives, err := s.Resolve(r.Context(), req.Name)
	if errors.Is(err, ErrEmptyQuery) {
		writeError(w, http.StatusBadRequest, "company name is required")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "resolve failed", "err", err)
		writeError(w, http.StatusInternalServerError, "resolution failed")
		return
	}
	if company == nil && len(executives) == 0 {
		writeError(w, http.StatusNotFound, "not found, try refining the search")
		return
	}

	res := resolveResponse{Executives: toExecutiveResponses(executives)}
	if company != nil {
		res.Company = toCompanyResponse(company)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s Service) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.qry.ListCompanies(r.Context(), db.ListCompaniesParams{
		Query:    r.URL.Query().Get("q"),
		Location: r.URL.Query().Get("location"),
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "list companies", "err", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s Service) handleCompanyStakeholders(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	s.writeStakeholders(w, r, db.ListStakeholdersParams{CompanyID: id})
}

func (s Service) handleListStakeholders(w http.ResponseWriter, r *http.Request) {
	s.writeStakeholders(w, r, db.ListStakeholdersParams{
		Query: r.URL.Query().Get("q"),
	})
}

func (s Service) writeStakeholders(w http.ResponseWriter, r *http.Request, params db.ListStakeholdersParams) {
	stakeholders, err := s.qry.ListStakeholders(r.Context(), params)
	if err != nil {
		slog.ErrorContext(r.Context(), "list stakeholders", "err", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, stakeholders)
}

func (s Service) handleListDevelopments(w http.ResponseWriter, r *http.Request) {
	var companyID int64
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid company id")
			return
		}
		companyID = parsed
	}

	developments, err := s.qry.ListDevelopments(r.Context(), companyID)
	if err != nil {
		slog.ErrorContext(r.Context(), "list developments", "err", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, developments)
}

func toCompanyResponse(c *Company) *companyResponse {
	sources := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		sources[i] = string(s)
	}
	return &companyResponse{
		Name:           c.Name,
		Website:        c.Website,
		LinkedinURL:    c.LinkedinURL,
		Description:    c.Description,
		Locations:      c.Locations,
		Sources:        sources,
		LastResolvedAt: c.LastResolvedAt,
	}
}

func toExecutiveResponses(executives []Executive) []executiveResponse {
	out := make([]executiveResponse, len(executives))
	for i, e := range executives {
		out[i] = executiveResponse{
			Name:         e.Name,
			Title:        e.Title,
			RoleCategory: string(e.Role),
			LinkedinURL:  e.LinkedinURL,
			Company:      e.Company,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

