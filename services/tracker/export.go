package tracker

import (
	"log/slog"
	"net/http"
	"time"

	"gcctracker-backend/services/tracker/db"

	"github.com/xuri/excelize/v2"
)

func (s Service) handleExportCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.qry.ListCompanies(r.Context(), db.ListCompaniesParams{})
	if err != nil {
		slog.ErrorContext(r.Context(), "export companies", "err", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Companies"
	file.SetSheetName(file.GetSheetName(0), sheet)

	headers := []interface{}{
		"Name", "Website", "LinkedIn", "Description",
		"Locations", "Sources", "Updated",
	}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		slog.ErrorContext(r.Context(), "export companies", "err", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	for i, c := range companies {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			c.Name,
			c.Website,
			c.LinkedinURL,
			c.Description,
			c.Locations,
			c.Sources,
			time.Unix(c.UpdatedAt, 0).UTC().Format(time.RFC3339),
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			slog.ErrorContext(r.Context(), "export companies", "err", err)
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
	}

	w.Header().Set(
		"Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	)
	w.Header().Set("Content-Disposition", `attachment; filename="companies.xlsx"`)
	if err := file.Write(w); err != nil {
		slog.ErrorContext(r.Context(), "write xlsx", "err", err)
	}
}
