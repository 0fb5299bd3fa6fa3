package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"candidate_id", "candidate_name", "candidate_email", "candidate_status",
	"slot_start", "slot_end",
}

// GetExport implements GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	var format *api.ExportFormat
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		requestError(w, "format must be csv or json")
		return
	}
	if format != nil && *format != api.Csv && *format != api.Json {
		requestError(w, "format must be csv or json")
		return
	}

	rows, err := s.export.Export(r.Context(), sess)
	if err != nil {
		s.serviceError(w, r, err, "export not found")
		return
	}

	if format != nil && *format == api.Csv {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONResponse(rows))
}

// buildJSONResponse converts domain rows to the typed JSON response.
func buildJSONResponse(rows []domain.ExportRow) []api.ExportRow {
	out := make([]api.ExportRow, 0, len(rows))
	for _, r := range rows {
		id, _ := uuid.Parse(r.CandidateID)
		out = append(out, api.ExportRow{
			CandidateId:     id,
			CandidateName:   r.CandidateName,
			CandidateEmail:  openapi_types.Email(r.CandidateEmail),
			CandidateStatus: string(r.CandidateStatus),
			SlotStart:       r.SlotStart,
			SlotEnd:         r.SlotEnd,
		})
	}
	return out
}

// writeCSV encodes domain rows as CSV into a buffer, then writes it in one go
// with an explicit Content-Length.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="availability.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Nil time pointers are encoded as empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.CandidateID,
		r.CandidateName,
		r.CandidateEmail,
		string(r.CandidateStatus),
		formatOptionalTime(r.SlotStart),
		formatOptionalTime(r.SlotEnd),
	}
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
