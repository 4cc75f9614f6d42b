package web

import (
	"net/http"

	"github.com/JonMunkholm/salesadmin/internal/core"
	"github.com/JonMunkholm/salesadmin/internal/export"
	"github.com/JonMunkholm/salesadmin/internal/logging"
	"github.com/go-chi/chi/v5"
)

// handleList returns one page of records, or the full filtered set as a
// report when the export parameter is present.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	req := s.parseListRequest(r)

	if token := r.URL.Query().Get("export"); token != "" {
		format, err := export.ParseFormat(token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		rs, err := s.service.ExportList(r.Context(), entity, req)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.writeExport(w, r, format, rs)
		return
	}

	page, err := s.service.List(r.Context(), entity, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, page)
}

// handleView returns one record with its neighbouring keys, or a
// single-record report when the export parameter is present.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	recid := pathParam(r, "recid")

	if token := r.URL.Query().Get("export"); token != "" {
		format, err := export.ParseFormat(token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		rs, err := s.service.ExportView(r.Context(), entity, recid)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.writeExport(w, r, format, rs)
		return
	}

	view, err := s.service.View(r.Context(), entity, recid)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, view)
}

// handleEditRecord returns the editable fields of one record.
func (s *Server) handleEditRecord(w http.ResponseWriter, r *http.Request) {
	row, err := s.service.EditRecord(r.Context(), chi.URLParam(r, "entity"), pathParam(r, "recid"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, row)
}

// handleOptions returns a {value, label} list for a form select.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.service.Options(r.Context(), chi.URLParam(r, "option"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, opts)
}

func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, format export.Format, rs *core.RecordSet) {
	logger := logging.WithFields(r.Context(),
		"entity", rs.Entity.Name,
		"format", format,
		"records", len(rs.Records),
	)

	if err := s.exporter.Write(r.Context(), w, format, rs); err != nil {
		s.respondError(w, r, err)
		return
	}
	logger.Info("export written")
}
