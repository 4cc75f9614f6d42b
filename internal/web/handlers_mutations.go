package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// deleteResponse lists the keys that matched a delete.
type deleteResponse struct {
	Deleted []any `json:"deleted"`
	Count   int   `json:"count"`
}

// handleAdd creates a record and echoes it.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeInput(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	row, err := s.service.Add(ctx, chi.URLParam(r, "entity"), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, row)
}

// handleEdit updates the fields present in the body and echoes the record.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeInput(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	row, err := s.service.Edit(ctx, chi.URLParam(r, "entity"), pathParam(r, "recid"), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, row)
}

// handleDelete deletes every record whose key is in the comma-separated
// recid. Keys that match nothing are skipped.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	deleted, err := s.service.Delete(ctx, chi.URLParam(r, "entity"), pathParam(r, "recid"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if deleted == nil {
		deleted = []any{}
	}
	writeJSON(w, deleteResponse{Deleted: deleted, Count: len(deleted)})
}
