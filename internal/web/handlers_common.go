package web

// handlers_common.go holds request parsing shared by the entity handlers.

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/salesadmin/internal/core"
	"github.com/go-chi/chi/v5"
)

// errBadBody is returned for a body that is neither a JSON object nor a form.
var errBadBody = core.ValidationErrors{{Field: "body", Message: "invalid request body"}}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// pathParam returns the unescaped route parameter name.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// parseListRequest reads list parameters from the path and query string.
// A limit above the configured maximum is clamped to it.
func (s *Server) parseListRequest(r *http.Request) core.ListRequest {
	q := r.URL.Query()

	limit := parseIntParam(r, "limit", 0)
	if maxLimit := s.cfg.Pagination.MaxLimit; maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return core.ListRequest{
		FieldName:  pathParam(r, "fieldname"),
		FieldValue: pathParam(r, "fieldvalue"),
		Search:     strings.TrimSpace(q.Get("search")),
		OrderBy:    q.Get("orderby"),
		OrderType:  q.Get("ordertype"),
		Page:       parseIntParam(r, "page", 1),
		Limit:      limit,
	}
}

// decodeInput reads a create or update body. JSON objects and url-encoded
// forms are accepted; the body is bounded by Server.MaxBodyBytes.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (core.Input, error) {
	if maxBytes := s.cfg.Server.MaxBodyBytes; maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(s.cfg.Server.MaxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, errBadBody
		}
		raw := make(map[string]any, len(r.PostForm))
		for k, v := range r.PostForm {
			if len(v) > 0 {
				raw[k] = v[0]
			}
		}
		return core.NormalizeInput(raw), nil
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, errBadBody
	}
	return core.NormalizeInput(raw), nil
}
