package server

import (
	_ "embed"
	"net/http"
	"strconv"
	"strings"

	"github.com/five82/cardview/internal/catalog"
)

//go:embed web/index.html
var indexHTML []byte

type healthResponse struct {
	Status string `json:"status"`
}

type itemsResponse struct {
	Count  int              `json:"count"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Items  []catalog.Record `json:"items"`
}

type randomResponse struct {
	N     int              `json:"n"`
	Items []catalog.Record `json:"items"`
}

type searchResponse struct {
	Items []catalog.Record `json:"items"`
	Query string           `json:"query"`
	Count *int             `json:"count,omitempty"`
}

type categoriesResponse struct {
	Categories map[string]int `json:"categories"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexHTML); err != nil {
		s.logger.Debug("write index failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

// handleListItems pages through the catalog: ?limit=&offset=
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", 0)
	offset := intParam(r, "offset", 0)

	items, limit, offset := s.catalog.Page(limit, offset)
	s.respondJSON(w, r, http.StatusOK, itemsResponse{
		Count:  s.catalog.Len(),
		Limit:  limit,
		Offset: offset,
		Items:  items,
	})
}

// handleRandom returns n distinct random items: ?n=3
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	items, n := s.catalog.Sample(intParam(r, "n", 1))
	s.respondJSON(w, r, http.StatusOK, randomResponse{N: n, Items: items})
}

// handleSearch matches title, text and tags case-insensitively: ?q=focus
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	items, query := s.catalog.Search(r.URL.Query().Get("q"))
	resp := searchResponse{Items: items, Query: query}
	if query != "" {
		count := len(items)
		resp.Count = &count
	}
	s.respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, categoriesResponse{Categories: s.catalog.Categories()})
}

// intParam reads an integer query parameter; absent or malformed values
// fall back to def.
func intParam(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
