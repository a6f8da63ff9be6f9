package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Open5eServer is an in-process stand-in for the Open5e API. Records are
// keyed by resource ("classes", "spells") and slug.
type Open5eServer struct {
	*httptest.Server

	mu       sync.Mutex
	records  map[string]map[string]any
	requests []*http.Request
}

// NewOpen5eServer starts a server that is closed when the test ends.
func NewOpen5eServer(t testing.TB) *Open5eServer {
	t.Helper()
	s := &Open5eServer{records: make(map[string]map[string]any)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Add registers a record that is returned when ?slug=<slug> is requested.
func (s *Open5eServer) Add(resource, slug string, record any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[resource] == nil {
		s.records[resource] = make(map[string]any)
	}
	s.records[resource][slug] = record
}

// Requests returns a copy of every request received so far.
func (s *Open5eServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

func (s *Open5eServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Clone(r.Context()))
	resource := strings.Trim(r.URL.Path, "/")
	record, ok := s.records[resource][r.URL.Query().Get("slug")]
	s.mu.Unlock()

	results := []any{}
	if ok {
		results = append(results, record)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":    len(results),
		"next":     nil,
		"previous": nil,
		"results":  results,
	})
}
