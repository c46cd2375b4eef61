package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/arbitres/console/core"
)

// Logger records messages instead of printing them.
type Logger struct {
	mu       sync.Mutex
	Messages []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+": "+msg)
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log("DEBUG", msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log("INFO", msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log("WARN", msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log("ERROR", msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log("FATAL", msg) }

// Count returns the number of messages logged at level.
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.Messages {
		if len(m) > len(level) && m[:len(level)] == level {
			n++
		}
	}
	return n
}

// Route is a canned backend response.
type Route struct {
	Status int
	Body   interface{} // marshalled to JSON unless it is a string
}

// Backend is a fake REST backend serving canned responses by path.
type Backend struct {
	*httptest.Server

	mu      sync.Mutex
	routes  map[string]Route
	hits    map[string]int
	auth    []string
	queries map[string]string // last raw query per path
}

// NewBackend starts a fake backend. Unknown paths answer 404.
func NewBackend(t *testing.T, routes map[string]Route) *Backend {
	b := &Backend{
		routes:  routes,
		hits:    make(map[string]int),
		queries: make(map[string]string),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits[r.URL.Path]++
	b.queries[r.URL.Path] = r.URL.RawQuery
	b.auth = append(b.auth, r.Header.Get("Authorization"))
	route, ok := b.routes[r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"detail": "Not found."}`)
		return
	}
	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if s, ok := route.Body.(string); ok {
		_, _ = fmt.Fprint(w, s)
		return
	}
	_ = json.NewEncoder(w).Encode(route.Body)
}

// SetRoute replaces the response for path.
func (b *Backend) SetRoute(path string, route Route) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[path] = route
}

// Hits returns how many times path was requested.
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

// AuthHeaders returns every Authorization header received.
func (b *Backend) AuthHeaders() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.auth...)
}

// LastQuery returns the raw query string of the last request to path.
func (b *Backend) LastQuery(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[path]
}

// Unreachable returns a base URL nothing listens on.
func Unreachable(t *testing.T) string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}
