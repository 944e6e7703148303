package fixture

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ServerOption configures the fixture router.
type ServerOption func(*server)

// WithToken makes the router reject requests whose Authorization header is
// not "token <token>", mirroring an authenticated repository.
func WithToken(token string) ServerOption {
	return func(s *server) {
		s.token = token
	}
}

// WithRequestLog logs every request through chi's logger middleware.
func WithRequestLog() ServerOption {
	return func(s *server) {
		s.logRequests = true
	}
}

type server struct {
	set         *Set
	token       string
	logRequests bool
}

// NewRouter serves set under /repos/{owner}/{repo}/ with the same paths the
// live API uses, so the HTTP adapter can run against it unchanged.
func NewRouter(set *Set, opts ...ServerOption) http.Handler {
	s := &server{set: set}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	r := chi.NewRouter()
	if s.logRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(s.authenticate)

	r.Route("/repos/{owner}/{repo}", func(r chi.Router) {
		r.Get("/contents/*", s.contents)
		r.Get("/commits/{sha}", s.commit)
		r.Get("/issues", s.issues)
		r.Get("/issues/{number}", s.issue)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w)
	})

	return r
}

func (s *server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "token "+s.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) contents(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	if path == "" {
		writeNotFound(w)
		return
	}
	writeRaw(w, http.StatusOK, s.set.Contents(path))
}

func (s *server) commit(w http.ResponseWriter, r *http.Request) {
	body, ok := s.set.Commit(chi.URLParam(r, "sha"))
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "No commit found for SHA"})
		return
	}
	writeRaw(w, http.StatusOK, body)
}

func (s *server) issues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	writeRaw(w, http.StatusOK, s.set.IssuePage(page, perPage))
}

func (s *server) issue(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(strings.TrimSpace(chi.URLParam(r, "number")))
	if err != nil {
		writeNotFound(w)
		return
	}
	body, ok := s.set.Issue(n)
	if !ok {
		writeNotFound(w)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, _ := json.Marshal(v)
	writeRaw(w, status, data)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
