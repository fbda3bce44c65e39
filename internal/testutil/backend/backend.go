// Package backend runs an in-process stand-in for the marketplace HTTP API.
// Tests register canned handlers on it and inspect what the client sent.
package backend

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Recorded is one request as seen by the server.
type Recorded struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          []byte
}

// JSON decodes the recorded body into v.
func (r Recorded) JSON(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode body of %s %s: %v", r.Method, r.Path, err)
	}
}

// Part is a single multipart form part.
type Part struct {
	FieldName string
	FileName  string
	Header    string
	Data      []byte
}

// Multipart splits the recorded body into parts.
func (r Recorded) Multipart(t testing.TB) []Part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(r.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		t.Fatalf("%s %s: not a multipart body (%q)", r.Method, r.Path, r.ContentType)
	}
	mr := multipart.NewReader(bytes.NewReader(r.Body), params["boundary"])
	var parts []Part
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return parts
		}
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		data, err := io.ReadAll(p)
		if err != nil {
			t.Fatalf("read part data: %v", err)
		}
		parts = append(parts, Part{
			FieldName: p.FormName(),
			FileName:  p.FileName(),
			Header:    p.Header.Get("Content-Type"),
			Data:      data,
		})
	}
}

// Server wraps httptest.Server with a mux router and a request log.
type Server struct {
	*httptest.Server
	Router *mux.Router

	mu       sync.Mutex
	requests []Recorded
}

// New starts a server that is closed on test cleanup. Unmatched routes answer
// 404 and are still recorded.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{Router: mux.NewRouter()}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	s.mu.Unlock()

	r.Body = io.NopCloser(bytes.NewReader(body))
	s.Router.ServeHTTP(w, r)
}

// Handle registers h for method and exact path.
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.Router.HandleFunc(path, h).Methods(method)
}

// Reply registers a handler that answers with status and v encoded as JSON.
func (s *Server) Reply(method, path string, status int, v any) {
	s.Handle(method, path, JSONHandler(status, v))
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request. It fails the test if there is none.
func (s *Server) Last(t testing.TB) Recorded {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("backend received no requests")
	}
	return reqs[len(reqs)-1]
}

// JSONHandler answers with status and v encoded as JSON. A nil v writes an
// empty body.
func JSONHandler(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if v == nil {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}
