// Package apitest runs an in-process stand-in for the question-answering
// backend so clients can be exercised without the real service.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Reply is a canned HTTP response.
type Reply struct {
	Status int
	Body   any
}

// AskFunc decides the /ask reply for a question.
type AskFunc func(question string) Reply

// Request is one recorded call to the fake backend.
type Request struct {
	Method    string
	Path      string
	Question  string
	RequestID string
}

// Server is a programmable fake backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	health   Reply
	ask      AskFunc
	requests []Request
}

// Healthy is the body a ready backend returns from /health.
func Healthy() Reply {
	return Reply{Status: http.StatusOK, Body: map[string]any{"status": "healthy", "index_loaded": true, "chunks_count": 42}}
}

// Degraded mirrors a backend whose index failed to load.
func Degraded(reason string) Reply {
	return Reply{Status: http.StatusOK, Body: map[string]any{
		"status":       "degraded",
		"message":      "RAG system not initialized",
		"init_error":   reason,
		"index_loaded": false,
	}}
}

// AnswerWith always answers with text.
func AnswerWith(text string) AskFunc {
	return func(string) Reply {
		return Reply{Status: http.StatusOK, Body: map[string]string{"answer": text}}
	}
}

// FailWith always fails with the given status and detail message.
func FailWith(status int, detail string) AskFunc {
	return func(string) Reply {
		return Reply{Status: status, Body: map[string]string{"detail": detail}}
	}
}

// New starts a healthy fake backend that echoes questions back.
func New() *Server {
	s := &Server{
		health: Healthy(),
		ask: func(q string) Reply {
			return Reply{Status: http.StatusOK, Body: map[string]string{"answer": "You asked: " + q}}
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ask", s.handleAsk)
	s.Server = httptest.NewServer(mux)
	return s
}

// SetHealth changes the /health reply for subsequent checks.
func (s *Server) SetHealth(reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = reply
}

// SetAsk changes how /ask replies.
func (s *Server) SetAsk(fn AskFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ask = fn
}

// Requests returns a copy of every recorded request.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// AskCount reports how many /ask calls reached the server.
func (s *Server) AskCount() int {
	count := 0
	for _, r := range s.Requests() {
		if r.Path == "/ask" {
			count++
		}
	}
	return count
}

func (s *Server) record(r Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.record(Request{Method: r.Method, Path: r.URL.Path})
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method Not Allowed"})
		return
	}
	s.mu.Lock()
	reply := s.health
	s.mu.Unlock()
	writeJSON(w, reply.Status, reply.Body)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.record(Request{Method: r.Method, Path: r.URL.Path})
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method Not Allowed"})
		return
	}
	var payload struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.record(Request{Method: r.Method, Path: r.URL.Path, RequestID: r.Header.Get("X-Request-ID")})
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "Input should be a valid dictionary"}},
		})
		return
	}
	s.record(Request{Method: r.Method, Path: r.URL.Path, Question: payload.Question, RequestID: r.Header.Get("X-Request-ID")})
	if strings.TrimSpace(payload.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Question cannot be empty"})
		return
	}

	s.mu.Lock()
	fn := s.ask
	s.mu.Unlock()
	reply := fn(payload.Question)
	writeJSON(w, reply.Status, reply.Body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	if status == 0 {
		status = http.StatusOK
	}
	if raw, ok := body.(string); ok {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(raw))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
