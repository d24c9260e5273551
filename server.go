package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxRequestBody bounds JSON request bodies.
const maxRequestBody = 1 << 20

// apiServer exposes a Session over HTTP. Handlers run concurrently, so the
// session is guarded by mu.
type apiServer struct {
	mu      sync.Mutex
	session *Session
	log     *zap.Logger
}

// NewServer wires the API routes and a health check into a router.
func NewServer(session *Session, log *zap.Logger) http.Handler {
	s := &apiServer{session: session, log: log}
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/run", s.handleRun)
	})
	return r
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type validateResponse struct {
	Valid   bool           `json:"valid"`
	Request CircuitRequest `json:"request"`
}

func (s *apiServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decode(w, r)
	if !ok {
		return
	}
	req, err := s.session.Validate(in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Request: req})
}

func (s *apiServer) handleRun(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	res, err := s.session.Run(in)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *apiServer) decode(w http.ResponseWriter, r *http.Request) (RequestInput, bool) {
	var in RequestInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return in, false
	}
	return in, true
}

// writeError maps validation failures to 422 and everything else to 500.
func (s *apiServer) writeError(w http.ResponseWriter, err error) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: reqErr.Error(), Kind: reqErr.KindName()})
		return
	}
	s.log.Error("run failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
