package server

import (
	"encoding/json"
	"net/http"

	"repoyear/internal/history"

	"go.uber.org/zap"
)

type healthResponse struct {
	Status string `json:"status"`
}

type versionResponse struct {
	Version string `json:"version"`
}

type contributionsResponse struct {
	Repos history.Result `json:"repos"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// handleHealth 只表示服务进程在运行，不检查其他任何东西。
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, versionResponse{Version: s.opts.Version})
}

func (s *Server) handleContributions(w http.ResponseWriter, r *http.Request) {
	s.scanMu.Lock()
	result := s.scan(s.opts.Repos)
	s.scanMu.Unlock()

	s.logger.Debug("contributions scanned",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.Int("repos", len(result)),
	)
	s.writeJSON(w, r, http.StatusOK, contributionsResponse{Repos: result})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, r, status, errorResponse{Error: msg, RequestID: RequestIDFrom(r.Context())})
}
