// Package mockapi serves the content endpoints with seeded data so
// the client can be developed and demoed without the production API.
//
// Each route wraps its list in a different envelope on purpose: the
// client has to cope with every shape the real deployments have
// shipped.
package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Server is an instance of the mock content API.
type Server struct {
	*http.Server

	requireAuth bool
}

// NewServer builds the mock API. With requireAuth set, requests
// without a bearer token get a 401 and gated routes honor the X-Plan
// header (X-Plan: none simulates an account without a plan).
func NewServer(port int, requireAuth bool) *Server {
	s := &Server{requireAuth: requireAuth}

	r := mux.NewRouter()
	r.HandleFunc("/api/videos", s.handleVideos).Methods(http.MethodGet)
	r.HandleFunc("/api/reports/pdfs/", s.handleReports).Methods(http.MethodGet)
	r.HandleFunc("/api/etf-pdfs", s.handleEtfReports).Methods(http.MethodGet)
	r.HandleFunc("/api/notifications", s.handleNotifications).Methods(http.MethodGet)

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Handler:      handlers.CombinedLoggingHandler(os.Stdout, r),
	}

	return s
}

// Routes exposes the handler for tests.
func (s *Server) Routes() http.Handler { return s.Server.Handler }

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("error encoding response", "err", err)
	}
}

// gate simulates the production API's access behavior: 401 without a
// bearer token, 403 on gated routes when the caller declares no plan.
func (s *Server) gate(w http.ResponseWriter, r *http.Request, planRequired bool) bool {
	if !s.requireAuth {
		return true
	}

	if r.Header.Get("Authorization") == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	if planRequired && r.Header.Get("X-Plan") == "none" {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "an active plan is required"})
		return false
	}

	return true
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	if !s.gate(w, r, true) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"videos": seedVideos})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if !s.gate(w, r, true) {
		return
	}

	// Bare array, no envelope.
	writeJSON(w, http.StatusOK, seedReports)
}

func (s *Server) handleEtfReports(w http.ResponseWriter, r *http.Request) {
	if !s.gate(w, r, true) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": seedEtfReports})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if !s.gate(w, r, false) {
		return
	}

	if r.URL.Query().Get("userId") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": seedNotifications,
		"total":         len(seedNotifications),
		"unread":        len(seedNotifications),
	})
}
