// Package server exposes the pipeline controller over HTTP and a websocket feed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"solana-token-scope/internal/activity"
	"solana-token-scope/internal/address"
	"solana-token-scope/internal/logging"
	"solana-token-scope/internal/observability"
	"solana-token-scope/internal/pipeline"
	"solana-token-scope/internal/view"
)

// Controller is the part of pipeline.Controller the server drives.
type Controller interface {
	Submit(ctx context.Context, contract string) (pipeline.Generation, error)
	Snapshot(ctx context.Context) (pipeline.Snapshot, error)
	Sort(ctx context.Context, table, column string, ascending bool) error
}

// Server routes HTTP requests to the controller.
type Server struct {
	ctrl     Controller
	activity *activity.Log
	hub      *Hub
	log      logrus.FieldLogger
}

// New creates a Server.
func New(ctrl Controller, log *activity.Log, hub *Hub, logger logrus.FieldLogger) *Server {
	return &Server{
		ctrl:     ctrl,
		activity: log,
		hub:      hub,
		log:      logging.Component(logger, "server"),
	}
}

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Address string `json:"address"`
}

// QueryResponse is returned when a query is accepted.
type QueryResponse struct {
	Generation pipeline.Generation `json:"generation"`
}

// SortRequest is the body of POST /api/sort.
type SortRequest struct {
	Table     string `json:"table"`
	Column    string `json:"column"`
	Ascending bool   `json:"ascending"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", observability.Handler())

	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("POST /api/sort", s.handleSort)
	mux.HandleFunc("GET /api/activity", s.handleActivity)
	if s.hub != nil {
		mux.Handle("GET /ws", s.hub)
	}
	return mux
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	gen, err := s.ctrl.Submit(r.Context(), req.Address)
	switch {
	case errors.Is(err, address.ErrInvalidAddress):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		s.writeError(w, err)
		return
	}

	s.log.WithFields(logrus.Fields{"generation": uint64(gen), "contract": req.Address}).Info("query accepted")
	writeJSON(w, http.StatusAccepted, QueryResponse{Generation: gen})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.ctrl.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	var req SortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	err := s.ctrl.Sort(r.Context(), req.Table, req.Column, req.Ascending)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, pipeline.ErrUnknownTable),
		errors.Is(err, view.ErrUnknownColumn),
		errors.Is(err, view.ErrNotSortable):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, pipeline.ErrTableNotReady):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		s.writeError(w, err)
	}
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	entries := []activity.Entry{}
	if s.activity != nil {
		entries = s.activity.Entries()
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, pipeline.ErrStopped) {
		status = http.StatusServiceUnavailable
	}
	s.log.WithError(err).Warn("request failed")
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
