// Package server exposes the counter store over HTTP for the presentation
// layer: add/remove/snapshot on user action or poll, the rate readout, and
// the explicit save action.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alexrttr/qt-table-increment/internal/config"
	"github.com/alexrttr/qt-table-increment/internal/counter"
	"github.com/alexrttr/qt-table-increment/internal/server/middleware"
	"github.com/alexrttr/qt-table-increment/internal/utils"
	"github.com/alexrttr/qt-table-increment/model"
	"github.com/alexrttr/qt-table-increment/storage"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	store     *counter.Store
	estimator *counter.Estimator
	gateway   storage.Gateway
	config    *config.ServerConfig
}

func NewServer(store *counter.Store, estimator *counter.Estimator, gateway storage.Gateway, config *config.ServerConfig) *Server {
	return &Server{
		store:     store,
		estimator: estimator,
		gateway:   gateway,
		config:    config,
	}
}

func (srv *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.config.Logger))
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware)

	router.Post("/counters", srv.AddCounterHandler)
	router.Delete("/counters/{index}", srv.RemoveCounterHandler)
	router.Get("/counters", srv.ListCountersHandler)
	router.Put("/counters", srv.ReplaceCountersHandler)
	router.Get("/rate", srv.RateHandler)
	router.Post("/save", srv.SaveHandler)
	router.Get("/ping", srv.PingHandler)

	return router
}

// Run serves HTTP until ctx is cancelled, then shuts the listener down
// gracefully.
func (srv *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: srv.config.Addr, Handler: srv.Router()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

type addRequest struct {
	Value int64 `json:"value"`
}

// AddCounterHandler appends a counter. The body is an optional JSON
// {"value": n}; an empty body appends a zero, matching the Add button.
func (srv *Server) AddCounterHandler(w http.ResponseWriter, r *http.Request) {
	var req addRequest

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
	}

	srv.store.Add(req.Value)
	w.WriteHeader(http.StatusCreated)
}

// RemoveCounterHandler deletes the counter at the given position. An
// out-of-range index is a documented no-op, so both outcomes answer 204.
func (srv *Server) RemoveCounterHandler(w http.ResponseWriter, r *http.Request) {
	idx := chi.URLParam(r, "index")

	index, err := strconv.Atoi(idx)
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}

	srv.store.Remove(index)
	w.WriteHeader(http.StatusNoContent)
}

func (srv *Server) ListCountersHandler(w http.ResponseWriter, r *http.Request) {
	snap := srv.store.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		srv.config.Logger.Errorf("failed to encode snapshot: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (srv *Server) ReplaceCountersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
		return
	}

	var snap model.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	srv.store.ReplaceAll(snap.Counters)
	w.WriteHeader(http.StatusOK)
}

type rateResponse struct {
	model.RateReading
	Display string `json:"display"`
}

// RateHandler reports the latest estimator reading. Until two samples exist
// there is nothing to report and the handler answers 204.
func (srv *Server) RateHandler(w http.ResponseWriter, r *http.Request) {
	reading, ok := srv.estimator.Latest()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := rateResponse{RateReading: reading, Display: reading.Display()}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		srv.config.Logger.Errorf("failed to encode rate: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// SaveHandler persists a snapshot of the collection through the gateway.
// A failed save is reported to the caller; the increment loop is unaffected.
func (srv *Server) SaveHandler(w http.ResponseWriter, r *http.Request) {
	snap := srv.store.Snapshot()

	err := utils.WithRetry(r.Context(), func() error {
		return srv.gateway.SaveAll(r.Context(), snap.Counters)
	})
	if err != nil {
		srv.config.Logger.Errorf("failed to save %d counters: %v", len(snap.Counters), err)
		if errors.Is(err, storage.ErrUnavailable) {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "failed to save counters", http.StatusInternalServerError)
		return
	}

	srv.config.Logger.Infof("saved %d counters", len(snap.Counters))
	w.WriteHeader(http.StatusOK)
}

func (srv *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	if err := srv.gateway.Ping(r.Context()); err != nil {
		srv.config.Logger.Errorf("storage ping failed: %v", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
