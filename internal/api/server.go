// internal/api/server.go

// Package api exposes the minutes service over HTTP: document generation,
// attendee and recipient derivation, and the admin record console.
package api

import (
	"context"
	"net/http"

	"minutes-service/internal/common/config"
	"minutes-service/internal/common/errors"
	"minutes-service/internal/common/logger"
	"minutes-service/internal/directory"
	"minutes-service/internal/notify"
	"minutes-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP surface to the domain services.
type Server struct {
	cfg       *config.Config
	records   *store.RecordStore
	indexer   *store.Indexer
	directory *directory.Service
	mailer    *notify.Mailer
	errs      *errors.HTTPHandler
	logger    logger.Logger
}

func NewServer(
	cfg *config.Config,
	records *store.RecordStore,
	indexer *store.Indexer,
	dir *directory.Service,
	mailer *notify.Mailer,
	log logger.Logger,
) *Server {
	return &Server{
		cfg:       cfg,
		records:   records,
		indexer:   indexer,
		directory: dir,
		mailer:    mailer,
		errs:      errors.NewHTTPHandler(log),
		logger:    log,
	}
}

// Router builds the route table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Capture-form endpoints, no secret required.
		r.Post("/save", s.handleSave)
		r.Post("/generate/{documentType}", s.handleGenerate)
		r.Post("/attendees", s.handleAttendees)
		r.Post("/recipients", s.handleRecipients)
		r.Post("/lookup-manager", s.handleLookupManager)
		r.Get("/departments", s.handleDepartments)
		r.Post("/export-snapshot", s.handleExportSnapshot)
		r.Post("/send-notice", s.handleSendNotice)

		// Admin console endpoints, gated by the shared secret.
		r.Post("/get-all-records", s.handleGetAllRecords)
		r.Post("/delete-record/{id}", s.handleDeleteRecord)
		r.Post("/delete-batch", s.handleDeleteBatch)
		r.Get("/export-excel", s.handleExportExcel)
		r.Post("/export-batch", s.handleExportBatch)
	})

	return r
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Address,
		Handler:      s.Router(),
		ReadTimeout:  config.GetDuration(s.cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(s.cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{
			"address": s.cfg.Server.Address,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(s.cfg.Server.WriteTimeout))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
