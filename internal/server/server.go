package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/BalanceBalls/timesheet-generator/internal/generator"
	"github.com/BalanceBalls/timesheet-generator/internal/logger"
	"github.com/BalanceBalls/timesheet-generator/internal/timesheet"
)

// TimesheetService is what the transport needs from the service layer.
type TimesheetService interface {
	Profile(ctx context.Context, userID int64) (timesheet.UserProfile, error)
	AddLeave(ctx context.Context, userID int64, month time.Month, year int, raw timesheet.RawEntry) error
	ClearLeaves(ctx context.Context, userID int64, month time.Month, year int) error
	Render(ctx context.Context, userID int64, month time.Month, year int, format string) (generator.Result, error)
}

type Server struct {
	svc    TimesheetService
	logger *slog.Logger
	http   *http.Server
}

func New(addr string, svc TimesheetService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{svc: svc, logger: log}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Get("/", s.handleProfile)
		r.Post("/leaves", s.handleAddLeave)
		r.Delete("/leaves", s.handleClearLeaves)
		r.Post("/timesheets", s.handleRender)
	})

	return r
}

// requestLogger tags each request with an id and attaches the scoped
// logger to the context for lower layers.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		log := s.logger.With("request_id", requestID,
			"method", r.Method, "path", r.URL.Path)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(logger.AddToContext(r.Context(), log)))
		log.Info("request handled", "duration", time.Since(start))
	})
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	errch := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		errch <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errch:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
