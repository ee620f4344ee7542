// Package api serves the aggregated evaluation reports over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// NewRouter builds the HTTP routes over a validated base config.
// Every request works on its own clone of baseCfg.
func NewRouter(baseCfg *contract.Config, mgr contract.CacheManager) http.Handler {
	h := &handler{baseCfg: baseCfg, mgr: mgr}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.healthz)
	r.Get("/summary", h.summary)
	r.Get("/scores", h.scores)
	r.Route("/courses/{code}", func(cr chi.Router) {
		cr.Get("/", h.course)
		cr.Get("/history", h.courseHistory)
	})
	return r
}

// Serve listens on cfg.ServeAddr until ctx is cancelled.
func Serve(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	srv := &http.Server{
		Addr:              cfg.ServeAddr,
		Handler:           NewRouter(cfg, mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		contract.Logger().Info("serving reports", zap.String("addr", cfg.ServeAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		contract.Logger().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
