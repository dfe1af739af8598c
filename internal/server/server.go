// Package server wires the model, the JSON API and the prediction form into one HTTP server.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/RMahshie/concrete-strength/internal/api"
	"github.com/RMahshie/concrete-strength/internal/api/handlers"
	"github.com/RMahshie/concrete-strength/internal/config"
	"github.com/RMahshie/concrete-strength/internal/inference"
	"github.com/RMahshie/concrete-strength/internal/regression"
	"github.com/RMahshie/concrete-strength/internal/storage"
	"github.com/RMahshie/concrete-strength/internal/ui"
)

const shutdownTimeout = 30 * time.Second

// Server owns the loaded model and the HTTP handler built around it
type Server struct {
	addr    string
	handler http.Handler
	svc     inference.PredictionService
}

// New loads the model and builds the router. It fails when the artifact is missing or corrupt;
// no handler exists until the model has loaded.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	src, err := modelSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	model, err := regression.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	svc := inference.NewPredictionService(model, src.String())

	return &Server{
		addr:    ":" + cfg.Server.Port,
		handler: newRouter(cfg, svc),
		svc:     svc,
	}, nil
}

func modelSource(ctx context.Context, cfg *config.Config) (regression.Source, error) {
	if !cfg.UseObjectStore() {
		return regression.FileSource{Path: cfg.Model.Path}, nil
	}

	store, err := storage.NewS3Service(ctx, storage.S3Config{
		Bucket:    cfg.AWS.S3Bucket,
		Endpoint:  cfg.AWS.S3Endpoint,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKeyID,
		SecretKey: cfg.AWS.SecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	return regression.ObjectSource{Store: store, Key: cfg.Model.S3Key}, nil
}

func newRouter(cfg *config.Config, svc inference.PredictionService) http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Datastar-Request"},
		MaxAge:         300,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("Concrete Strength API", handlers.Version)
	humaConfig.DocsPath = "/api/docs"
	humaConfig.OpenAPIPath = "/api/openapi"
	humaAPI := humachi.New(router, humaConfig)

	api.RegisterRoutes(humaAPI, svc)
	ui.SetupRoutes(router, svc)

	return router
}

// Handler returns the fully wired HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Service returns the prediction service backed by the loaded model
func (s *Server) Service() inference.PredictionService {
	return s.svc
}

// Serve listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		log.Info().Str("addr", s.addr).Msg("Starting concrete strength server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// zerologLogger returns a Chi middleware that logs HTTP requests using zerolog
func zerologLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_ip", r.RemoteAddr).
					Int("status", ww.Status()).
					Dur("latency", time.Since(start)).
					Msg("HTTP request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
