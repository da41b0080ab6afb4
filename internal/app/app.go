package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"biaslens/internal/config"
	apierrors "biaslens/internal/errors"
	"biaslens/internal/infrastructure"
	"biaslens/internal/insight"
	custommw "biaslens/internal/middleware"
	"biaslens/internal/services"
	transport "biaslens/internal/transport/http"
	"biaslens/internal/websocket"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Application holds the long-lived components of the web server and
// wires them together.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	Router        chi.Router
	Server        *http.Server
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics
	Hub           *websocket.Hub
	Analysis      *services.AnalysisService
	FrontendFS    fs.FS
}

// NewApplication builds a fully wired Application. frontendFS carries
// the embedded frontend and may be nil.
func NewApplication(frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(Version, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize otel: %w", err)
	}

	metrics, err := infrastructure.CreateMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}

	hub := websocket.NewHub(logger)

	var generator services.InsightGenerator
	if cfg.Insight.Enabled() {
		generator = insight.NewClient(cfg.Insight, logger)
	} else {
		logger.Info("insight generation disabled, no endpoint configured")
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		Hub:           hub,
		Analysis:      services.NewAnalysisService(cfg, generator, hub, metrics, logger),
		FrontendFS:    frontendFS,
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Minimal middleware only; anything that wraps the ResponseWriter
	// breaks the websocket upgrade.
	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	r.HandleFunc("/ws", a.handleWebSocket)

	// Prometheus endpoint stays outside the API middleware group.
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	analysisHandler := transport.NewAnalysisHandler(a.Analysis, a.Config.Upload.MaxBytes, a.Logger, errorHandler)
	healthHandler := transport.NewHealthHandler(Version, a.Logger)
	healthHandler.AddReadinessCheck("hub", func() bool { return a.Hub != nil })

	r.Group(func(r chi.Router) {
		r.Use(custommw.Metrics(a.Metrics))
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(custommw.CORS(custommw.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Route("/api", func(r chi.Router) {
			r.Use(custommw.Timeout(a.Config.Server.WriteTimeout, a.Logger))

			r.Post("/analyze", analysisHandler.Analyze)
			r.Get("/labels", analysisHandler.Labels)

			r.Get("/ping", healthHandler.Ping)
			r.Get("/version", healthHandler.Version)
			r.Route("/health", func(r chi.Router) {
				r.Get("/", healthHandler.HealthCheck)
				r.Get("/live", healthHandler.LivenessCheck)
				r.Get("/ready", healthHandler.ReadinessCheck)
			})
		})

		// Everything else is the frontend.
		r.Handle("/*", transport.NewSPAHandler(a.FrontendFS, a.Logger))
	})

	a.Router = r
}

// handleWebSocket upgrades the connection and registers the client.
func (a *Application) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	a.Logger.InfoContext(r.Context(), "websocket upgrade request",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("origin", r.Header.Get("Origin")))
	websocket.ServeWS(a.Hub, a.Logger, w, r)
}

// Run starts the hub and HTTP server and blocks until the context is
// cancelled by a signal, then shuts everything down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Hub.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		a.Hub.Stop()

		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("otel shutdown failed", slog.String("error", err.Error()))
		}
		if err := infrastructure.CloseLogFile(); err != nil {
			a.Logger.Error("closing log file failed", slog.String("error", err.Error()))
		}
		return nil
	})

	err := g.Wait()
	a.Logger.Info("application stopped")
	return err
}
