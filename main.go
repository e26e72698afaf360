package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/blueexport/blueexport/backend/go-services/internal/config"
	"github.com/blueexport/blueexport/backend/go-services/internal/diagnostics"
	"github.com/blueexport/blueexport/backend/go-services/internal/forms"
	"github.com/blueexport/blueexport/backend/go-services/internal/handler"
	"github.com/blueexport/blueexport/backend/go-services/internal/store"
	"github.com/blueexport/blueexport/backend/go-services/pkg/logger"
	"github.com/blueexport/blueexport/backend/go-services/pkg/metrics"
	"github.com/blueexport/blueexport/backend/go-services/pkg/middleware"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	// LOG_LEVEL may come from the env file, which is only read by LoadConfig
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: database_url=%v database_name=%v env=%s",
		cfg.Database.URL != "", cfg.Database.Name != "", cfg.Server.Environment)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failed connection is not fatal: the API still serves the catalog and
	// reports the database as unavailable.
	db, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Warnf("database unavailable, continuing without persistence: %v", err)
	} else {
		logger.Infof("database connected: %s", db.Name())
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.CORS(), middleware.AccessLog())

	h := handler.NewHandler(forms.NewService(db), diagnostics.NewChecker(db, cfg.Database))
	h.Register(r)
	handler.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("starting blueexport api on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if cerr := db.Close(shutdownCtx); cerr != nil {
			logger.Warnf("closing database: %v", cerr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
	logger.Infof("server stopped gracefully")
}
