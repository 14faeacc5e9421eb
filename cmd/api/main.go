package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	"github.com/BruksfildServices01/client-registry/internal/cache"
	"github.com/BruksfildServices01/client-registry/internal/config"
	dbpkg "github.com/BruksfildServices01/client-registry/internal/db"
	"github.com/BruksfildServices01/client-registry/internal/infra/repository"
	"github.com/BruksfildServices01/client-registry/internal/routes"
)

func main() {

	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer dbpkg.Close(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dbpkg.Migrate(ctx, db); err != nil {
		log.Fatalf("%v", err)
	}

	var clientCache cache.ClientCache = cache.NoopCache{}
	if cfg.RedisURL != "" {
		rc, err := cache.Dial(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer rc.Close()
		clientCache = rc
		log.Printf("client cache enabled (ttl %s)", cfg.CacheTTL)
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, cfg.AuditQueue)
	defer auditDispatcher.Close()

	r := gin.Default()

	routes.RegisterRoutes(r, routes.Deps{
		Config:      cfg,
		Clients:     repository.NewClientGormRepository(db),
		Cache:       clientCache,
		Dispatcher:  auditDispatcher,
		AuditReader: auditLogger,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
