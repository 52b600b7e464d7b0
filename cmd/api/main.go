package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veganmotoclub/catalog-api/internal/config"
	"github.com/veganmotoclub/catalog-api/internal/content"
	"github.com/veganmotoclub/catalog-api/internal/httpserver"
	"github.com/veganmotoclub/catalog-api/internal/notion"
	"github.com/veganmotoclub/catalog-api/internal/ratelimit"
	"github.com/veganmotoclub/catalog-api/internal/suggest"
)

// main boots the service: config → limiter → content store client → router.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The limiter is in-memory by default; a Postgres DSN switches it to a
	// shared table so the limit holds across processes.
	var limiter ratelimit.Limiter
	var ready func(ctx context.Context) error
	if cfg.PostgresDSN != "" {
		pg, err := ratelimit.NewPostgres(ctx, cfg.PostgresDSN, cfg.RateLimitMax, cfg.RateLimitWindow)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal(err)
		}
		limiter = pg
		ready = pg.Ping
		log.Println("[main] rate limiter: postgres")
	} else {
		limiter = ratelimit.NewMemory(cfg.RateLimitMax, cfg.RateLimitWindow)
		log.Println("[main] rate limiter: in-memory")
	}

	client := notion.NewClient(cfg.NotionAPIKey)
	store := content.NewService(client, cfg.ProductsDBID, cfg.EventsDBID, cfg.BlogDBID, cfg.CacheTTL)
	gate := suggest.NewGate(limiter, store)

	router := httpserver.NewRouter(httpserver.Deps{
		Store:   store,
		Gate:    gate,
		Ready:   ready,
		SiteURL: cfg.SiteURL,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: router}
	go func() {
		log.Printf("[main] listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[main] shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
	log.Println("[main] graceful shutdown complete")
}
