package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veganmotoclub/catalog-api/internal/handlers"
	"github.com/veganmotoclub/catalog-api/internal/httpx"
	"github.com/veganmotoclub/catalog-api/internal/suggest"
)

// Deps carries everything the router needs. Ready is nil when the limiter has
// no external store to check.
type Deps struct {
	Store   handlers.ContentStore
	Gate    *suggest.Gate
	Ready   func(ctx context.Context) error
	SiteURL string
}

// NewRouter wires the public endpoints.
// Reads: /products, /products/:id, /events, /blog, /blog/:id, /sitemap.xml
// Write: /suggest
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the limiter's backing store, when there is one.
	// Content store outages fail open to empty listings and do not gate
	// readiness.
	r.GET("/ready", func(c *gin.Context) {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers.RegisterProductRoutes(r, d.Store)
	handlers.RegisterEventRoutes(r, d.Store)
	handlers.RegisterBlogRoutes(r, d.Store)
	handlers.RegisterSuggestRoutes(r, d.Gate)
	handlers.RegisterSitemapRoutes(r, d.Store, d.SiteURL)

	return r
}
