package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veganmotoclub/catalog-api/internal/catalog"
	"github.com/veganmotoclub/catalog-api/internal/models"
)

// ContentStore is the read surface of the content service; tests substitute
// a stub.
type ContentStore interface {
	ListProducts(ctx context.Context) []models.Product
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListEvents(ctx context.Context) []models.Event
	ListBlogPosts(ctx context.Context) []models.BlogPost
	GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error)
}

// productView is a product as serialized in responses, with the
// display-ready price label alongside the raw price.
type productView struct {
	models.Product
	DisplayPrice string `json:"display_price"`
}

func viewProduct(p models.Product) productView {
	return productView{Product: p, DisplayPrice: p.DisplayPrice()}
}

func viewProducts(list []models.Product) []productView {
	out := make([]productView, 0, len(list))
	for _, p := range list {
		out = append(out, viewProduct(p))
	}
	return out
}

// productListResponse echoes the applied filters and page back so the
// consumer can detect a stale page number after a filter change.
type productListResponse struct {
	Items    []productView    `json:"items"`
	Facets   catalog.FacetSet `json:"facets"`
	Filters  catalog.Criteria `json:"filters"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
}

// RegisterProductRoutes registers the catalog read endpoints.
//
// GET /products
//   - search, brand, category: single-valued filters
//   - gender, style: repeatable, OR-combined within the field
//   - page (1-indexed), page_size: pagination over the filtered list
//
// GET /products/:id
func RegisterProductRoutes(r gin.IRoutes, store ContentStore) {
	r.GET("/products", func(c *gin.Context) {
		products := store.ListProducts(c.Request.Context())

		crit := catalog.Criteria{
			Search:       strings.TrimSpace(c.Query("search")),
			Brand:        c.Query("brand"),
			Category:     c.Query("category"),
			Genders:      c.QueryArray("gender"),
			RidingStyles: c.QueryArray("style"),
		}
		page := intQuery(c, "page", 1)
		size := intQuery(c, "page_size", catalog.DefaultPageSize)
		if size > 100 {
			size = 100
		}

		filtered := catalog.Filter(products, crit)
		c.JSON(http.StatusOK, productListResponse{
			Items:    viewProducts(catalog.Paginate(filtered, size, page)),
			Facets:   catalog.Facets(products),
			Filters:  crit,
			Page:     page,
			PageSize: size,
			Total:    len(filtered),
		})
	})

	r.GET("/products/:id", func(c *gin.Context) {
		p, err := store.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, viewProduct(*p))
	})
}

// intQuery parses a positive integer query param, falling back to def on
// anything else.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
