// Package content reads products, events and blog posts from the external
// content store and caches them. Collection reads fail open: a store outage
// degrades the site to empty listings, never to an error page.
package content

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veganmotoclub/catalog-api/internal/models"
	"github.com/veganmotoclub/catalog-api/internal/notion"
)

// ErrNotFound is returned by single-item lookups when the store has no such
// page or the fetch failed.
var ErrNotFound = errors.New("content: not found")

const (
	cacheKeyProducts = "products"
	cacheKeyEvents   = "events"
	cacheKeyBlog     = "blog"
)

// Store is the subset of the notion client the service uses; tests substitute
// a stub.
type Store interface {
	QueryAll(ctx context.Context, databaseID string, req notion.QueryRequest) ([]notion.Page, error)
	RetrievePage(ctx context.Context, pageID string) (*notion.Page, error)
	CreatePage(ctx context.Context, req notion.CreatePageRequest) (*notion.Page, error)
}

// Service exposes the read and write operations the site needs.
type Service struct {
	store      Store
	productsDB string
	eventsDB   string
	blogDB     string
	cache      *ttlCache
}

// NewService builds a content service over the given store. Reads are cached
// for ttl, keyed by collection and, for single items, by page id.
func NewService(store Store, productsDB, eventsDB, blogDB string, ttl time.Duration) *Service {
	return &Service{
		store:      store,
		productsDB: productsDB,
		eventsDB:   eventsDB,
		blogDB:     blogDB,
		cache:      newTTLCache(ttl),
	}
}

// ListProducts returns every product with a non-empty name. On store failure
// it logs and returns an empty list.
func (s *Service) ListProducts(ctx context.Context) []models.Product {
	if v, ok := s.cache.get(cacheKeyProducts); ok {
		return v.([]models.Product)
	}
	pages, err := s.store.QueryAll(ctx, s.productsDB, notion.QueryRequest{
		Filter: notion.TitleNotEmpty("Name of product"),
	})
	if err != nil {
		log.Printf("[content] list products: %v", err)
		return []models.Product{}
	}
	out := make([]models.Product, 0, len(pages))
	for i := range pages {
		out = append(out, mapProduct(&pages[i]))
	}
	s.cache.set(cacheKeyProducts, out)
	return out
}

// GetProduct fetches a single product by page id.
func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	key := "product:" + id
	if v, ok := s.cache.get(key); ok {
		p := v.(models.Product)
		return &p, nil
	}
	page, err := s.store.RetrievePage(ctx, id)
	if err != nil {
		log.Printf("[content] get product %s: %v", id, err)
		return nil, ErrNotFound
	}
	p := mapProduct(page)
	s.cache.set(key, p)
	return &p, nil
}

// ListEvents returns events sorted ascending by start date. On store failure
// it logs and returns an empty list.
func (s *Service) ListEvents(ctx context.Context) []models.Event {
	if v, ok := s.cache.get(cacheKeyEvents); ok {
		return v.([]models.Event)
	}
	pages, err := s.store.QueryAll(ctx, s.eventsDB, notion.QueryRequest{
		Filter: notion.TitleNotEmpty("Name of event"),
		Sorts:  []notion.Sort{{Property: "Date", Direction: "ascending"}},
	})
	if err != nil {
		log.Printf("[content] list events: %v", err)
		return []models.Event{}
	}
	out := make([]models.Event, 0, len(pages))
	for i := range pages {
		out = append(out, mapEvent(&pages[i]))
	}
	s.cache.set(cacheKeyEvents, out)
	return out
}

// ListBlogPosts returns all blog posts. On store failure it logs and returns
// an empty list.
func (s *Service) ListBlogPosts(ctx context.Context) []models.BlogPost {
	if v, ok := s.cache.get(cacheKeyBlog); ok {
		return v.([]models.BlogPost)
	}
	pages, err := s.store.QueryAll(ctx, s.blogDB, notion.QueryRequest{
		Filter: notion.TitleNotEmpty("Name"),
	})
	if err != nil {
		log.Printf("[content] list blog posts: %v", err)
		return []models.BlogPost{}
	}
	out := make([]models.BlogPost, 0, len(pages))
	for i := range pages {
		out = append(out, mapBlogPost(&pages[i]))
	}
	s.cache.set(cacheKeyBlog, out)
	return out
}

// GetBlogPost fetches a single blog post by page id.
func (s *Service) GetBlogPost(ctx context.Context, id string) (*models.BlogPost, error) {
	key := "post:" + id
	if v, ok := s.cache.get(key); ok {
		p := v.(models.BlogPost)
		return &p, nil
	}
	page, err := s.store.RetrievePage(ctx, id)
	if err != nil {
		log.Printf("[content] get blog post %s: %v", id, err)
		return nil, ErrNotFound
	}
	p := mapBlogPost(page)
	s.cache.set(key, p)
	return &p, nil
}

// CreateSuggestion writes a user-suggested product into the products database
// with just a title and URL; editors fill in the rest. The cached product
// list is invalidated so the row shows up on the next read.
func (s *Service) CreateSuggestion(ctx context.Context, title, url string) error {
	_, err := s.store.CreatePage(ctx, notion.CreatePageRequest{
		Parent: notion.Parent{DatabaseID: s.productsDB},
		Properties: map[string]any{
			"Name of product": notion.TitleProperty(title),
			"URL":             notion.URLProperty(url),
		},
	})
	if err != nil {
		return err
	}
	s.cache.invalidate(cacheKeyProducts)
	return nil
}

func mapProduct(page *notion.Page) models.Product {
	return models.Product{
		ID:                page.ID,
		Name:              page.Title("Name of product"),
		Brand:             page.Text("Brand"),
		Category:          page.SelectName("Category"),
		LevelOfProtection: page.SelectName("Level of Protection"),
		Gender:            page.SelectName("Gender"),
		Price:             decimal.NewFromFloat(page.Number("Price")),
		Description:       page.Text("Description"),
		URL:               page.Text("URL"),
		Photos:            page.FileURLs("Photos"),
		RidingStyle:       page.MultiSelect("Riding style"),
		Season:            page.MultiSelect("Season"),
		WaterproofLevel:   page.SelectName("Level of Waterproof"),
		Materials:         page.MultiSelect("Materials"),
		VeganVerified:     page.SelectName("Vegan Verified"),
		StaffFavorite:     page.Checkbox("Staff favorite"),
		LastEdited:        page.LastEditedTime,
	}
}

func mapEvent(page *notion.Page) models.Event {
	start, end := page.DateSpan("Date")
	price := page.Text("Price")
	if price == "" {
		price = "Free"
	}
	return models.Event{
		ID:          page.ID,
		Name:        page.Title("Name of event"),
		StartDate:   start,
		EndDate:     end,
		Description: page.Text("Description"),
		Location:    page.Text("Location"),
		URL:         page.Text("URL"),
		Price:       price,
	}
}

func mapBlogPost(page *notion.Page) models.BlogPost {
	var image string
	if urls := page.FileURLs("Thumbnail Image"); len(urls) > 0 {
		image = urls[0]
	}
	publish := ""
	if !page.LastEditedTime.IsZero() {
		publish = page.LastEditedTime.Format("2006-01-02")
	}
	return models.BlogPost{
		ID:            page.ID,
		Title:         page.Title("Name"),
		Content:       page.Text("Description"),
		PublishDate:   publish,
		FeaturedImage: image,
	}
}
