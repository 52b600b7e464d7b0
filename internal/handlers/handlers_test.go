package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/veganmotoclub/catalog-api/internal/models"
	"github.com/veganmotoclub/catalog-api/internal/ratelimit"
	"github.com/veganmotoclub/catalog-api/internal/suggest"
)

type stubContent struct {
	products []models.Product
	events   []models.Event
	posts    []models.BlogPost
}

func (s *stubContent) ListProducts(context.Context) []models.Product  { return s.products }
func (s *stubContent) ListEvents(context.Context) []models.Event      { return s.events }
func (s *stubContent) ListBlogPosts(context.Context) []models.BlogPost { return s.posts }

func (s *stubContent) GetProduct(_ context.Context, id string) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (s *stubContent) GetBlogPost(_ context.Context, id string) (*models.BlogPost, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return &s.posts[i], nil
		}
	}
	return nil, errors.New("not found")
}

type stubWriter struct {
	calls int
	err   error
}

func (s *stubWriter) CreateSuggestion(context.Context, string, string) error {
	s.calls++
	return s.err
}

func newRouter(store ContentStore, gate *suggest.Gate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterProductRoutes(r, store)
	RegisterEventRoutes(r, store)
	RegisterBlogRoutes(r, store)
	if gate != nil {
		RegisterSuggestRoutes(r, gate)
	}
	RegisterSitemapRoutes(r, store, "https://example.org")
	return r
}

func catalogFixture() *stubContent {
	return &stubContent{
		products: []models.Product{
			{ID: "1", Name: "Glove A", Brand: "Acme", Price: decimal.NewFromInt(80)},
			{ID: "2", Name: "Glove B", Brand: "Acme", Price: decimal.NewFromInt(40)},
			{ID: "3", Name: "Jacket C", Brand: "Zed", Price: decimal.NewFromInt(40)},
		},
	}
}

func getJSON(t *testing.T, r *gin.Engine, path string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
		}
	}
	return w.Code
}

func TestListProducts_FiltersSortsAndPaginates(t *testing.T) {
	r := newRouter(catalogFixture(), nil)

	var got productListResponse
	if code := getJSON(t, r, "/products?brand=Acme", &got); code != http.StatusOK {
		t.Fatalf("status=%d", code)
	}
	if got.Total != 2 || len(got.Items) != 2 {
		t.Fatalf("total=%d items=%d", got.Total, len(got.Items))
	}
	// Price ascending: Glove B ($40) before Glove A ($80).
	if got.Items[0].Name != "Glove B" || got.Items[1].Name != "Glove A" {
		t.Fatalf("order: %s, %s", got.Items[0].Name, got.Items[1].Name)
	}
	if got.Filters.Brand != "Acme" {
		t.Errorf("filters not echoed: %+v", got.Filters)
	}
	// Facets cover the full list, not just the filtered subset.
	if len(got.Facets.Brands) != 2 {
		t.Errorf("facets=%+v", got.Facets)
	}
}

func TestListProducts_SearchScenario(t *testing.T) {
	r := newRouter(catalogFixture(), nil)

	var got productListResponse
	getJSON(t, r, "/products?search=jacket", &got)
	if got.Total != 1 || got.Items[0].Name != "Jacket C" {
		t.Fatalf("got %+v", got.Items)
	}
}

func TestListProducts_OutOfRangePageIsEmptyNotError(t *testing.T) {
	r := newRouter(catalogFixture(), nil)

	var got productListResponse
	if code := getJSON(t, r, "/products?page=99&page_size=10", &got); code != http.StatusOK {
		t.Fatalf("status=%d", code)
	}
	if got.Items == nil || len(got.Items) != 0 {
		t.Fatalf("items=%#v", got.Items)
	}
	if got.Total != 3 {
		t.Fatalf("total=%d", got.Total)
	}
}

func TestListProducts_RepeatableFacetParams(t *testing.T) {
	store := catalogFixture()
	store.products[0].RidingStyle = []string{"Touring"}
	store.products[2].RidingStyle = []string{"Track"}
	r := newRouter(store, nil)

	var got productListResponse
	getJSON(t, r, "/products?style=Touring&style=Track", &got)
	if got.Total != 2 {
		t.Fatalf("total=%d", got.Total)
	}
	if !strings.Contains(strings.Join(got.Filters.RidingStyles, ","), "Touring") {
		t.Errorf("filters=%+v", got.Filters)
	}
}

func TestProductResponses_CarryDisplayPrice(t *testing.T) {
	r := newRouter(catalogFixture(), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?brand=Acme", nil))
	if !strings.Contains(w.Body.String(), `"display_price":"$40"`) {
		t.Fatalf("list body missing display price: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	if !strings.Contains(w.Body.String(), `"display_price":"$80"`) {
		t.Fatalf("detail body missing display price: %s", w.Body.String())
	}
}

func TestGetProduct_OKAndNotFound(t *testing.T) {
	r := newRouter(catalogFixture(), nil)

	var p models.Product
	if code := getJSON(t, r, "/products/1", &p); code != http.StatusOK || p.Name != "Glove A" {
		t.Fatalf("code=%d product=%+v", code, p)
	}
	if code := getJSON(t, r, "/products/nope", nil); code != http.StatusNotFound {
		t.Fatalf("code=%d", code)
	}
}

func TestEventsAndBlog_EmptyListsRenderAsEmpty(t *testing.T) {
	r := newRouter(&stubContent{}, nil)

	var got struct {
		Items []models.Event `json:"items"`
	}
	if code := getJSON(t, r, "/events", &got); code != http.StatusOK {
		t.Fatalf("code=%d", code)
	}
	if code := getJSON(t, r, "/blog", nil); code != http.StatusOK {
		t.Fatalf("code=%d", code)
	}
	if code := getJSON(t, r, "/blog/nope", nil); code != http.StatusNotFound {
		t.Fatalf("code=%d", code)
	}
}

func TestSitemap_ListsStaticAndContentURLs(t *testing.T) {
	store := catalogFixture()
	store.products[0].LastEdited = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	store.posts = []models.BlogPost{{ID: "post-1", Title: "Hello"}}
	r := newRouter(store, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"https://example.org/products",
		"https://example.org/products/1",
		"https://example.org/blog/post-1",
		"<lastmod>2026-05-01</lastmod>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

func postSuggest(t *testing.T, r *gin.Engine, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/suggest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSuggest_StatusMapping(t *testing.T) {
	w := &stubWriter{}
	gate := suggest.NewGate(ratelimit.NewMemory(5, time.Hour), w)
	r := newRouter(&stubContent{}, gate)

	// Accepted → 200 {success:true}.
	res := postSuggest(t, r, `{"url":"https://example.com/product","elapsed_ms":5000}`, nil)
	if res.Code != http.StatusOK || !strings.Contains(res.Body.String(), `"success":true`) {
		t.Fatalf("code=%d body=%s", res.Code, res.Body.String())
	}
	if w.calls != 1 {
		t.Fatalf("writes=%d", w.calls)
	}

	// Honeypot → identical 200, no write.
	res = postSuggest(t, r, `{"url":"https://example.com","website":"bot","elapsed_ms":5000}`, nil)
	if res.Code != http.StatusOK || !strings.Contains(res.Body.String(), `"success":true`) {
		t.Fatalf("code=%d body=%s", res.Code, res.Body.String())
	}
	if w.calls != 1 {
		t.Fatalf("honeypot must not write; writes=%d", w.calls)
	}

	// Bad URL → 400 {error}.
	res = postSuggest(t, r, `{"url":"not a url","elapsed_ms":5000}`, nil)
	if res.Code != http.StatusBadRequest || !strings.Contains(res.Body.String(), "error") {
		t.Fatalf("code=%d body=%s", res.Code, res.Body.String())
	}

	// Malformed JSON → 400.
	res = postSuggest(t, r, `{"url":`, nil)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", res.Code)
	}
}

func TestSuggest_RateLimitPerForwardedAddress(t *testing.T) {
	gate := suggest.NewGate(ratelimit.NewMemory(5, time.Hour), &stubWriter{})
	r := newRouter(&stubContent{}, gate)

	hdr := map[string]string{"X-Forwarded-For": "9.9.9.9, 10.0.0.1"}
	for i := 1; i <= 5; i++ {
		res := postSuggest(t, r, `{"url":"https://example.com","elapsed_ms":5000}`, hdr)
		if res.Code != http.StatusOK {
			t.Fatalf("request %d: code=%d", i, res.Code)
		}
	}
	res := postSuggest(t, r, `{"url":"https://example.com","elapsed_ms":5000}`, hdr)
	if res.Code != http.StatusTooManyRequests {
		t.Fatalf("6th request: code=%d body=%s", res.Code, res.Body.String())
	}

	// A different address still has budget.
	res = postSuggest(t, r, `{"url":"https://example.com","elapsed_ms":5000}`, map[string]string{"X-Real-IP": "8.8.8.8"})
	if res.Code != http.StatusOK {
		t.Fatalf("other address: code=%d", res.Code)
	}
}

func TestSuggest_WriteFailureIs500(t *testing.T) {
	gate := suggest.NewGate(ratelimit.NewMemory(5, time.Hour), &stubWriter{err: errors.New("down")})
	r := newRouter(&stubContent{}, gate)

	res := postSuggest(t, r, `{"url":"https://example.com","elapsed_ms":5000}`, nil)
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", res.Code)
	}
}

func TestClientIP_FallbackChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		hdr  map[string]string
		want string
	}{
		{"forwarded first entry", map[string]string{"X-Forwarded-For": " 1.1.1.1 , 2.2.2.2"}, "1.1.1.1"},
		{"real ip fallback", map[string]string{"X-Real-IP": "3.3.3.3"}, "3.3.3.3"},
		{"empty forwarded falls through", map[string]string{"X-Forwarded-For": " ", "X-Real-IP": "4.4.4.4"}, "4.4.4.4"},
		{"no headers", nil, "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/suggest", nil)
			for k, v := range tc.hdr {
				c.Request.Header.Set(k, v)
			}
			if got := clientIP(c); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
