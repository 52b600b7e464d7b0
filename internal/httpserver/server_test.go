package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/veganmotoclub/catalog-api/internal/models"
	"github.com/veganmotoclub/catalog-api/internal/ratelimit"
	"github.com/veganmotoclub/catalog-api/internal/suggest"
)

type emptyContent struct{}

func (emptyContent) ListProducts(context.Context) []models.Product   { return nil }
func (emptyContent) ListEvents(context.Context) []models.Event       { return nil }
func (emptyContent) ListBlogPosts(context.Context) []models.BlogPost { return nil }
func (emptyContent) GetProduct(context.Context, string) (*models.Product, error) {
	return nil, errors.New("not found")
}
func (emptyContent) GetBlogPost(context.Context, string) (*models.BlogPost, error) {
	return nil, errors.New("not found")
}

type noopWriter struct{}

func (noopWriter) CreateSuggestion(context.Context, string, string) error { return nil }

func testDeps(ready func(ctx context.Context) error) Deps {
	return Deps{
		Store:   emptyContent{},
		Gate:    suggest.NewGate(ratelimit.NewMemory(5, time.Hour), noopWriter{}),
		Ready:   ready,
		SiteURL: "https://example.org",
	}
}

func TestHealth(t *testing.T) {
	r := NewRouter(testDeps(nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestReady_NoBackingStoreIsAlwaysReady(t *testing.T) {
	r := NewRouter(testDeps(nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestReady_BackingStoreFailure(t *testing.T) {
	fail := func(context.Context) error { return errors.New("db unreachable") }
	r := NewRouter(testDeps(fail))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	r := NewRouter(testDeps(nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}
