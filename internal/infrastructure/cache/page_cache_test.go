package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Redis 無しでも全操作が no-op として安全に動くことを確認する。
func TestPageCacheWithoutRedisIsNoop(t *testing.T) {
	pages := NewPageCache(nil, time.Minute, nil)

	if pages.Enabled() {
		t.Error("cache without a client must report disabled")
	}
	if err := pages.Invalidate(context.Background(), "/"); err != nil {
		t.Errorf("Invalidate should be a no-op, got %v", err)
	}

	calls := 0
	handler := pages.Middleware(func(*http.Request) string { return "/" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusOK)
		}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/restaurants", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Errorf("disabled cache must always hit the handler, got %d calls", calls)
	}
}

func TestMiddlewareSkipsNonGetAndUnmappedPaths(t *testing.T) {
	pages := NewPageCache(nil, time.Minute, nil)
	called := false
	handler := pages.Middleware(func(*http.Request) string { return "" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/restaurants", nil))
	if !called {
		t.Error("unmapped requests must pass through")
	}
}

func TestPageKeyVariesWithQuery(t *testing.T) {
	base := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	filtered := httptest.NewRequest(http.MethodGet, "/api/restaurants?categories=cafe", nil)

	if pageKey("/", base) == pageKey("/", filtered) {
		t.Error("different query strings must map to different variants")
	}
	if pageKey("/", base) != pageKey("/", httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)) {
		t.Error("identical requests must map to the same key")
	}
}
