package public_test

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	publichttp "github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/public"
	publicapp "github.com/mkt0301/food-reviews-services/api/internal/public/application"
	publicdomain "github.com/mkt0301/food-reviews-services/api/internal/public/domain"
)

type stubQueryService struct {
	restaurants []publicdomain.Restaurant
	listErr     error
	lastFilter  publicapp.RestaurantFilter
	detail      *publicdomain.RestaurantDetail
	detailErr   error
	cuisines    []string
	pins        []publicdomain.MapPin
}

func (s *stubQueryService) List(ctx context.Context, filter publicapp.RestaurantFilter) ([]publicdomain.Restaurant, error) {
	s.lastFilter = filter
	return s.restaurants, s.listErr
}

func (s *stubQueryService) Detail(ctx context.Context, slug string) (*publicdomain.RestaurantDetail, error) {
	return s.detail, s.detailErr
}

func (s *stubQueryService) Cuisines(ctx context.Context) ([]string, error) {
	return s.cuisines, nil
}

func (s *stubQueryService) MapPins(ctx context.Context) ([]publicdomain.MapPin, error) {
	return s.pins, nil
}

func newPublicRouter(queries publicapp.RestaurantQueryService) http.Handler {
	handler := publichttp.NewHandler(publichttp.Config{
		Logger:  log.New(io.Discard, "", 0),
		Queries: queries,
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func sampleRestaurant() publicdomain.Restaurant {
	return publicdomain.Restaurant{
		ID:          "65f000000000000000000001",
		Name:        "Sakura Kitchen",
		Slug:        "sakura-kitchen",
		Category:    "restaurant",
		CuisineType: "Japanese",
		Rating:      5,
		ReviewText:  "Excellent omakase.",
		Address:     "123 Dundas St W",
		Latitude:    43.6532,
		Longitude:   -79.3832,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRestaurantListReturnsBareArray(t *testing.T) {
	queries := &stubQueryService{restaurants: []publicdomain.Restaurant{sampleRestaurant()}}
	router := newPublicRouter(queries)

	rec := get(t, router, "/restaurants")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("list should be a bare JSON array: %v (%s)", err, rec.Body.String())
	}
	if len(payload) != 1 {
		t.Fatalf("expected 1 item, got %d", len(payload))
	}
	item := payload[0]
	if item["slug"] != "sakura-kitchen" || item["cuisine_type"] != "Japanese" || item["review_text"] != "Excellent omakase." {
		t.Errorf("snake_case fields missing: %v", item)
	}
}

func TestRestaurantListEmptyIsArrayNotNull(t *testing.T) {
	router := newPublicRouter(&stubQueryService{})
	rec := get(t, router, "/restaurants")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty list should serialize as [], got %s", body)
	}
}

func TestRestaurantListFilterParsing(t *testing.T) {
	queries := &stubQueryService{}
	router := newPublicRouter(queries)

	get(t, router, "/restaurants?categories=cafe,bubble_tea&cuisine=Japanese&rating=4")

	filter := queries.lastFilter
	if len(filter.Categories) != 2 || filter.Categories[0] != "cafe" || filter.Categories[1] != "bubble_tea" {
		t.Errorf("categories not parsed: %v", filter.Categories)
	}
	if filter.Cuisine != "Japanese" {
		t.Errorf("cuisine not parsed: %q", filter.Cuisine)
	}
	if filter.MinRating != 4 {
		t.Errorf("rating not parsed: %d", filter.MinRating)
	}
}

func TestRestaurantListIgnoresGarbageRating(t *testing.T) {
	queries := &stubQueryService{}
	router := newPublicRouter(queries)

	rec := get(t, router, "/restaurants?rating=banana")
	if rec.Code != http.StatusOK {
		t.Fatalf("garbage rating should not fail the request, got %d", rec.Code)
	}
	if queries.lastFilter.MinRating != 0 {
		t.Errorf("garbage rating should mean no filter, got %d", queries.lastFilter.MinRating)
	}
}

func TestRestaurantDetailIncludesDishes(t *testing.T) {
	queries := &stubQueryService{detail: &publicdomain.RestaurantDetail{
		Restaurant: sampleRestaurant(),
		Dishes: []publicdomain.Dish{{
			ID:            "65f000000000000000000002",
			Name:          "Chirashi Don",
			ReviewText:    "Great tuna.",
			FoodRating:    5,
			ServiceRating: 4,
			PriceRating:   4,
		}},
	}}
	router := newPublicRouter(queries)

	rec := get(t, router, "/restaurants/sakura-kitchen")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	dishes, ok := payload["dishes"].([]any)
	if !ok || len(dishes) != 1 {
		t.Fatalf("expected one dish, got %v", payload["dishes"])
	}
	dish := dishes[0].(map[string]any)
	if dish["food_rating"] != float64(5) || dish["name"] != "Chirashi Don" {
		t.Errorf("dish fields wrong: %v", dish)
	}
}

func TestRestaurantDetailNotFound(t *testing.T) {
	router := newPublicRouter(&stubQueryService{detailErr: publicapp.ErrNotFound})

	rec := get(t, router, "/restaurants/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload["error"] != "Restaurant not found" {
		t.Errorf("unexpected message: %q", payload["error"])
	}
}

func TestCuisineListEmptyIsArray(t *testing.T) {
	router := newPublicRouter(&stubQueryService{})
	rec := get(t, router, "/cuisines")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty cuisine list should serialize as [], got %s", body)
	}
}

func TestMapPayload(t *testing.T) {
	queries := &stubQueryService{pins: []publicdomain.MapPin{{
		ID:        "65f000000000000000000001",
		Name:      "Sakura Kitchen",
		Slug:      "sakura-kitchen",
		Category:  "restaurant",
		Rating:    5,
		Latitude:  43.6532,
		Longitude: -79.3832,
	}}}
	router := newPublicRouter(queries)

	rec := get(t, router, "/map")
	var payload []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected 1 pin, got %d", len(payload))
	}
	pin := payload[0]
	if pin["slug"] != "sakura-kitchen" || pin["latitude"] != 43.6532 {
		t.Errorf("pin fields wrong: %v", pin)
	}
	if _, ok := pin["review_text"]; ok {
		t.Error("map pins must not carry full review text")
	}
}
