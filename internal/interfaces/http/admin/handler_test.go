package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/mkt0301/food-reviews-services/api/internal/admin/application"
	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
	"github.com/mkt0301/food-reviews-services/api/internal/auth"
	"github.com/mkt0301/food-reviews-services/api/internal/geocode"
	adminhttp "github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/admin"
)

type stubRestaurantService struct {
	detail        *admindomain.Restaurant
	detailErr     error
	created       *admindomain.Restaurant
	createErr     error
	updated       *admindomain.Restaurant
	updateErr     error
	deleteErr     error
	lastCreateCmd adminapp.UpsertRestaurantCommand
	lastUpdateCmd adminapp.UpsertRestaurantCommand
}

func (s *stubRestaurantService) List(ctx context.Context) ([]admindomain.Restaurant, error) {
	if s.detail != nil {
		return []admindomain.Restaurant{*s.detail}, nil
	}
	return []admindomain.Restaurant{}, nil
}

func (s *stubRestaurantService) Detail(ctx context.Context, id string) (*admindomain.Restaurant, error) {
	return s.detail, s.detailErr
}

func (s *stubRestaurantService) Create(ctx context.Context, cmd adminapp.UpsertRestaurantCommand) (*admindomain.Restaurant, error) {
	s.lastCreateCmd = cmd
	return s.created, s.createErr
}

func (s *stubRestaurantService) Update(ctx context.Context, id string, cmd adminapp.UpsertRestaurantCommand) (*admindomain.Restaurant, error) {
	s.lastUpdateCmd = cmd
	return s.updated, s.updateErr
}

func (s *stubRestaurantService) Delete(ctx context.Context, id string) error {
	return s.deleteErr
}

type stubDishService struct {
	detail        *admindomain.Dish
	detailErr     error
	created       *admindomain.Dish
	createErr     error
	updated       *admindomain.Dish
	updateErr     error
	deleteErr     error
	lastCreateCmd adminapp.UpsertDishCommand
	lastUpdateCmd adminapp.UpsertDishCommand
}

func (s *stubDishService) List(ctx context.Context, filter adminapp.DishFilter) ([]admindomain.Dish, error) {
	return []admindomain.Dish{}, nil
}

func (s *stubDishService) Detail(ctx context.Context, id string) (*admindomain.Dish, error) {
	return s.detail, s.detailErr
}

func (s *stubDishService) Create(ctx context.Context, cmd adminapp.UpsertDishCommand) (*admindomain.Dish, error) {
	s.lastCreateCmd = cmd
	return s.created, s.createErr
}

func (s *stubDishService) Update(ctx context.Context, id string, cmd adminapp.UpsertDishCommand) (*admindomain.Dish, error) {
	s.lastUpdateCmd = cmd
	return s.updated, s.updateErr
}

func (s *stubDishService) Delete(ctx context.Context, id string) error {
	return s.deleteErr
}

type stubBlobStore struct {
	putCalls int
	putKey   string
	putType  string
	putSize  int
	putErr   error
}

func (b *stubBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	b.putCalls++
	b.putKey = key
	b.putType = contentType
	b.putSize = len(data)
	return b.putErr
}

func (b *stubBlobStore) Remove(ctx context.Context, keys []string) error {
	return nil
}

func sampleDomainRestaurant() *admindomain.Restaurant {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &admindomain.Restaurant{
		ID:          "65f000000000000000000001",
		Name:        "Sakura Kitchen",
		Slug:        admindomain.Slug("sakura-kitchen"),
		Category:    admindomain.CategoryRestaurant,
		CuisineType: "Japanese",
		Rating:      admindomain.Rating(5),
		ReviewText:  "Excellent omakase.",
		Address:     "123 Dundas St W",
		Latitude:    43.6532,
		Longitude:   -79.3832,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func sampleDomainDish() *admindomain.Dish {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &admindomain.Dish{
		ID:             "65f000000000000000000002",
		RestaurantID:   "65f000000000000000000001",
		RestaurantName: "Sakura Kitchen",
		RestaurantSlug: "sakura-kitchen",
		Name:           "Chirashi Don",
		ReviewText:     "Great tuna.",
		FoodRating:     admindomain.Rating(5),
		ServiceRating:  admindomain.Rating(4),
		PriceRating:    admindomain.Rating(4),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func newTestRouter(restaurants adminapp.RestaurantService, dishes adminapp.DishService, blobs adminapp.BlobStore) http.Handler {
	handler := adminhttp.NewHandler(adminhttp.Config{
		Logger:            log.New(io.Discard, "", 0),
		Tokens:            auth.NewService("secret"),
		RestaurantService: restaurants,
		DishService:       dishes,
		Blobs:             blobs,
		Geocoder:          geocode.NewClient("http://geocoder.invalid", time.Second),
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := auth.NewService("secret").CreateToken()
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}
	return &http.Cookie{Name: "admin_token", Value: token}
}

func postJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not a JSON error envelope: %v (%s)", err, rec.Body.String())
	}
	return payload["error"]
}

const validRestaurantJSON = `{
	"name": "Sakura Kitchen",
	"slug": "sakura-kitchen",
	"category": "restaurant",
	"rating": 5,
	"review_text": "Excellent omakase.",
	"address": "123 Dundas St W",
	"latitude": 43.6532,
	"longitude": -79.3832
}`

func TestLogin(t *testing.T) {
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPost, "/login", `{"password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
	if message := decodeError(t, rec); message != "Invalid password" {
		t.Errorf("expected Invalid password, got %q", message)
	}

	rec = postJSON(t, router, http.MethodPost, "/login", `{"password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("correct password: expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == "admin_token" {
			found = cookie
		}
	}
	if found == nil {
		t.Fatal("login should set the admin_token cookie")
	}
	if !found.HttpOnly {
		t.Error("admin cookie must be http-only")
	}
	if found.MaxAge != 7*24*60*60 {
		t.Errorf("cookie max-age should be 7 days, got %d", found.MaxAge)
	}
	if !auth.NewService("secret").VerifyToken(found.Value) {
		t.Error("cookie value should be a valid token")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPost, "/logout", ``)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "admin_token" {
			if cookie.MaxAge >= 0 || cookie.Value != "" {
				t.Errorf("logout should expire the cookie, got MaxAge=%d Value=%q", cookie.MaxAge, cookie.Value)
			}
			return
		}
	}
	t.Fatal("logout should emit an expiring admin_token cookie")
}

func TestProtectedRoutesRequireSessionToken(t *testing.T) {
	restaurants := &stubRestaurantService{created: sampleDomainRestaurant()}
	router := newTestRouter(restaurants, &stubDishService{}, &stubBlobStore{})

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/logout", ``},
		{http.MethodGet, "/restaurants", ``},
		{http.MethodPost, "/restaurants", validRestaurantJSON},
		{http.MethodPatch, "/restaurants/65f000000000000000000001", `{"rating":4}`},
		{http.MethodDelete, "/restaurants/65f000000000000000000001", ``},
		{http.MethodPost, "/dishes", `{}`},
		{http.MethodPost, "/upload", ``},
		{http.MethodGet, "/geocode?q=dundas", ``},
	}
	for _, tc := range requests {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without a token: expected 401, got %d", tc.method, tc.path, rec.Code)
			continue
		}
		if message := decodeError(t, rec); message != "Unauthorized" {
			t.Errorf("%s %s: unexpected message %q", tc.method, tc.path, message)
		}
	}
	if restaurants.lastCreateCmd.Name != "" {
		t.Error("rejected requests must never reach the service")
	}

	// A garbage token is no better than no token.
	req := httptest.NewRequest(http.MethodPost, "/restaurants", strings.NewReader(validRestaurantJSON))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "not-a-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", rec.Code)
	}
}

func TestRestaurantCreateSuccess(t *testing.T) {
	restaurants := &stubRestaurantService{created: sampleDomainRestaurant()}
	router := newTestRouter(restaurants, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPost, "/restaurants", validRestaurantJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if payload["slug"] != "sakura-kitchen" {
		t.Errorf("expected slug in response, got %v", payload["slug"])
	}
	if restaurants.lastCreateCmd.Name != "Sakura Kitchen" {
		t.Errorf("command not forwarded: %+v", restaurants.lastCreateCmd)
	}
}

func TestRestaurantCreateMissingFieldsInOrder(t *testing.T) {
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPost, "/restaurants", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if message := decodeError(t, rec); message != "Missing required field: name" {
		t.Errorf("first missing field should be name, got %q", message)
	}

	rec = postJSON(t, router, http.MethodPost, "/restaurants", `{"name":"Sakura Kitchen"}`)
	if message := decodeError(t, rec); message != "Missing required field: slug" {
		t.Errorf("next missing field should be slug, got %q", message)
	}
}

func TestRestaurantCreateValidationMessages(t *testing.T) {
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, &stubBlobStore{})

	body := strings.Replace(validRestaurantJSON, `"category": "restaurant"`, `"category": "bar"`, 1)
	rec := postJSON(t, router, http.MethodPost, "/restaurants", body)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec) != "Invalid category" {
		t.Errorf("invalid category: got %d %q", rec.Code, rec.Body.String())
	}

	for _, rating := range []string{"0", "6"} {
		body = strings.Replace(validRestaurantJSON, `"rating": 5`, `"rating": `+rating, 1)
		rec = postJSON(t, router, http.MethodPost, "/restaurants", body)
		if rec.Code != http.StatusBadRequest || decodeError(t, rec) != "Rating must be between 1 and 5" {
			t.Errorf("rating %s: got %d %q", rating, rec.Code, rec.Body.String())
		}
	}
}

func TestRestaurantCreateAcceptsStringCoordinates(t *testing.T) {
	restaurants := &stubRestaurantService{created: sampleDomainRestaurant()}
	router := newTestRouter(restaurants, &stubDishService{}, &stubBlobStore{})

	body := strings.Replace(validRestaurantJSON, `"latitude": 43.6532`, `"latitude": "43.6532"`, 1)
	rec := postJSON(t, router, http.MethodPost, "/restaurants", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("string latitude should be accepted, got %d: %s", rec.Code, rec.Body.String())
	}
	if restaurants.lastCreateCmd.Latitude != 43.6532 {
		t.Errorf("latitude not parsed from string: %v", restaurants.lastCreateCmd.Latitude)
	}
}

func TestRestaurantCreateSlugConflict(t *testing.T) {
	restaurants := &stubRestaurantService{createErr: adminapp.ErrConflict}
	router := newTestRouter(restaurants, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPost, "/restaurants", validRestaurantJSON)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if message := decodeError(t, rec); message != "A restaurant with this slug already exists" {
		t.Errorf("unexpected conflict message: %q", message)
	}
}

func TestRestaurantCreateStoreFailureIsInternal(t *testing.T) {
	restaurants := &stubRestaurantService{createErr: errors.New("mongo: connection refused to 10.0.0.5:27017")}
	router := newTestRouter(restaurants, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPost, "/restaurants", validRestaurantJSON)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	if message := decodeError(t, rec); message != "Failed to create restaurant" {
		t.Errorf("unexpected message: %q", message)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Errorf("driver text must not leak to the client: %s", rec.Body.String())
	}
}

func TestRestaurantCreateValidationErrorStays400(t *testing.T) {
	restaurants := &stubRestaurantService{createErr: fmt.Errorf("%w: too many images", adminapp.ErrValidation)}
	router := newTestRouter(restaurants, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPost, "/restaurants", validRestaurantJSON)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDishCreateStoreFailureIsInternal(t *testing.T) {
	dishes := &stubDishService{createErr: errors.New("mongo: server selection timeout")}
	router := newTestRouter(&stubRestaurantService{}, dishes, &stubBlobStore{})

	body := `{
		"restaurant_id": "65f000000000000000000001",
		"name": "Chirashi Don",
		"review_text": "Great tuna.",
		"food_rating": 5,
		"service_rating": 4,
		"price_rating": 4
	}`
	rec := postJSON(t, router, http.MethodPost, "/dishes", body)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	if message := decodeError(t, rec); message != "Failed to create dish" {
		t.Errorf("unexpected message: %q", message)
	}
}

func TestRestaurantUpdatePartialAndNullClear(t *testing.T) {
	existing := sampleDomainRestaurant()
	restaurants := &stubRestaurantService{detail: existing, updated: existing}
	router := newTestRouter(restaurants, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPatch, "/restaurants/"+existing.ID, `{"rating": 4, "cuisine_type": null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cmd := restaurants.lastUpdateCmd
	if cmd.Rating != 4 {
		t.Errorf("rating should be updated, got %d", cmd.Rating)
	}
	if cmd.CuisineType != "" {
		t.Errorf("explicit null should clear cuisine_type, got %q", cmd.CuisineType)
	}
	if cmd.Name != existing.Name || cmd.Slug != existing.Slug.String() || cmd.Address != existing.Address {
		t.Errorf("omitted fields must keep stored values: %+v", cmd)
	}
}

func TestRestaurantUpdateNotFound(t *testing.T) {
	restaurants := &stubRestaurantService{detailErr: adminapp.ErrNotFound}
	router := newTestRouter(restaurants, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPatch, "/restaurants/missing", `{"rating": 4}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if message := decodeError(t, rec); message != "Restaurant not found" {
		t.Errorf("unexpected message: %q", message)
	}
}

func TestRestaurantDelete(t *testing.T) {
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, &stubBlobStore{})
	rec := postJSON(t, router, http.MethodDelete, "/restaurants/65f000000000000000000001", ``)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("expected success envelope, got %s", rec.Body.String())
	}

	router = newTestRouter(&stubRestaurantService{deleteErr: adminapp.ErrNotFound}, &stubDishService{}, &stubBlobStore{})
	rec = postJSON(t, router, http.MethodDelete, "/restaurants/missing", ``)
	if rec.Code != http.StatusNotFound || decodeError(t, rec) != "Restaurant not found" {
		t.Errorf("expected 404 Restaurant not found, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestDishCreateValidation(t *testing.T) {
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPost, "/dishes", `{}`)
	if message := decodeError(t, rec); message != "Missing required field: restaurant_id" {
		t.Errorf("expected restaurant_id first, got %q", message)
	}

	body := `{
		"restaurant_id": "65f000000000000000000001",
		"name": "Chirashi Don",
		"review_text": "Great tuna.",
		"food_rating": 7,
		"service_rating": 4,
		"price_rating": 4
	}`
	rec = postJSON(t, router, http.MethodPost, "/dishes", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if message := decodeError(t, rec); message != "food_rating must be between 1 and 5" {
		t.Errorf("unexpected message: %q", message)
	}
}

func TestDishCreateParentNotFound(t *testing.T) {
	dishes := &stubDishService{createErr: adminapp.ErrNotFound}
	router := newTestRouter(&stubRestaurantService{}, dishes, &stubBlobStore{})

	body := `{
		"restaurant_id": "65f000000000000000000009",
		"name": "Chirashi Don",
		"review_text": "Great tuna.",
		"food_rating": 5,
		"service_rating": 4,
		"price_rating": 4
	}`
	rec := postJSON(t, router, http.MethodPost, "/dishes", body)
	if rec.Code != http.StatusNotFound || decodeError(t, rec) != "Restaurant not found" {
		t.Errorf("expected 404 Restaurant not found, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestDishUpdateRatingOutOfRange(t *testing.T) {
	dishes := &stubDishService{detail: sampleDomainDish()}
	router := newTestRouter(&stubRestaurantService{}, dishes, &stubBlobStore{})

	rec := postJSON(t, router, http.MethodPatch, "/dishes/"+dishes.detail.ID, `{"food_rating": 7}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if message := decodeError(t, rec); message != "food_rating must be between 1 and 5" {
		t.Errorf("unexpected message: %q", message)
	}
}

func multipartUpload(t *testing.T, filename, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart failed: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte{0xAB}, size)); err != nil {
		t.Fatalf("part write failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer close failed: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadSuccess(t *testing.T) {
	blobs := &stubBlobStore{}
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, blobs)

	body, contentType := multipartUpload(t, "My Fancy Photo!.PNG", "image/png", 1024)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	keyPattern := regexp.MustCompile(`^\d+-my-fancy-photo\.png$`)
	if !keyPattern.MatchString(payload["path"]) {
		t.Errorf("unexpected upload key: %q", payload["path"])
	}
	if blobs.putCalls != 1 || blobs.putType != "image/png" || blobs.putSize != 1024 {
		t.Errorf("blob store not called as expected: %+v", blobs)
	}
}

func TestUploadRejectsInvalidType(t *testing.T) {
	blobs := &stubBlobStore{}
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, blobs)

	body, contentType := multipartUpload(t, "notes.pdf", "application/pdf", 128)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if message := decodeError(t, rec); message != "Invalid file type. Allowed: JPEG, PNG, WebP, GIF" {
		t.Errorf("unexpected message: %q", message)
	}
	if blobs.putCalls != 0 {
		t.Error("rejected upload must never reach the blob store")
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	blobs := &stubBlobStore{}
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, blobs)

	body, contentType := multipartUpload(t, "big.jpg", "image/jpeg", 6<<20)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if message := decodeError(t, rec); message != "File too large. Maximum size is 5MB" {
		t.Errorf("unexpected message: %q", message)
	}
	if blobs.putCalls != 0 {
		t.Error("oversized upload must never reach the blob store")
	}
}

func TestUploadFailureReturns500(t *testing.T) {
	blobs := &stubBlobStore{putErr: io.ErrUnexpectedEOF}
	router := newTestRouter(&stubRestaurantService{}, &stubDishService{}, blobs)

	body, contentType := multipartUpload(t, "photo.jpg", "image/jpeg", 512)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(adminCookie(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if message := decodeError(t, rec); message != "Upload failed" {
		t.Errorf("unexpected message: %q", message)
	}
}
