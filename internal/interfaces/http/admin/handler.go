package admin

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/mkt0301/food-reviews-services/api/internal/admin/application"
	"github.com/mkt0301/food-reviews-services/api/internal/geocode"
	"github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/common"
)

// TokenIssuer issues and verifies admin session tokens.
type TokenIssuer interface {
	common.TokenVerifier
	CreateToken() (string, error)
	VerifyPassword(password string) bool
}

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger            *log.Logger
	tokens            TokenIssuer
	restaurantService adminapp.RestaurantService
	dishService       adminapp.DishService
	blobs             adminapp.BlobStore
	geocoder          *geocode.Client
	cookieSecure      bool
}

// Config provides dependencies for Handler.
type Config struct {
	Logger            *log.Logger
	Tokens            TokenIssuer
	RestaurantService adminapp.RestaurantService
	DishService       adminapp.DishService
	Blobs             adminapp.BlobStore
	Geocoder          *geocode.Client
	CookieSecure      bool
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:            cfg.Logger,
		tokens:            cfg.Tokens,
		restaurantService: cfg.RestaurantService,
		dishService:       cfg.DishService,
		blobs:             cfg.Blobs,
		geocoder:          cfg.Geocoder,
		cookieSecure:      cfg.CookieSecure,
	}
}

// Register mounts admin routes onto router. Only login and verify are
// reachable without a session token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.loginHandler())
	r.Get("/verify", h.verifyHandler())

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/logout", h.logoutHandler())
		r.Get("/restaurants", h.restaurantListHandler())
		r.Post("/restaurants", h.restaurantCreateHandler())
		r.Get("/restaurants/{id}", h.restaurantDetailHandler())
		r.Patch("/restaurants/{id}", h.restaurantUpdateHandler())
		r.Delete("/restaurants/{id}", h.restaurantDeleteHandler())
		r.Get("/dishes", h.dishListHandler())
		r.Post("/dishes", h.dishCreateHandler())
		r.Get("/dishes/{id}", h.dishDetailHandler())
		r.Patch("/dishes/{id}", h.dishUpdateHandler())
		r.Delete("/dishes/{id}", h.dishDeleteHandler())
		r.Post("/upload", h.uploadHandler())
		r.Get("/geocode", h.geocodeHandler())
	})
}

// requireAuth re-checks the session token on every protected route, so the
// handlers stay safe even when mounted without the outer gate.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !common.Authorized(r, h.tokens) {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
