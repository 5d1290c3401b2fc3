package public

import (
	"log"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/mkt0301/food-reviews-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger  *log.Logger
	queries publicapp.RestaurantQueryService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger  *log.Logger
	Queries publicapp.RestaurantQueryService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:  cfg.Logger,
		queries: cfg.Queries,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/restaurants", h.restaurantListHandler())
	r.Get("/restaurants/{slug}", h.restaurantDetailHandler())
	r.Get("/cuisines", h.cuisineListHandler())
	r.Get("/map", h.mapHandler())
}
