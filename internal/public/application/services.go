package application

import (
	"context"
	"errors"

	publicdomain "github.com/mkt0301/food-reviews-services/api/internal/public/domain"
)

// ErrNotFound marks a lookup for a restaurant that does not exist.
var ErrNotFound = errors.New("restaurant not found")

// RestaurantFilter expresses the public gallery filters.
type RestaurantFilter struct {
	// Categories is set-membership; empty means all categories.
	Categories []string
	// Cuisine matches cuisine_type case-insensitively; empty means any.
	Cuisine string
	// MinRating is a lower bound in [1,5]; zero means any rating.
	MinRating int
}

// RestaurantRepository exposes the read-side queries.
type RestaurantRepository interface {
	Find(ctx context.Context, filter RestaurantFilter) ([]publicdomain.Restaurant, error)
	FindBySlug(ctx context.Context, slug string) (*publicdomain.RestaurantDetail, error)
	Cuisines(ctx context.Context) ([]string, error)
	MapPins(ctx context.Context) ([]publicdomain.MapPin, error)
}

// RestaurantQueryService describes public read use-cases.
type RestaurantQueryService interface {
	List(ctx context.Context, filter RestaurantFilter) ([]publicdomain.Restaurant, error)
	Detail(ctx context.Context, slug string) (*publicdomain.RestaurantDetail, error)
	Cuisines(ctx context.Context) ([]string, error)
	MapPins(ctx context.Context) ([]publicdomain.MapPin, error)
}
