package application

import (
	"context"
	"errors"
	"fmt"

	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
)

// Sentinel errors shared by repositories and services so that handlers can
// answer with the right status without knowing the storage backend.
var (
	// ErrNotFound marks a lookup for a record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness-constraint violation (duplicate slug).
	ErrConflict = errors.New("conflict")
	// ErrValidation marks command input rejected by validation. Anything
	// else coming out of a mutation is a storage failure.
	ErrValidation = errors.New("invalid input")
)

// invalidf builds an ErrValidation error whose message is safe to return to
// the client verbatim.
func invalidf(format string, args ...any) error {
	return &validationError{message: fmt.Sprintf(format, args...)}
}

type validationError struct {
	message string
}

func (e *validationError) Error() string {
	return e.message
}

func (e *validationError) Is(target error) bool {
	return target == ErrValidation
}

// RestaurantRepository exposes admin CRUD on restaurants.
type RestaurantRepository interface {
	Find(ctx context.Context) ([]admindomain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*admindomain.Restaurant, error)
	Create(ctx context.Context, restaurant *admindomain.Restaurant) error
	Update(ctx context.Context, restaurant *admindomain.Restaurant) error
	Delete(ctx context.Context, id string) error
}

// DishRepository exposes admin CRUD on dishes.
type DishRepository interface {
	Find(ctx context.Context, filter DishFilter) ([]admindomain.Dish, error)
	FindByID(ctx context.Context, id string) (*admindomain.Dish, error)
	Create(ctx context.Context, dish *admindomain.Dish) error
	Update(ctx context.Context, dish *admindomain.Dish) error
	Delete(ctx context.Context, id string) error
	DeleteByRestaurant(ctx context.Context, restaurantID string) error
}

// BlobStore is the object-storage port holding uploaded review images.
// Put must fail when the key already exists; Remove is best-effort.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, keys []string) error
}

// PageInvalidator marks a cached public page stale so the next request
// recomputes it.
type PageInvalidator interface {
	Invalidate(ctx context.Context, path string) error
}

// DishFilter narrows admin dish listings.
type DishFilter struct {
	RestaurantID string
}

// RestaurantService describes admin restaurant use-cases.
type RestaurantService interface {
	List(ctx context.Context) ([]admindomain.Restaurant, error)
	Detail(ctx context.Context, id string) (*admindomain.Restaurant, error)
	Create(ctx context.Context, cmd UpsertRestaurantCommand) (*admindomain.Restaurant, error)
	Update(ctx context.Context, id string, cmd UpsertRestaurantCommand) (*admindomain.Restaurant, error)
	Delete(ctx context.Context, id string) error
}

// DishService describes admin dish use-cases.
type DishService interface {
	List(ctx context.Context, filter DishFilter) ([]admindomain.Dish, error)
	Detail(ctx context.Context, id string) (*admindomain.Dish, error)
	Create(ctx context.Context, cmd UpsertDishCommand) (*admindomain.Dish, error)
	Update(ctx context.Context, id string, cmd UpsertDishCommand) (*admindomain.Dish, error)
	Delete(ctx context.Context, id string) error
}

// UpsertRestaurantCommand contains inputs for restaurant create/update.
// Optional fields use pointers so a nil means "absent/cleared".
type UpsertRestaurantCommand struct {
	Name              string
	Slug              string
	Category          string
	CuisineType       string
	Rating            int
	ReviewText        string
	Address           string
	Latitude          float64
	Longitude         float64
	ImageURL          string
	Images            []string
	AmbianceRating    *int
	CleanlinessRating *int
	ServiceRating     *int
	ValueRating       *int
	WaitTimeRating    *int
	MenuReview        string
	VibeReview        string
	LocationReview    string
	Tips              string
}

// UpsertDishCommand contains inputs for dish create/update.
type UpsertDishCommand struct {
	RestaurantID  string
	Name          string
	ReviewText    string
	FoodRating    int
	ServiceRating int
	PriceRating   int
	Images        []string
}
