package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
)

// Public page paths invalidated on mutation. They name the rendered pages
// of the site, not API routes.
const (
	ListingPagePath = "/"
	MapPagePath     = "/map"
)

// RestaurantPagePath returns the detail page path for a slug.
func RestaurantPagePath(slug string) string {
	return "/restaurant/" + slug
}

type restaurantService struct {
	repo   RestaurantRepository
	dishes DishRepository
	blobs  BlobStore
	pages  PageInvalidator
	logger *log.Logger
}

// RestaurantServiceConfig wires the ports the service depends on.
type RestaurantServiceConfig struct {
	Repo   RestaurantRepository
	Dishes DishRepository
	Blobs  BlobStore
	Pages  PageInvalidator
	Logger *log.Logger
}

func NewRestaurantService(cfg RestaurantServiceConfig) RestaurantService {
	return &restaurantService{
		repo:   cfg.Repo,
		dishes: cfg.Dishes,
		blobs:  cfg.Blobs,
		pages:  cfg.Pages,
		logger: cfg.Logger,
	}
}

func (s *restaurantService) List(ctx context.Context) ([]admindomain.Restaurant, error) {
	return s.repo.Find(ctx)
}

func (s *restaurantService) Detail(ctx context.Context, id string) (*admindomain.Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *restaurantService) Create(ctx context.Context, cmd UpsertRestaurantCommand) (*admindomain.Restaurant, error) {
	restaurant, err := buildRestaurantFromCommand("", cmd)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	// A new record can surface in any unfiltered listing and on the map.
	s.invalidate(ctx, ListingPagePath, MapPagePath)
	return restaurant, nil
}

func (s *restaurantService) Update(ctx context.Context, id string, cmd UpsertRestaurantCommand) (*admindomain.Restaurant, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant, err := buildRestaurantFromCommand(id, cmd)
	if err != nil {
		return nil, err
	}
	restaurant.CreatedAt = existing.CreatedAt
	restaurant.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	// Listing and map pages are invalidated on every update rather than
	// only on rating/category changes: staleness is worse than an extra
	// recompute.
	paths := []string{ListingPagePath, MapPagePath, RestaurantPagePath(existing.Slug.String())}
	if restaurant.Slug != existing.Slug {
		paths = append(paths, RestaurantPagePath(restaurant.Slug.String()))
	}
	s.invalidate(ctx, paths...)
	return restaurant, nil
}

// Delete removes the record and its stored images. Blob removal runs first
// and is best-effort: an orphaned blob is preferable to a dangling
// reference. Dishes under the restaurant are cascaded, records and blobs
// both, because a dish without its restaurant is unreachable from any page.
func (s *restaurantService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	keys := existing.BlobKeys()
	dishes, err := s.dishes.Find(ctx, DishFilter{RestaurantID: id})
	if err != nil {
		return fmt.Errorf("list dishes for cascade: %w", err)
	}
	for _, dish := range dishes {
		keys = append(keys, dish.Images...)
	}

	if len(keys) > 0 {
		if err := s.blobs.Remove(ctx, keys); err != nil {
			s.logger.Printf("blob cleanup failed for restaurant %s (continuing with record delete): %v", id, err)
		}
	}

	if len(dishes) > 0 {
		if err := s.dishes.DeleteByRestaurant(ctx, id); err != nil {
			return fmt.Errorf("cascade dish delete: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, ListingPagePath, MapPagePath, RestaurantPagePath(existing.Slug.String()))
	return nil
}

func (s *restaurantService) invalidate(ctx context.Context, paths ...string) {
	for _, path := range paths {
		if err := s.pages.Invalidate(ctx, path); err != nil {
			s.logger.Printf("page invalidation failed path=%s err=%v", path, err)
		}
	}
}

func buildRestaurantFromCommand(id string, cmd UpsertRestaurantCommand) (*admindomain.Restaurant, error) {
	slug, err := admindomain.NewSlug(cmd.Slug)
	if err != nil {
		return nil, invalidf("%s", err)
	}
	category, err := admindomain.NewCategory(cmd.Category)
	if err != nil {
		return nil, invalidf("%s", err)
	}
	rating, err := admindomain.NewRating(cmd.Rating)
	if err != nil {
		return nil, invalidf("%s", err)
	}
	coords, err := admindomain.NewCoordinates(cmd.Latitude, cmd.Longitude)
	if err != nil {
		return nil, invalidf("%s", err)
	}
	images, err := admindomain.NewImageKeyList(cmd.Images, admindomain.MaxImageCount)
	if err != nil {
		return nil, invalidf("%s", err)
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	reviewText := strings.TrimSpace(cmd.ReviewText)
	if reviewText == "" {
		return nil, invalidf("review_text is required")
	}
	address := strings.TrimSpace(cmd.Address)
	if address == "" {
		return nil, invalidf("address is required")
	}

	subRatings := []*int{cmd.AmbianceRating, cmd.CleanlinessRating, cmd.ServiceRating, cmd.ValueRating, cmd.WaitTimeRating}
	validated := make([]*int, len(subRatings))
	for i, value := range subRatings {
		checked, err := admindomain.NewOptionalRating(value)
		if err != nil {
			return nil, invalidf("%s", err)
		}
		validated[i] = checked
	}

	return &admindomain.Restaurant{
		ID:                id,
		Name:              name,
		Slug:              slug,
		Category:          category,
		CuisineType:       strings.TrimSpace(cmd.CuisineType),
		Rating:            rating,
		ReviewText:        reviewText,
		Address:           address,
		Latitude:          coords.Latitude,
		Longitude:         coords.Longitude,
		ImageURL:          strings.TrimSpace(cmd.ImageURL),
		Images:            images,
		AmbianceRating:    validated[0],
		CleanlinessRating: validated[1],
		ServiceRating:     validated[2],
		ValueRating:       validated[3],
		WaitTimeRating:    validated[4],
		MenuReview:        strings.TrimSpace(cmd.MenuReview),
		VibeReview:        strings.TrimSpace(cmd.VibeReview),
		LocationReview:    strings.TrimSpace(cmd.LocationReview),
		Tips:              strings.TrimSpace(cmd.Tips),
	}, nil
}
