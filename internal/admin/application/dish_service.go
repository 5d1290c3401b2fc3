package application

import (
	"context"
	"log"
	"strings"
	"time"

	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
)

type dishService struct {
	repo        DishRepository
	restaurants RestaurantRepository
	blobs       BlobStore
	pages       PageInvalidator
	logger      *log.Logger
}

// DishServiceConfig wires the ports the service depends on.
type DishServiceConfig struct {
	Repo        DishRepository
	Restaurants RestaurantRepository
	Blobs       BlobStore
	Pages       PageInvalidator
	Logger      *log.Logger
}

func NewDishService(cfg DishServiceConfig) DishService {
	return &dishService{
		repo:        cfg.Repo,
		restaurants: cfg.Restaurants,
		blobs:       cfg.Blobs,
		pages:       cfg.Pages,
		logger:      cfg.Logger,
	}
}

func (s *dishService) List(ctx context.Context, filter DishFilter) ([]admindomain.Dish, error) {
	return s.repo.Find(ctx, filter)
}

func (s *dishService) Detail(ctx context.Context, id string) (*admindomain.Dish, error) {
	return s.repo.FindByID(ctx, id)
}

// Create verifies the parent restaurant exists before inserting, and only
// invalidates that restaurant's detail page: dishes never appear in the
// listing or on the map.
func (s *dishService) Create(ctx context.Context, cmd UpsertDishCommand) (*admindomain.Dish, error) {
	restaurant, err := s.restaurants.FindByID(ctx, cmd.RestaurantID)
	if err != nil {
		return nil, err
	}

	dish, err := buildDishFromCommand("", cmd)
	if err != nil {
		return nil, err
	}
	dish.RestaurantName = restaurant.Name
	dish.RestaurantSlug = restaurant.Slug.String()
	now := time.Now().UTC()
	dish.CreatedAt = now
	dish.UpdatedAt = now
	if err := s.repo.Create(ctx, dish); err != nil {
		return nil, err
	}

	s.invalidate(ctx, RestaurantPagePath(restaurant.Slug.String()))
	return dish, nil
}

func (s *dishService) Update(ctx context.Context, id string, cmd UpsertDishCommand) (*admindomain.Dish, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The restaurant reference is immutable after creation.
	cmd.RestaurantID = existing.RestaurantID
	dish, err := buildDishFromCommand(id, cmd)
	if err != nil {
		return nil, err
	}
	dish.RestaurantName = existing.RestaurantName
	dish.RestaurantSlug = existing.RestaurantSlug
	dish.CreatedAt = existing.CreatedAt
	dish.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, dish); err != nil {
		return nil, err
	}

	if dish.RestaurantSlug != "" {
		s.invalidate(ctx, RestaurantPagePath(dish.RestaurantSlug))
	}
	return dish, nil
}

// Delete removes the dish's image blobs first (best-effort), then the
// record, then invalidates the owning restaurant's detail page.
func (s *dishService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if len(existing.Images) > 0 {
		if err := s.blobs.Remove(ctx, existing.Images); err != nil {
			s.logger.Printf("blob cleanup failed for dish %s (continuing with record delete): %v", id, err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if existing.RestaurantSlug != "" {
		s.invalidate(ctx, RestaurantPagePath(existing.RestaurantSlug))
	}
	return nil
}

func (s *dishService) invalidate(ctx context.Context, paths ...string) {
	for _, path := range paths {
		if err := s.pages.Invalidate(ctx, path); err != nil {
			s.logger.Printf("page invalidation failed path=%s err=%v", path, err)
		}
	}
}

func buildDishFromCommand(id string, cmd UpsertDishCommand) (*admindomain.Dish, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	reviewText := strings.TrimSpace(cmd.ReviewText)
	if reviewText == "" {
		return nil, invalidf("review_text is required")
	}

	// All three ratings are required at the storage boundary even though
	// one admin form historically captured only the food rating.
	foodRating, err := admindomain.NewRating(cmd.FoodRating)
	if err != nil {
		return nil, invalidf("food_rating must be between 1 and 5")
	}
	serviceRating, err := admindomain.NewRating(cmd.ServiceRating)
	if err != nil {
		return nil, invalidf("service_rating must be between 1 and 5")
	}
	priceRating, err := admindomain.NewRating(cmd.PriceRating)
	if err != nil {
		return nil, invalidf("price_rating must be between 1 and 5")
	}

	images, err := admindomain.NewImageKeyList(cmd.Images, admindomain.MaxImageCount)
	if err != nil {
		return nil, invalidf("%s", err)
	}

	return &admindomain.Dish{
		ID:            id,
		RestaurantID:  strings.TrimSpace(cmd.RestaurantID),
		Name:          name,
		ReviewText:    reviewText,
		FoodRating:    foodRating,
		ServiceRating: serviceRating,
		PriceRating:   priceRating,
		Images:        images,
	}, nil
}
