package application

import (
	"context"

	publicdomain "github.com/mkt0301/food-reviews-services/api/internal/public/domain"
)

// restaurantQueryService implements RestaurantQueryService.
type restaurantQueryService struct {
	repo RestaurantRepository
}

func NewRestaurantQueryService(repo RestaurantRepository) RestaurantQueryService {
	return &restaurantQueryService{repo: repo}
}

func (s *restaurantQueryService) List(ctx context.Context, filter RestaurantFilter) ([]publicdomain.Restaurant, error) {
	if filter.MinRating < 0 || filter.MinRating > 5 {
		filter.MinRating = 0
	}
	return s.repo.Find(ctx, filter)
}

func (s *restaurantQueryService) Detail(ctx context.Context, slug string) (*publicdomain.RestaurantDetail, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *restaurantQueryService) Cuisines(ctx context.Context) ([]string, error) {
	return s.repo.Cuisines(ctx)
}

func (s *restaurantQueryService) MapPins(ctx context.Context) ([]publicdomain.MapPin, error) {
	return s.repo.MapPins(ctx)
}
