package admin

import (
	"time"

	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
)

type adminRestaurantResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Category          string    `json:"category"`
	CuisineType       string    `json:"cuisine_type,omitempty"`
	Rating            int       `json:"rating"`
	ReviewText        string    `json:"review_text"`
	Address           string    `json:"address"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	ImageURL          string    `json:"image_url,omitempty"`
	Images            []string  `json:"images,omitempty"`
	AmbianceRating    *int      `json:"ambiance_rating,omitempty"`
	CleanlinessRating *int      `json:"cleanliness_rating,omitempty"`
	ServiceRating     *int      `json:"service_rating,omitempty"`
	ValueRating       *int      `json:"value_rating,omitempty"`
	WaitTimeRating    *int      `json:"wait_time_rating,omitempty"`
	MenuReview        string    `json:"menu_review,omitempty"`
	VibeReview        string    `json:"vibe_review,omitempty"`
	LocationReview    string    `json:"location_review,omitempty"`
	Tips              string    `json:"tips,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type adminDishResponse struct {
	ID             string    `json:"id"`
	RestaurantID   string    `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	RestaurantSlug string    `json:"restaurant_slug,omitempty"`
	Name           string    `json:"name"`
	ReviewText     string    `json:"review_text"`
	FoodRating     int       `json:"food_rating"`
	ServiceRating  int       `json:"service_rating"`
	PriceRating    int       `json:"price_rating"`
	Images         []string  `json:"images,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// adminRestaurantDomainToResponse はドメインの Restaurant を Admin UI 用レスポンスへ変換する。
func adminRestaurantDomainToResponse(restaurant admindomain.Restaurant) adminRestaurantResponse {
	return adminRestaurantResponse{
		ID:                restaurant.ID,
		Name:              restaurant.Name,
		Slug:              restaurant.Slug.String(),
		Category:          restaurant.Category.String(),
		CuisineType:       restaurant.CuisineType,
		Rating:            restaurant.Rating.Int(),
		ReviewText:        restaurant.ReviewText,
		Address:           restaurant.Address,
		Latitude:          restaurant.Latitude,
		Longitude:         restaurant.Longitude,
		ImageURL:          restaurant.ImageURL,
		Images:            restaurant.Images,
		AmbianceRating:    restaurant.AmbianceRating,
		CleanlinessRating: restaurant.CleanlinessRating,
		ServiceRating:     restaurant.ServiceRating,
		ValueRating:       restaurant.ValueRating,
		WaitTimeRating:    restaurant.WaitTimeRating,
		MenuReview:        restaurant.MenuReview,
		VibeReview:        restaurant.VibeReview,
		LocationReview:    restaurant.LocationReview,
		Tips:              restaurant.Tips,
		CreatedAt:         restaurant.CreatedAt,
		UpdatedAt:         restaurant.UpdatedAt,
	}
}

// adminDishDomainToResponse はドメインの Dish を Admin UI 用レスポンスへ変換する。
func adminDishDomainToResponse(dish admindomain.Dish) adminDishResponse {
	return adminDishResponse{
		ID:             dish.ID,
		RestaurantID:   dish.RestaurantID,
		RestaurantName: dish.RestaurantName,
		RestaurantSlug: dish.RestaurantSlug,
		Name:           dish.Name,
		ReviewText:     dish.ReviewText,
		FoodRating:     dish.FoodRating.Int(),
		ServiceRating:  dish.ServiceRating.Int(),
		PriceRating:    dish.PriceRating.Int(),
		Images:         dish.Images,
		CreatedAt:      dish.CreatedAt,
		UpdatedAt:      dish.UpdatedAt,
	}
}
