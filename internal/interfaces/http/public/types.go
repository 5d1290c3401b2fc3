package public

import (
	"time"

	publicdomain "github.com/mkt0301/food-reviews-services/api/internal/public/domain"
)

type restaurantResponse struct {
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
}

type dishResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ReviewText    string    `json:"review_text"`
	FoodRating    int       `json:"food_rating"`
	ServiceRating int       `json:"service_rating"`
	PriceRating   int       `json:"price_rating"`
	Images        []string  `json:"images,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type restaurantDetailResponse struct {
	restaurantResponse
	Dishes []dishResponse `json:"dishes"`
}

type mapPinResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Category  string  `json:"category"`
	Rating    int     `json:"rating"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func restaurantDomainToResponse(restaurant publicdomain.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:                restaurant.ID,
		Name:              restaurant.Name,
		Slug:              restaurant.Slug,
		Category:          restaurant.Category,
		CuisineType:       restaurant.CuisineType,
		Rating:            restaurant.Rating,
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
	}
}

func dishDomainToResponse(dish publicdomain.Dish) dishResponse {
	return dishResponse{
		ID:            dish.ID,
		Name:          dish.Name,
		ReviewText:    dish.ReviewText,
		FoodRating:    dish.FoodRating,
		ServiceRating: dish.ServiceRating,
		PriceRating:   dish.PriceRating,
		Images:        dish.Images,
		CreatedAt:     dish.CreatedAt,
	}
}
