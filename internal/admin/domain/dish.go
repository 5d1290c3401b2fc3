package domain

import "time"

// Dish is a sub-review nested under a Restaurant. The restaurant reference
// is immutable after creation.
type Dish struct {
	ID             string
	RestaurantID   string
	RestaurantName string
	RestaurantSlug string
	Name           string
	ReviewText     string
	FoodRating     Rating
	ServiceRating  Rating
	PriceRating    Rating
	Images         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
