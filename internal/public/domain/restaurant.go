package domain

import "time"

// Restaurant is the read-side projection served to the public site.
type Restaurant struct {
	ID                string
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
	CreatedAt         time.Time
}

// Dish is a nested sub-review shown on the restaurant detail page.
type Dish struct {
	ID            string
	Name          string
	ReviewText    string
	FoodRating    int
	ServiceRating int
	PriceRating   int
	Images        []string
	CreatedAt     time.Time
}

// RestaurantDetail bundles a restaurant with its dishes, newest-first.
type RestaurantDetail struct {
	Restaurant Restaurant
	Dishes     []Dish
}

// MapPin is the reduced field set the map page renders.
type MapPin struct {
	ID        string
	Name      string
	Slug      string
	Category  string
	Rating    int
	Latitude  float64
	Longitude float64
}
