package domain

import "time"

// Restaurant aggregates the data required for admin operations.
type Restaurant struct {
	ID                string
	Name              string
	Slug              Slug
	Category          Category
	CuisineType       string
	Rating            Rating
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
	UpdatedAt         time.Time
}

// BlobKeys lists every storage key referenced by the record, main image
// first. Used by deletion to clean up the blob store.
func (r Restaurant) BlobKeys() []string {
	keys := make([]string, 0, len(r.Images)+1)
	if r.ImageURL != "" {
		keys = append(keys, r.ImageURL)
	}
	for _, key := range r.Images {
		if key != "" && key != r.ImageURL {
			keys = append(keys, key)
		}
	}
	return keys
}
