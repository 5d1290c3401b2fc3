package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slug is the unique URL-safe identifier used in public restaurant URLs.
type Slug string

func NewSlug(value string) (Slug, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("slug is required")
	}
	if !slugPattern.MatchString(trimmed) {
		return "", fmt.Errorf("slug must contain only lowercase letters, numbers and hyphens")
	}
	return Slug(trimmed), nil
}

func (s Slug) String() string {
	return string(s)
}

// Category is the fixed restaurant taxonomy.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryBubbleTea  Category = "bubble_tea"
	CategoryCafe       Category = "cafe"
)

func NewCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	switch Category(trimmed) {
	case CategoryRestaurant, CategoryBubbleTea, CategoryCafe:
		return Category(trimmed), nil
	}
	return "", fmt.Errorf("invalid category: %s", trimmed)
}

func (c Category) String() string {
	return string(c)
}

// Rating is an integer star rating constrained to [1,5].
type Rating int

func NewRating(value int) (Rating, error) {
	if value < 1 || value > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5")
	}
	return Rating(value), nil
}

func (r Rating) Int() int {
	return int(r)
}

// NewOptionalRating validates a nullable sub-rating. nil means absent.
func NewOptionalRating(value *int) (*int, error) {
	if value == nil {
		return nil, nil
	}
	if *value < 1 || *value > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	rating := *value
	return &rating, nil
}

// MaxImageCount caps the gallery attached to a single record.
const MaxImageCount = 10

// NewImageKeyList trims and deduplicates blob keys, keeping order.
func NewImageKeyList(values []string, limit int) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, raw := range values {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}
		if len(key) > 1024 {
			return nil, fmt.Errorf("image key too long: %s", key)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
		if limit > 0 && len(result) > limit {
			return nil, fmt.Errorf("images must be <= %d", limit)
		}
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

// Coordinates validates a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if latitude < -90 || latitude > 90 {
		return Coordinates{}, fmt.Errorf("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return Coordinates{}, fmt.Errorf("longitude must be between -180 and 180")
	}
	return Coordinates{Latitude: latitude, Longitude: longitude}, nil
}
