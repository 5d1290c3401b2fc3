package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantDocument は MongoDB 上でのレストランスキーマを Go 構造体として表現したもの。
// 任意項目は omitempty で欠損を null 相当として扱う。
type RestaurantDocument struct {
	ID                primitive.ObjectID `bson:"_id"`
	Name              string             `bson:"name"`
	Slug              string             `bson:"slug"`
	Category          string             `bson:"category"`
	CuisineType       string             `bson:"cuisineType,omitempty"`
	Rating            int                `bson:"rating"`
	ReviewText        string             `bson:"reviewText"`
	Address           string             `bson:"address"`
	Latitude          float64            `bson:"latitude"`
	Longitude         float64            `bson:"longitude"`
	ImageURL          string             `bson:"imageURL,omitempty"`
	Images            []string           `bson:"images,omitempty"`
	AmbianceRating    *int               `bson:"ambianceRating,omitempty"`
	CleanlinessRating *int               `bson:"cleanlinessRating,omitempty"`
	ServiceRating     *int               `bson:"serviceRating,omitempty"`
	ValueRating       *int               `bson:"valueRating,omitempty"`
	WaitTimeRating    *int               `bson:"waitTimeRating,omitempty"`
	MenuReview        string             `bson:"menuReview,omitempty"`
	VibeReview        string             `bson:"vibeReview,omitempty"`
	LocationReview    string             `bson:"locationReview,omitempty"`
	Tips              string             `bson:"tips,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

// DishDocument はレストラン配下の料理レビューのスキーマ。restaurantId は作成後に変更しない。
type DishDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	RestaurantID  primitive.ObjectID `bson:"restaurantId"`
	Name          string             `bson:"name"`
	ReviewText    string             `bson:"reviewText"`
	FoodRating    int                `bson:"foodRating"`
	ServiceRating int                `bson:"serviceRating"`
	PriceRating   int                `bson:"priceRating"`
	Images        []string           `bson:"images,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}
