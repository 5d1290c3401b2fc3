package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	publicapp "github.com/mkt0301/food-reviews-services/api/internal/public/application"
	publicdomain "github.com/mkt0301/food-reviews-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RestaurantRepository は公開サイト向けの読み取り専用 Mongo 実装。
// 詳細取得ではレストラン配下の料理も合わせて返す。
type RestaurantRepository struct {
	restaurants *mongo.Collection
	dishes      *mongo.Collection
}

// NewRestaurantRepository は公開側クエリ用のリポジトリを生成する。
func NewRestaurantRepository(db *mongo.Database, restaurantCollection, dishCollection string) *RestaurantRepository {
	return &RestaurantRepository{
		restaurants: db.Collection(restaurantCollection),
		dishes:      db.Collection(dishCollection),
	}
}

// Find はギャラリー用の絞り込み検索。登録の新しい順で返す。
func (r *RestaurantRepository) Find(ctx context.Context, filter publicapp.RestaurantFilter) ([]publicdomain.Restaurant, error) {
	query := bson.M{}
	if len(filter.Categories) > 0 {
		query["category"] = bson.M{"$in": filter.Categories}
	}
	if cuisine := strings.TrimSpace(filter.Cuisine); cuisine != "" {
		// 大文字小文字を無視した完全一致。入力はメタ文字を無効化して使う。
		query["cuisineType"] = bson.M{
			"$regex":   fmt.Sprintf("^%s$", regexp.QuoteMeta(cuisine)),
			"$options": "i",
		}
	}
	if filter.MinRating > 0 {
		query["rating"] = bson.M{"$gte": filter.MinRating}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.restaurants.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := make([]publicdomain.Restaurant, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, mapPublicRestaurantDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// FindBySlug は詳細ページ用にレストランと配下の料理を合わせて返す。
func (r *RestaurantRepository) FindBySlug(ctx context.Context, slug string) (*publicdomain.RestaurantDetail, error) {
	var doc RestaurantDocument
	err := r.restaurants.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slug)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, publicapp.ErrNotFound
		}
		return nil, err
	}

	dishes, err := r.findDishes(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	return &publicdomain.RestaurantDetail{
		Restaurant: mapPublicRestaurantDocument(doc),
		Dishes:     dishes,
	}, nil
}

// Cuisines は登録済みの cuisineType の重複なし一覧をアルファベット順で返す。
func (r *RestaurantRepository) Cuisines(ctx context.Context) ([]string, error) {
	values, err := r.restaurants.Distinct(ctx, "cuisineType", bson.M{"cuisineType": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}

	cuisines := make([]string, 0, len(values))
	for _, value := range values {
		if cuisine, ok := value.(string); ok && cuisine != "" {
			cuisines = append(cuisines, cuisine)
		}
	}
	sort.Strings(cuisines)
	return cuisines, nil
}

// MapPins は地図描画に必要な最小フィールドのみを射影して返す。
func (r *RestaurantRepository) MapPins(ctx context.Context) ([]publicdomain.MapPin, error) {
	projection := options.Find().SetProjection(bson.M{
		"name":      1,
		"slug":      1,
		"category":  1,
		"rating":    1,
		"latitude":  1,
		"longitude": 1,
	})
	cursor, err := r.restaurants.Find(ctx, bson.M{}, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pins := make([]publicdomain.MapPin, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		pins = append(pins, publicdomain.MapPin{
			ID:        doc.ID.Hex(),
			Name:      doc.Name,
			Slug:      doc.Slug,
			Category:  doc.Category,
			Rating:    doc.Rating,
			Latitude:  doc.Latitude,
			Longitude: doc.Longitude,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return pins, nil
}

// findDishes はレストラン配下の料理を新しい順で取得する。
func (r *RestaurantRepository) findDishes(ctx context.Context, restaurantID primitive.ObjectID) ([]publicdomain.Dish, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.dishes.Find(ctx, bson.M{"restaurantId": restaurantID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	dishes := make([]publicdomain.Dish, 0)
	for cursor.Next(ctx) {
		var doc DishDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		dishes = append(dishes, publicdomain.Dish{
			ID:            doc.ID.Hex(),
			Name:          doc.Name,
			ReviewText:    doc.ReviewText,
			FoodRating:    doc.FoodRating,
			ServiceRating: doc.ServiceRating,
			PriceRating:   doc.PriceRating,
			Images:        append([]string(nil), doc.Images...),
			CreatedAt:     doc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return dishes, nil
}

// mapPublicRestaurantDocument は Mongo ドキュメントを公開側ドメインへ変換する。
func mapPublicRestaurantDocument(doc RestaurantDocument) publicdomain.Restaurant {
	return publicdomain.Restaurant{
		ID:                doc.ID.Hex(),
		Name:              doc.Name,
		Slug:              doc.Slug,
		Category:          doc.Category,
		CuisineType:       doc.CuisineType,
		Rating:            doc.Rating,
		ReviewText:        doc.ReviewText,
		Address:           doc.Address,
		Latitude:          doc.Latitude,
		Longitude:         doc.Longitude,
		ImageURL:          doc.ImageURL,
		Images:            append([]string(nil), doc.Images...),
		AmbianceRating:    doc.AmbianceRating,
		CleanlinessRating: doc.CleanlinessRating,
		ServiceRating:     doc.ServiceRating,
		ValueRating:       doc.ValueRating,
		WaitTimeRating:    doc.WaitTimeRating,
		MenuReview:        doc.MenuReview,
		VibeReview:        doc.VibeReview,
		LocationReview:    doc.LocationReview,
		Tips:              doc.Tips,
		CreatedAt:         doc.CreatedAt,
	}
}
