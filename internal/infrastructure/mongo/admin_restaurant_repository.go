package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	adminapp "github.com/mkt0301/food-reviews-services/api/internal/admin/application"
	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminRestaurantRepository は管理者向け Restaurant 集約の Mongo 実装。
// slug の一意性は unique index に委ね、重複キーを ErrConflict に写像する。
type AdminRestaurantRepository struct {
	collection *mongo.Collection
}

// NewAdminRestaurantRepository は MongoDB コレクションを束縛したリポジトリを生成する。
func NewAdminRestaurantRepository(db *mongo.Database, collection string) *AdminRestaurantRepository {
	return &AdminRestaurantRepository{collection: db.Collection(collection)}
}

// EnsureIndexes は slug の unique index を作成する。起動時と seed から呼ばれる。
func (r *AdminRestaurantRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Find は管理画面一覧用に全件を新しい順で返す。
func (r *AdminRestaurantRepository) Find(ctx context.Context) ([]admindomain.Restaurant, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := make([]admindomain.Restaurant, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		restaurant, err := mapAdminRestaurantDocument(doc)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// FindByID は ID を ObjectID 化して単一エンティティを復元する。
// 形式不正な ID も「存在しない」と同じ扱いにする。
func (r *AdminRestaurantRepository) FindByID(ctx context.Context, id string) (*admindomain.Restaurant, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, adminapp.ErrNotFound
	}
	var doc RestaurantDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminapp.ErrNotFound
		}
		return nil, err
	}
	restaurant, err := mapAdminRestaurantDocument(doc)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Create はドメインエンティティを新規ドキュメントとして登録し、採番した ID を書き戻す。
func (r *AdminRestaurantRepository) Create(ctx context.Context, restaurant *admindomain.Restaurant) error {
	if restaurant == nil {
		return errors.New("restaurant payload is nil")
	}
	doc := mapDomainRestaurantToDocument(restaurant)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("slug %q: %w", restaurant.Slug, adminapp.ErrConflict)
		}
		return err
	}
	restaurant.ID = doc.ID.Hex()
	return nil
}

// Update は全フィールドの差し替え更新を行う。createdAt は書き換えない。
func (r *AdminRestaurantRepository) Update(ctx context.Context, restaurant *admindomain.Restaurant) error {
	if restaurant == nil {
		return errors.New("restaurant payload is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(restaurant.ID))
	if err != nil {
		return adminapp.ErrNotFound
	}
	doc := mapDomainRestaurantToDocument(restaurant)
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": buildRestaurantUpdatePayload(doc)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("slug %q: %w", restaurant.Slug, adminapp.ErrConflict)
		}
		return err
	}
	if result.MatchedCount == 0 {
		return adminapp.ErrNotFound
	}
	return nil
}

// Delete はレコードを物理削除する。対象が無ければ ErrNotFound。
func (r *AdminRestaurantRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return adminapp.ErrNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return adminapp.ErrNotFound
	}
	return nil
}

// mapAdminRestaurantDocument は Mongo ドキュメントを Admin ドメインへ変換する。
func mapAdminRestaurantDocument(doc RestaurantDocument) (admindomain.Restaurant, error) {
	slug, err := admindomain.NewSlug(doc.Slug)
	if err != nil {
		return admindomain.Restaurant{}, err
	}
	category, err := admindomain.NewCategory(doc.Category)
	if err != nil {
		return admindomain.Restaurant{}, err
	}
	rating, err := admindomain.NewRating(doc.Rating)
	if err != nil {
		return admindomain.Restaurant{}, err
	}

	return admindomain.Restaurant{
		ID:                doc.ID.Hex(),
		Name:              doc.Name,
		Slug:              slug,
		Category:          category,
		CuisineType:       doc.CuisineType,
		Rating:            rating,
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
		UpdatedAt:         doc.UpdatedAt,
	}, nil
}

// mapDomainRestaurantToDocument はドメインエンティティを Mongo 保存形式に射影する。
func mapDomainRestaurantToDocument(restaurant *admindomain.Restaurant) RestaurantDocument {
	createdAt := restaurant.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := restaurant.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	return RestaurantDocument{
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
		Images:            append([]string(nil), restaurant.Images...),
		AmbianceRating:    restaurant.AmbianceRating,
		CleanlinessRating: restaurant.CleanlinessRating,
		ServiceRating:     restaurant.ServiceRating,
		ValueRating:       restaurant.ValueRating,
		WaitTimeRating:    restaurant.WaitTimeRating,
		MenuReview:        restaurant.MenuReview,
		VibeReview:        restaurant.VibeReview,
		LocationReview:    restaurant.LocationReview,
		Tips:              restaurant.Tips,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

// buildRestaurantUpdatePayload は $set 用の BSON マップを構築する。
// omitempty に頼らず明示的に null 化して「クリア」を表現する。
func buildRestaurantUpdatePayload(doc RestaurantDocument) bson.M {
	return bson.M{
		"name":              doc.Name,
		"slug":              doc.Slug,
		"category":          doc.Category,
		"cuisineType":       doc.CuisineType,
		"rating":            doc.Rating,
		"reviewText":        doc.ReviewText,
		"address":           doc.Address,
		"latitude":          doc.Latitude,
		"longitude":         doc.Longitude,
		"imageURL":          doc.ImageURL,
		"images":            doc.Images,
		"ambianceRating":    doc.AmbianceRating,
		"cleanlinessRating": doc.CleanlinessRating,
		"serviceRating":     doc.ServiceRating,
		"valueRating":       doc.ValueRating,
		"waitTimeRating":    doc.WaitTimeRating,
		"menuReview":        doc.MenuReview,
		"vibeReview":        doc.VibeReview,
		"locationReview":    doc.LocationReview,
		"tips":              doc.Tips,
		"updatedAt":         time.Now().UTC(),
	}
}
