package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	adminapp "github.com/mkt0301/food-reviews-services/api/internal/admin/application"
	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminDishRepository は料理レビューの Mongo 実装。
// 一覧・詳細では親レストランの name/slug を別クエリで引き当てて同梱する。
type AdminDishRepository struct {
	dishes      *mongo.Collection
	restaurants *mongo.Collection
}

// NewAdminDishRepository は料理とレストランの両コレクションを束縛する。
func NewAdminDishRepository(db *mongo.Database, dishCollection, restaurantCollection string) *AdminDishRepository {
	return &AdminDishRepository{
		dishes:      db.Collection(dishCollection),
		restaurants: db.Collection(restaurantCollection),
	}
}

// EnsureIndexes は restaurantId の参照索引を作成する。
func (r *AdminDishRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.dishes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "restaurantId", Value: 1}},
	})
	return err
}

// Find はフィルタに合致する料理を新しい順で返す。
func (r *AdminDishRepository) Find(ctx context.Context, filter adminapp.DishFilter) ([]admindomain.Dish, error) {
	query := bson.M{}
	if filter.RestaurantID != "" {
		objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(filter.RestaurantID))
		if err != nil {
			// 形式不正な参照は空集合として扱う。
			return []admindomain.Dish{}, nil
		}
		query["restaurantId"] = objectID
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.dishes.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]DishDocument, 0)
	for cursor.Next(ctx) {
		var doc DishDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	refs, err := r.lookupRestaurantRefs(ctx, docs)
	if err != nil {
		return nil, err
	}

	dishes := make([]admindomain.Dish, 0, len(docs))
	for _, doc := range docs {
		dish, err := mapAdminDishDocument(doc, refs[doc.RestaurantID])
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	return dishes, nil
}

// FindByID は単一の料理を親レストラン情報付きで復元する。
func (r *AdminDishRepository) FindByID(ctx context.Context, id string) (*admindomain.Dish, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, adminapp.ErrNotFound
	}
	var doc DishDocument
	if err := r.dishes.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, adminapp.ErrNotFound
		}
		return nil, err
	}

	refs, err := r.lookupRestaurantRefs(ctx, []DishDocument{doc})
	if err != nil {
		return nil, err
	}
	dish, err := mapAdminDishDocument(doc, refs[doc.RestaurantID])
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// Create は親レストランの存在を前提に新規ドキュメントを登録する。
func (r *AdminDishRepository) Create(ctx context.Context, dish *admindomain.Dish) error {
	if dish == nil {
		return errors.New("dish payload is nil")
	}
	restaurantID, err := primitive.ObjectIDFromHex(strings.TrimSpace(dish.RestaurantID))
	if err != nil {
		return adminapp.ErrNotFound
	}
	doc := mapDomainDishToDocument(dish)
	doc.ID = primitive.NewObjectID()
	doc.RestaurantID = restaurantID
	if _, err := r.dishes.InsertOne(ctx, doc); err != nil {
		return err
	}
	dish.ID = doc.ID.Hex()
	return nil
}

// Update は restaurantId を除く全フィールドを差し替える。
func (r *AdminDishRepository) Update(ctx context.Context, dish *admindomain.Dish) error {
	if dish == nil {
		return errors.New("dish payload is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(dish.ID))
	if err != nil {
		return adminapp.ErrNotFound
	}
	doc := mapDomainDishToDocument(dish)
	payload := bson.M{
		"name":          doc.Name,
		"reviewText":    doc.ReviewText,
		"foodRating":    doc.FoodRating,
		"serviceRating": doc.ServiceRating,
		"priceRating":   doc.PriceRating,
		"images":        doc.Images,
		"updatedAt":     time.Now().UTC(),
	}
	result, err := r.dishes.UpdateByID(ctx, objectID, bson.M{"$set": payload})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return adminapp.ErrNotFound
	}
	return nil
}

// Delete は料理を物理削除する。
func (r *AdminDishRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return adminapp.ErrNotFound
	}
	result, err := r.dishes.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return adminapp.ErrNotFound
	}
	return nil
}

// DeleteByRestaurant はレストラン削除のカスケードとして配下の料理をまとめて消す。
func (r *AdminDishRepository) DeleteByRestaurant(ctx context.Context, restaurantID string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(restaurantID))
	if err != nil {
		return nil
	}
	_, err = r.dishes.DeleteMany(ctx, bson.M{"restaurantId": objectID})
	return err
}

// restaurantRef は料理に同梱する親レストランの最小情報。
type restaurantRef struct {
	Name string
	Slug string
}

// lookupRestaurantRefs は料理群が参照するレストランをまとめて一度のクエリで引く。
func (r *AdminDishRepository) lookupRestaurantRefs(ctx context.Context, docs []DishDocument) (map[primitive.ObjectID]restaurantRef, error) {
	refs := make(map[primitive.ObjectID]restaurantRef)
	if len(docs) == 0 {
		return refs, nil
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	seen := make(map[primitive.ObjectID]struct{}, len(docs))
	for _, doc := range docs {
		if _, ok := seen[doc.RestaurantID]; ok {
			continue
		}
		seen[doc.RestaurantID] = struct{}{}
		ids = append(ids, doc.RestaurantID)
	}

	projection := options.Find().SetProjection(bson.M{"name": 1, "slug": 1})
	cursor, err := r.restaurants.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
			Slug string             `bson:"slug"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		refs[doc.ID] = restaurantRef{Name: doc.Name, Slug: doc.Slug}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// mapAdminDishDocument は Mongo ドキュメントを Admin ドメインへ変換する。
func mapAdminDishDocument(doc DishDocument, ref restaurantRef) (admindomain.Dish, error) {
	foodRating, err := admindomain.NewRating(doc.FoodRating)
	if err != nil {
		return admindomain.Dish{}, err
	}
	serviceRating, err := admindomain.NewRating(doc.ServiceRating)
	if err != nil {
		return admindomain.Dish{}, err
	}
	priceRating, err := admindomain.NewRating(doc.PriceRating)
	if err != nil {
		return admindomain.Dish{}, err
	}

	return admindomain.Dish{
		ID:             doc.ID.Hex(),
		RestaurantID:   doc.RestaurantID.Hex(),
		RestaurantName: ref.Name,
		RestaurantSlug: ref.Slug,
		Name:           doc.Name,
		ReviewText:     doc.ReviewText,
		FoodRating:     foodRating,
		ServiceRating:  serviceRating,
		PriceRating:    priceRating,
		Images:         append([]string(nil), doc.Images...),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

// mapDomainDishToDocument はドメインエンティティを Mongo 保存形式に射影する。
func mapDomainDishToDocument(dish *admindomain.Dish) DishDocument {
	createdAt := dish.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := dish.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	return DishDocument{
		Name:          dish.Name,
		ReviewText:    dish.ReviewText,
		FoodRating:    dish.FoodRating.Int(),
		ServiceRating: dish.ServiceRating.Int(),
		PriceRating:   dish.PriceRating.Int(),
		Images:        append([]string(nil), dish.Images...),
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}
