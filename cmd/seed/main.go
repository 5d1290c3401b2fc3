package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	admindomain "github.com/mkt0301/food-reviews-services/api/internal/admin/domain"
	"github.com/mkt0301/food-reviews-services/api/internal/config"
	mongodoc "github.com/mkt0301/food-reviews-services/api/internal/infrastructure/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seed はローカル開発用のサンプルデータを投入する。
// 既存データを消したい場合は -drop を付ける。
func main() {
	_ = godotenv.Load()

	drop := flag.Bool("drop", false, "drop restaurant and dish collections before seeding")
	flag.Parse()

	cfg := config.Load()
	logger := log.New(os.Stdout, "[food-reviews-seed] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("MongoDB 切断時にエラー: %v", err)
		}
	}()

	database := client.Database(cfg.MongoDatabase)
	if *drop {
		for _, name := range []string{cfg.RestaurantCollection, cfg.DishCollection} {
			if err := database.Collection(name).Drop(ctx); err != nil {
				logger.Fatalf("コレクション %s の削除に失敗しました: %v", name, err)
			}
		}
		logger.Printf("既存コレクションを削除しました")
	}

	restaurants := mongodoc.NewAdminRestaurantRepository(database, cfg.RestaurantCollection)
	dishes := mongodoc.NewAdminDishRepository(database, cfg.DishCollection, cfg.RestaurantCollection)
	if err := restaurants.EnsureIndexes(ctx); err != nil {
		logger.Fatalf("レストランのインデックス作成に失敗しました: %v", err)
	}
	if err := dishes.EnsureIndexes(ctx); err != nil {
		logger.Fatalf("料理のインデックス作成に失敗しました: %v", err)
	}

	for _, sample := range sampleRestaurants() {
		restaurant := sample.restaurant
		if err := restaurants.Create(ctx, &restaurant); err != nil {
			logger.Printf("レストラン %s の投入をスキップ: %v", restaurant.Slug, err)
			continue
		}
		for _, dish := range sample.dishes {
			dish.RestaurantID = restaurant.ID
			if err := dishes.Create(ctx, &dish); err != nil {
				logger.Printf("料理 %s の投入に失敗: %v", dish.Name, err)
			}
		}
		logger.Printf("投入完了: %s (%d dishes)", restaurant.Slug, len(sample.dishes))
	}
}

type sampleRestaurant struct {
	restaurant admindomain.Restaurant
	dishes     []admindomain.Dish
}

func sampleRestaurants() []sampleRestaurant {
	now := time.Now().UTC()
	mustRating := func(v int) admindomain.Rating {
		rating, err := admindomain.NewRating(v)
		if err != nil {
			panic(err)
		}
		return rating
	}
	intPtr := func(v int) *int { return &v }

	return []sampleRestaurant{
		{
			restaurant: admindomain.Restaurant{
				Name:           "Sakura Kitchen",
				Slug:           "sakura-kitchen",
				Category:       admindomain.CategoryRestaurant,
				CuisineType:    "Japanese",
				Rating:         mustRating(5),
				ReviewText:     "Standout omakase counter with a short but confident menu. Every course landed.",
				Address:        "123 Dundas St W, Toronto, ON",
				Latitude:       43.6532,
				Longitude:      -79.3832,
				AmbianceRating: intPtr(5),
				ServiceRating:  intPtr(4),
				ValueRating:    intPtr(4),
				MenuReview:     "The seasonal sashimi set changes weekly and is worth ordering blind.",
				VibeReview:     "Quiet, warm wood interior. Counter seats are the move.",
				Tips:           "Book a week ahead for Friday dinner.",
				CreatedAt:      now,
				UpdatedAt:      now,
			},
			dishes: []admindomain.Dish{
				{
					Name:          "Chirashi Don",
					ReviewText:    "Generous cut of tuna and the rice seasoning is spot on.",
					FoodRating:    mustRating(5),
					ServiceRating: mustRating(4),
					PriceRating:   mustRating(4),
				},
				{
					Name:          "Agedashi Tofu",
					ReviewText:    "Crisp shell, silky center, dashi could be a touch stronger.",
					FoodRating:    mustRating(4),
					ServiceRating: mustRating(4),
					PriceRating:   mustRating(5),
				},
			},
		},
		{
			restaurant: admindomain.Restaurant{
				Name:              "Pearl & Leaf",
				Slug:              "pearl-and-leaf",
				Category:          admindomain.CategoryBubbleTea,
				CuisineType:       "Taiwanese",
				Rating:            mustRating(4),
				ReviewText:        "Best brown sugar pearls in the neighbourhood, cooked fresh every few hours.",
				Address:           "456 Spadina Ave, Toronto, ON",
				Latitude:          43.6571,
				Longitude:         -79.3989,
				WaitTimeRating:    intPtr(3),
				CleanlinessRating: intPtr(5),
				VibeReview:        "Bright and busy. Mostly takeout.",
				CreatedAt:         now,
				UpdatedAt:         now,
			},
			dishes: []admindomain.Dish{
				{
					Name:          "Brown Sugar Milk Tea",
					ReviewText:    "Pearls still warm, tea not oversweetened even at full sugar.",
					FoodRating:    mustRating(5),
					ServiceRating: mustRating(3),
					PriceRating:   mustRating(4),
				},
			},
		},
		{
			restaurant: admindomain.Restaurant{
				Name:        "Fika Corner",
				Slug:        "fika-corner",
				Category:    admindomain.CategoryCafe,
				CuisineType: "Scandinavian",
				Rating:      mustRating(4),
				ReviewText:  "Cardamom buns and a flat white that holds its own against any specialty shop.",
				Address:     "789 Queen St E, Toronto, ON",
				Latitude:    43.6591,
				Longitude:   -79.3432,
				ValueRating: intPtr(3),
				Tips:        "Buns sell out by noon on weekends.",
				CreatedAt:   now,
				UpdatedAt:   now,
			},
		},
	}
}
