package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/mkt0301/food-reviews-services/api/internal/config"
	"github.com/mkt0301/food-reviews-services/api/internal/infrastructure/cache"
	blobstore "github.com/mkt0301/food-reviews-services/api/internal/infrastructure/s3"
	"github.com/mkt0301/food-reviews-services/api/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// .env はローカル開発専用。存在しなければ環境変数のみで動く。
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}

	blobs, err := blobstore.New(ctx, cfg.S3Region, cfg.S3Bucket)
	if err != nil {
		cfg.ServerLog.Fatalf("S3 クライアントの初期化に失敗しました: %v", err)
	}

	redisClient := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient == nil {
		cfg.ServerLog.Printf("Redis に接続できないためページキャッシュ無しで起動します")
	}
	pages := cache.NewPageCache(redisClient, cfg.CacheTTL, cfg.ServerLog)

	app := server.New(cfg, client, blobs, pages)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
