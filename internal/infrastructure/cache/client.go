package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient は Redis クライアントを生成し、疎通確認まで行う。
// 接続できない場合は nil を返し、呼び出し側はキャッシュ無しで動作を継続する。
func NewClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
