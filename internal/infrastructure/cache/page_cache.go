package cache

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCache は公開ページの JSON レスポンスを Redis に保持する。
// キーは「page:<論理パス>:<バリアント>」。論理パスは公開サイトのページ単位で、
// 同じページに属する API レスポンスはまとめて無効化できる。
// client が nil の場合は全操作が no-op になり、キャッシュ無しで動作する。
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewPageCache は TTL 付きのページキャッシュを生成する。
func NewPageCache(client *redis.Client, ttl time.Duration, logger *log.Logger) *PageCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &PageCache{client: client, ttl: ttl, logger: logger}
}

// Enabled は Redis 接続が生きているかを返す。
func (p *PageCache) Enabled() bool {
	return p != nil && p.client != nil
}

// Invalidate は論理パス配下のバリアントをすべて削除する。
// スラッグは英小文字・数字・ハイフンのみなので MATCH パターンと衝突しない。
func (p *PageCache) Invalidate(ctx context.Context, path string) error {
	if !p.Enabled() {
		return nil
	}
	pattern := fmt.Sprintf("page:%s:*", path)
	iter := p.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := p.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Middleware は GET レスポンスをページ単位でキャッシュする http ミドルウェア。
// pathFor はリクエストを公開サイトの論理ページパスへ写像する。空文字を返した
// リクエストはキャッシュ対象外。
func (p *PageCache) Middleware(pathFor func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !p.Enabled() || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			page := pathFor(r)
			if page == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := pageKey(page, r)
			if body, err := p.client.Get(r.Context(), key).Bytes(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			}

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(cw, r)

			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				if err := p.client.SetEx(context.Background(), key, cw.buf.Bytes(), p.ttl).Err(); err != nil && p.logger != nil {
					p.logger.Printf("page cache store failed: %v", err)
				}
			}
		})
	}
}

// pageKey はリクエストパスとクエリをハッシュ化してバリアントを区別する。
func pageKey(page string, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("page:%s:%x", page, sum[:])
}

// captureWriter はレスポンスをクライアントへ流しつつ複製を保持する。
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.status == http.StatusOK {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}
