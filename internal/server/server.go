package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	adminapp "github.com/mkt0301/food-reviews-services/api/internal/admin/application"
	"github.com/mkt0301/food-reviews-services/api/internal/auth"
	"github.com/mkt0301/food-reviews-services/api/internal/config"
	"github.com/mkt0301/food-reviews-services/api/internal/geocode"
	"github.com/mkt0301/food-reviews-services/api/internal/infrastructure/cache"
	mongodoc "github.com/mkt0301/food-reviews-services/api/internal/infrastructure/mongo"
	adminhttp "github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/admin"
	commonhttp "github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/common"
	publichttp "github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/public"
	publicapp "github.com/mkt0301/food-reviews-services/api/internal/public/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
// DDD の Interface 層に相当し、アプリケーションサービスをルータへ接続する責務を担う。
type Server struct {
	logger             *log.Logger
	client             *mongo.Client
	database           *mongo.Database
	tokens             *auth.Service
	adminRestaurants   *mongodoc.AdminRestaurantRepository
	adminDishes        *mongodoc.AdminDishRepository
	restaurantService  adminapp.RestaurantService
	dishService        adminapp.DishService
	queryService       publicapp.RestaurantQueryService
	blobs              adminapp.BlobStore
	pages              *cache.PageCache
	geocoder           *geocode.Client
	cookieSecure       bool
	adminLoginPath     string
	addr               string
	allowedOrigins     []string
}

// Run はHTTPサーバーを起動し、Public/Adminのルーティングやミドルウェアを組み立てる。
// インフラ初期化に限定し、ドメインロジックをここに書かないことで層の責務を守る。
func (s *Server) Run() error {
	if err := s.ensureIndexes(context.Background()); err != nil {
		s.logger.Printf("インデックス作成に失敗しました: %v", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:  s.logger,
		Queries: s.queryService,
	})
	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.pages.Middleware(publicPagePath))
			publicHandler.Register(r)
		})

		adminHandler := adminhttp.NewHandler(adminhttp.Config{
			Logger:            s.logger,
			Tokens:            s.tokens,
			RestaurantService: s.restaurantService,
			DishService:       s.dishService,
			Blobs:             s.blobs,
			Geocoder:          s.geocoder,
			CookieSecure:      s.cookieSecure,
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(commonhttp.AdminGate(commonhttp.AdminGateConfig{
				Logger:    s.logger,
				Tokens:    s.tokens,
				LoginPath: s.adminLoginPath,
				OpenPaths: []string{"/api/admin/login", "/api/admin/verify"},
			}))
			adminHandler.Register(r)
		})
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// publicPagePath は公開 API リクエストをキャッシュ対象のページパスへ写像する。
// 料理一覧・絞り込み条件はギャラリーページの構成要素なので "/" に属する。
func publicPagePath(r *http.Request) string {
	path := r.URL.Path
	switch path {
	case "/api/restaurants", "/api/cuisines":
		return adminapp.ListingPagePath
	case "/api/map":
		return adminapp.MapPagePath
	}
	if slug, ok := strings.CutPrefix(path, "/api/restaurants/"); ok && slug != "" && !strings.Contains(slug, "/") {
		return adminapp.RestaurantPagePath(slug)
	}
	return ""
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB への疎通確認を行い、監視系からのヘルスチェック要求に応える。
// ドメインの状態ではなくインフラ状態のみを返す設計。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// ensureIndexes は slug の unique index など必須インデックスを起動時に保証する。
func (s *Server) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.adminRestaurants.EnsureIndexes(ctx); err != nil {
		return err
	}
	return s.adminDishes.EnsureIndexes(ctx)
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断し、プロセス終了時のリソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
// アプリケーションの外側で扱うべき OS 依存の関心事をここへ閉じ込める。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と外部依存を受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
// 依存解決の起点となるファクトリとして機能する。
func New(cfg config.Config, client *mongo.Client, blobs adminapp.BlobStore, pages *cache.PageCache) *Server {
	srv := &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		tokens:         auth.NewService(cfg.AdminPassword),
		blobs:          blobs,
		pages:          pages,
		geocoder:       geocode.NewClient(cfg.GeocodeEndpoint, cfg.GeocodeTimeout),
		cookieSecure:   cfg.CookieSecure,
		adminLoginPath: cfg.AdminLoginPath,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}

	srv.adminRestaurants = mongodoc.NewAdminRestaurantRepository(srv.database, cfg.RestaurantCollection)
	srv.adminDishes = mongodoc.NewAdminDishRepository(srv.database, cfg.DishCollection, cfg.RestaurantCollection)
	publicRepo := mongodoc.NewRestaurantRepository(srv.database, cfg.RestaurantCollection, cfg.DishCollection)

	srv.restaurantService = adminapp.NewRestaurantService(adminapp.RestaurantServiceConfig{
		Repo:   srv.adminRestaurants,
		Dishes: srv.adminDishes,
		Blobs:  blobs,
		Pages:  pages,
		Logger: cfg.ServerLog,
	})
	srv.dishService = adminapp.NewDishService(adminapp.DishServiceConfig{
		Repo:        srv.adminDishes,
		Restaurants: srv.adminRestaurants,
		Blobs:       blobs,
		Pages:       pages,
		Logger:      cfg.ServerLog,
	})
	srv.queryService = publicapp.NewRestaurantQueryService(publicRepo)

	return srv
}
