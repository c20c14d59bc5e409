package main

import (
	"log"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"member_portal/internal/app/router"
	accountsadapters "member_portal/internal/feature/accounts/adapters"
	accountshandler "member_portal/internal/feature/accounts/transport/handler"
	accountsusecase "member_portal/internal/feature/accounts/usecase"
	pageshandler "member_portal/internal/feature/pages/transport/handler"
	"member_portal/internal/platform/cache"
	"member_portal/internal/platform/config"
	"member_portal/internal/platform/db"
	platformredis "member_portal/internal/platform/redis"
	"member_portal/internal/platform/session"
)

func main() {
	// 設定
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// SESSION_SECRETチェック（開発中の注意喚起）
	if cfg.UsingDevSessionSecret() {
		log.Println("[WARN] SESSION_SECRET is not set. Using the insecure dev fallback; set a strong secret in production.")
	}

	// db
	gdb := db.OpenDB(cfg)

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisHost == "" {
		rdb = nil
	} else if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := accountsadapters.NewUserGorm(gdb)

	// Redisキャッシュでラップ（セッション復元のFindByIDが毎リクエスト走るため）
	cachedUserRepo := cache.NewCachingUserRepository(rdb, 0, userRepo, "users")

	// Usecase
	accountsUC := accountsusecase.NewAccountsUsecase(cachedUserRepo)

	// セッションマネージャー
	sess := session.NewManager(cachedUserRepo)

	// Handler
	accountsH := accountshandler.NewAccountsHandler(accountsUC, sess)
	pagesH := pageshandler.NewPagesHandler()

	// ルータ生成
	r := router.NewRouter(cfg, accountsH, pagesH, sess, "web/templates/*.html")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
