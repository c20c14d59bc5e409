// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"time"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"member_portal/internal/feature/accounts/domain/entity"
	"member_portal/internal/platform/config"
)

// OpenDB は設定に応じたデータベース接続を確立します。
// DB_DRIVERに応じてSQLite（デフォルト）/ MySQL / PostgreSQLを選択します。
// ネットワーク経由のDBは起動直後に接続できないことがあるため、60秒間リトライします。
func OpenDB(cfg *config.Config) *gorm.DB {
	// TranslateError によりユニーク制約違反などのドライバ固有エラーを
	// gorm.ErrDuplicatedKey のような共通エラーに変換する
	gormCfg := &gorm.Config{TranslateError: true}

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		db, err = openWithRetry(gmysql.Open(dsn), gormCfg)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		db, err = openWithRetry(gpostgres.Open(dsn), gormCfg)
	case "sqlite":
		db, err = gorm.Open(gsqlite.Open(cfg.DBPath), gormCfg)
	default:
		log.Fatalf("unknown DB_DRIVER %q (expected sqlite, mysql or postgres)", cfg.DBDriver)
	}
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(&entity.User{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// openWithRetry はネットワーク経由の接続を期限付きでリトライします。
func openWithRetry(dialector gorm.Dialector, gormCfg *gorm.Config) (*gorm.DB, error) {
	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err := gorm.Open(dialector, gormCfg)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("after 60s: %w", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}
