// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DevSessionSecret はSESSION_SECRET未設定時のフォールバック鍵です。
// ローカル開発専用であり、本番環境では必ず強い秘密鍵を設定してください。
const DevSessionSecret = "dev-key-change-in-production"

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // HTTPサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// セッション設定
	SessionSecret string // セッションクッキー署名用の秘密鍵

	// データベース設定
	DBDriver   string // sqlite / mysql / postgres
	DBPath     string // SQLiteのファイルパス
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis設定（ユーザーキャッシュ用、未設定の場合はキャッシュなしで動作）
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// RunMigrations が真の場合、起動時にスキーマのマイグレーションを実行します。
	RunMigrations bool
}

// Load は環境変数から設定を読み込みます。
// .env ファイルが存在する場合はそこから読み込みます。
func Load() *Config {
	// .env ファイルを読み込む（存在しない場合はスキップ）
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env file")
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		SessionSecret: getEnv("SESSION_SECRET", ""),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "./users.db"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", ""),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RunMigrations: getEnvAsBool("RUN_MIGRATIONS", true),
	}

	if cfg.SessionSecret == "" {
		// 開発用フォールバック。main側でも警告ログを出します。
		cfg.SessionSecret = DevSessionSecret
	}

	return cfg
}

// UsingDevSessionSecret はフォールバックの開発用秘密鍵が使われているかを返します。
func (c *Config) UsingDevSessionSecret() bool {
	return c.SessionSecret == DevSessionSecret
}

// getEnv は環境変数を取得し、未設定の場合はデフォルト値を返します。
func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool は環境変数を真偽値として取得します。
func getEnvAsBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean environment variable, using default", "key", key, "value", value)
		return defaultValue
	}
	return parsed
}
