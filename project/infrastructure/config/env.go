package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"translate-bot/project/infrastructure/secret"
)

// Secret Manager 上のシークレット名（GCP_PROJECT 設定時のフォールバック用）
const (
	secretNameBotToken      = "slack-bot-token"
	secretNameSigningSecret = "slack-signing-secret"
	secretNameOpenAIKey     = "openai-api-key"
)

// Config は環境変数から読み込まれるアプリケーション設定を表します
type Config struct {
	// Slack API設定
	SlackBotToken      string
	SlackSigningSecret string

	// 翻訳バックエンド設定
	OpenAIAPIKey     string
	OpenAIModel      string
	TranslateTimeout time.Duration

	// HTTPサーバー設定
	Port string

	// 自己Ping設定（空の場合はPingを行いません）
	KeepAliveURL string

	// 言語設定ストアの上限（0は無制限）
	PrefsMaxEntries int

	// ログ設定
	LogLevel string
	LogFile  string
}

// NewConfig は環境変数から設定を読み込み、Config構造体を返します。
// .env ファイルがあれば先に読み込みます。
// GCP_PROJECT が設定されている場合、環境変数に無いシークレットは
// Secret Manager から取得します
func NewConfig(ctx context.Context) (*Config, error) {
	// .env 読み込み（ファイルが無い場合は無視）
	_ = godotenv.Load()

	cfg := &Config{
		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		Port:               getEnvOrDefault("PORT", "8080"),
		KeepAliveURL:       os.Getenv("KEEPALIVE_URL"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:            os.Getenv("LOG_FILE"),
	}

	// 翻訳APIのタイムアウト
	translateTimeout := getEnvOrDefault("TRANSLATE_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(translateTimeout)
	if err != nil {
		return nil, fmt.Errorf("config: TRANSLATE_TIMEOUT の形式が不正です: %w", err)
	}
	cfg.TranslateTimeout = timeout

	// 言語設定ストアの上限
	maxEntries := getEnvOrDefault("PREFS_MAX_ENTRIES", "0")
	n, err := strconv.Atoi(maxEntries)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("config: PREFS_MAX_ENTRIES の値が不正です: %s", maxEntries)
	}
	cfg.PrefsMaxEntries = n

	// Secret Manager フォールバック（GCP_PROJECT 設定時のみ）
	if gcpProject := os.Getenv("GCP_PROJECT"); gcpProject != "" {
		if err := cfg.loadSecrets(ctx, gcpProject); err != nil {
			return nil, err
		}
	}

	// 必須シークレットの確認
	if cfg.SlackBotToken == "" {
		return nil, fmt.Errorf("config: SLACK_BOT_TOKEN が設定されていません")
	}
	if cfg.SlackSigningSecret == "" {
		return nil, fmt.Errorf("config: SLACK_SIGNING_SECRET が設定されていません")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("config: OPENAI_API_KEY が設定されていません")
	}

	return cfg, nil
}

// loadSecrets は環境変数に無いシークレットを Secret Manager から取得します
func (cfg *Config) loadSecrets(ctx context.Context, gcpProject string) error {
	mgr, err := secret.NewManager(ctx, gcpProject)
	if err != nil {
		return fmt.Errorf("config: Secret Manager 初期化失敗: %w", err)
	}
	defer mgr.Close()

	if cfg.SlackBotToken == "" {
		if cfg.SlackBotToken, err = mgr.GetSecret(ctx, secretNameBotToken); err != nil {
			return fmt.Errorf("config: SLACK_BOT_TOKEN 取得失敗: %w", err)
		}
	}
	if cfg.SlackSigningSecret == "" {
		if cfg.SlackSigningSecret, err = mgr.GetSecret(ctx, secretNameSigningSecret); err != nil {
			return fmt.Errorf("config: SLACK_SIGNING_SECRET 取得失敗: %w", err)
		}
	}
	if cfg.OpenAIAPIKey == "" {
		if cfg.OpenAIAPIKey, err = mgr.GetSecret(ctx, secretNameOpenAIKey); err != nil {
			return fmt.Errorf("config: OPENAI_API_KEY 取得失敗: %w", err)
		}
	}

	return nil
}

// getEnvOrDefault は環境変数を取得し、未設定の場合はデフォルト値を返します
func getEnvOrDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
