package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"translate-bot/project/handler"
	"translate-bot/project/infrastructure/config"
	"translate-bot/project/infrastructure/httpsec"
	"translate-bot/project/infrastructure/keepalive"
	"translate-bot/project/infrastructure/logging"
	slackinfra "translate-bot/project/infrastructure/slack"
	"translate-bot/project/infrastructure/store"
	"translate-bot/project/infrastructure/translate"
	"translate-bot/project/service"
)

// shutdownTimeout はグレースフルシャットダウンの待機上限です
const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	// 1. 設定を読み込む
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		logging.Fatalf("設定読み込み失敗: %v", err)
	}

	// 2. ロガーを初期化
	logging.Init(logging.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})

	// 3. 依存関係を初期化
	// 言語設定ストア（インメモリ）
	prefs := store.NewMemoryRepo(cfg.PrefsMaxEntries)

	// Slack API ポート実装
	slackClient := slackinfra.NewClient(cfg.SlackBotToken)

	// 翻訳ポート実装
	translator := translate.NewOpenAITranslator(cfg.OpenAIAPIKey, "", cfg.OpenAIModel, cfg.TranslateTimeout)

	// 4. サービス層を初期化
	botService := service.NewBotService(prefs, slackClient, translator)

	// 5. HTTP ハンドラーを設定
	mux := http.NewServeMux()

	// Slack イベント受信（POST: イベント処理 / GET: 疎通確認）
	mux.Handle("/slack/events", handler.NewEventsHandler(httpsec.NewVerifier(cfg.SlackSigningSecret), botService))

	// 稼働確認
	mux.HandleFunc("/{$}", handler.NewHomeHandler())

	// ヘルスチェック
	mux.HandleFunc("/healthz", handler.NewHealthHandler())

	// 6. 自己Ping（KEEPALIVE_URL 設定時のみ）
	pinger, err := keepalive.NewPingerIfConfigured(cfg.KeepAliveURL)
	if err != nil {
		logging.Fatalf("自己Ping初期化失敗: %v", err)
	}
	if pinger != nil {
		pinger.Start()
	}

	// 7. サーバー起動
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logging.Infof("サーバー起動: %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("サーバーエラー: %v", err)
		}
	}()

	// 8. シグナル受信でグレースフルシャットダウン
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Infof("シャットダウン開始")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("サーバー停止失敗: %v", err)
	}

	if pinger != nil {
		if err := pinger.Stop(); err != nil {
			logging.Errorf("自己Ping停止失敗: %v", err)
		}
	}

	logging.Infof("シャットダウン完了")
}
