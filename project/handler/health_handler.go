package handler

import "net/http"

// homeBody はルートエンドポイントの稼働確認テキストです
const homeBody = "✅ Slack Bot is running on Railway!"

// healthBody はヘルスチェックの固定レスポンスです
const healthBody = `{"status":"ok"}`

// NewHomeHandler は稼働確認用のルートエンドポイントを返します
func NewHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(homeBody))
	}
}

// NewHealthHandler はヘルスチェックエンドポイントを返します。
// 他コンポーネントの状態に依存せず、常に {"status":"ok"} を返します
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(healthBody))
	}
}
