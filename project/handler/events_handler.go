package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/slack-go/slack/slackevents"

	"translate-bot/project/infrastructure/httpsec"
	"translate-bot/project/infrastructure/logging"
	"translate-bot/project/service"
)

// handleTimeout はイベント1件あたりの処理タイムアウトです（翻訳API待ちを含む）
const handleTimeout = 30 * time.Second

// EventsHandler は Slack Events API からのイベントを処理します
type EventsHandler struct {
	verifier   *httpsec.Verifier
	botService service.BotService
}

// NewEventsHandler はイベントハンドラーを作成します
func NewEventsHandler(verifier *httpsec.Verifier, botService service.BotService) *EventsHandler {
	return &EventsHandler{
		verifier:   verifier,
		botService: botService,
	}
}

// ServeHTTP は Slack イベント受信エンドポイントです。
// GET は疎通確認用に 200 OK を返し、POST はイベントを処理します
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		// GET は稼働確認（URL検証には使われない）
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
		return
	}

	// リクエスト本体を読み込む
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "リクエスト本体の読み込み失敗", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// まず url_verification かどうかを確認（署名検証の前に）。
	// challenge はフィールドの有無で判定し、空文字列でもそのまま返す
	var preCheck struct {
		Type      string  `json:"type"`
		Challenge *string `json:"challenge"`
	}
	if err := json.Unmarshal(body, &preCheck); err == nil {
		if preCheck.Type == "url_verification" && preCheck.Challenge != nil {
			// URL検証: challenge をそのままプレーンテキストで返す
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(*preCheck.Challenge))
			return
		}
	}

	// 再送ヘッダの検知（重複抑止は未実装の拡張ポイント。記録のみ行う）
	if retryNum := r.Header.Get("X-Slack-Retry-Num"); retryNum != "" {
		logging.WithFields(map[string]interface{}{
			"retry_num":    retryNum,
			"retry_reason": r.Header.Get("X-Slack-Retry-Reason"),
		}).Debugf("Slack再送リクエストを受信")
	}

	// Slack 署名検証（url_verification 以外のリクエスト）
	signature := r.Header.Get("X-Slack-Signature")
	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	if err := h.verifier.Verify(signature, timestamp, body); err != nil {
		logging.Warnf("署名検証失敗: %v", err)
		http.Error(w, "署名検証失敗", http.StatusUnauthorized)
		return
	}

	// Events API ペイロードのパース（署名検証済みのためトークン検証はスキップ）
	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		http.Error(w, "イベントパース失敗", http.StatusBadRequest)
		return
	}

	// event_callback のみ処理
	if event.Type != slackevents.CallbackEvent {
		w.WriteHeader(http.StatusOK)
		return
	}

	// イベント処理（翻訳API待ちを含むため同期処理）
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := h.handleEvent(ctx, event); err != nil {
		// Slack側への応答は成功にして、ログだけ記録
		logging.Errorf("イベント処理エラー: %v", err)
	}

	w.WriteHeader(http.StatusOK)
}

// handleEvent は個別のイベントをサービス層のモデルに変換して渡します。
// 対象外のイベント種別は無視します
func (h *EventsHandler) handleEvent(ctx context.Context, event slackevents.EventsAPIEvent) error {
	switch inner := event.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		return h.botService.OnMention(ctx, &service.MentionEvent{
			UserID:    inner.User,
			ChannelID: inner.Channel,
			Text:      inner.Text,
		})

	case *slackevents.MessageEvent:
		return h.botService.OnDirectMessage(ctx, &service.DirectMessageEvent{
			UserID:      inner.User,
			ChannelID:   inner.Channel,
			ChannelType: inner.ChannelType,
			SubType:     inner.SubType,
			BotID:       inner.BotID,
			Text:        inner.Text,
		})
	}

	return nil
}
