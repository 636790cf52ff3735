package service

import (
	"context"

	"translate-bot/project/domain"
)

// SlackPort は Slack API 呼び出しのポートです
type SlackPort interface {
	// PostMessage は指定チャンネルにメッセージを投稿します。
	// DMチャンネルのIDを渡せばDMへの返信になります
	PostMessage(ctx context.Context, channelID, text string) error
}

// TranslatorPort は外部翻訳バックエンドのポートです
type TranslatorPort interface {
	// Translate はテキストを指定言語に翻訳します。
	// 成功時はバックエンドが返した翻訳文（前後空白を除去済み）を返します。
	// バックエンド障害時はエラーを返します（リトライなし・1回試行のみ）
	Translate(ctx context.Context, text string, target domain.LanguageCode) (string, error)
}
