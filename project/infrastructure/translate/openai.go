package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"translate-bot/project/domain"
	"translate-bot/project/infrastructure/logging"
)

// temperature は翻訳を安定・直訳寄りにするための低温度設定です
const temperature = 0.2

// OpenAITranslator は service.TranslatorPort の OpenAI Chat Completions 実装です
type OpenAITranslator struct {
	client  *gopenai.Client
	model   string
	timeout time.Duration
}

// NewOpenAITranslator は翻訳クライアントを初期化します。
// baseURL はテスト用に差し替え可能で、空の場合はAPIのデフォルトを使用します
func NewOpenAITranslator(apiKey, baseURL, model string, timeout time.Duration) *OpenAITranslator {
	cfg := gopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAITranslator{
		client:  gopenai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// Translate はテキストを指定言語へ翻訳します。
// 固定モデル・低温度・1回試行（リトライなし）で呼び出し、
// 障害時はエラーを返します（返信への変換は呼び出し側の責務）
func (t *OpenAITranslator) Translate(ctx context.Context, text string, target domain.LanguageCode) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyText
	}

	// 対象言語の表示名と原文を埋め込んだ指示プロンプト
	prompt := fmt.Sprintf(
		"Translate the following text into %s. Reply with only the translation, nothing else.\n\n%s",
		domain.LanguageName(target), text,
	)

	// API呼び出しのハング防止タイムアウト
	timeoutCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	resp, err := t.client.CreateChatCompletion(timeoutCtx, gopenai.ChatCompletionRequest{
		Model:       t.model,
		Temperature: temperature,
		Messages: []gopenai.ChatCompletionMessage{
			{
				Role:    gopenai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("translate: 翻訳API呼び出し失敗: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translate: 翻訳APIが選択肢を返しませんでした")
	}

	logging.WithFields(map[string]interface{}{
		"target":      string(target),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debugf("翻訳完了")

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
