package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translate-bot/project/domain"
	"translate-bot/project/infrastructure/store"
)

// fakeSlack は SlackPort のテスト用実装で、投稿内容を記録します
type fakeSlack struct {
	channels []string
	texts    []string
	err      error
}

func (f *fakeSlack) PostMessage(_ context.Context, channelID, text string) error {
	if f.err != nil {
		return f.err
	}
	f.channels = append(f.channels, channelID)
	f.texts = append(f.texts, text)
	return nil
}

// fakeTranslator は TranslatorPort のテスト用実装です
type fakeTranslator struct {
	result     string
	err        error
	calls      int
	lastText   string
	lastTarget domain.LanguageCode
}

func (f *fakeTranslator) Translate(_ context.Context, text string, target domain.LanguageCode) (string, error) {
	f.calls++
	f.lastText = text
	f.lastTarget = target
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

// newTestService はテスト用のサービス一式を組み立てます
func newTestService() (BotService, *store.MemoryRepo, *fakeSlack, *fakeTranslator) {
	prefs := store.NewMemoryRepo(0)
	sp := &fakeSlack{}
	tp := &fakeTranslator{}
	return NewBotService(prefs, sp, tp), prefs, sp, tp
}

// TestOnMention はメンションへの挨拶返信と設定の実体化を検証します
func TestOnMention(t *testing.T) {
	t.Parallel()

	bs, prefs, sp, _ := newTestService()

	err := bs.OnMention(context.Background(), &MentionEvent{
		UserID:    "U123",
		ChannelID: "C001",
		Text:      "<@BOT> hello",
	})
	require.NoError(t, err)

	// 返信はちょうど1件、送信者と現在言語の表示名を含む
	require.Len(t, sp.texts, 1)
	assert.Equal(t, "C001", sp.channels[0])
	assert.Contains(t, sp.texts[0], "<@U123>")
	assert.Contains(t, sp.texts[0], "English")

	// 初回メンションでデフォルト言語が実体化される
	assert.Equal(t, 1, prefs.Len())
	assert.Equal(t, domain.DefaultLanguage, prefs.GetLanguage("U123"))
}

// TestOnMentionUsesStoredLanguage は設定済み言語が挨拶に反映されることを検証します
func TestOnMentionUsesStoredLanguage(t *testing.T) {
	t.Parallel()

	bs, prefs, sp, _ := newTestService()
	require.NoError(t, prefs.SetLanguage("U123", domain.LangJP))

	err := bs.OnMention(context.Background(), &MentionEvent{UserID: "U123", ChannelID: "C001"})
	require.NoError(t, err)

	require.Len(t, sp.texts, 1)
	assert.Contains(t, sp.texts[0], "Japanese")
}

// TestOnDirectMessageIgnored は無視されるべきイベントで返信も状態変更も
// 起きないことを検証します
func TestOnDirectMessageIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   DirectMessageEvent
	}{
		{
			name: "DM以外のチャンネル",
			ev:   DirectMessageEvent{UserID: "U1", ChannelID: "C1", ChannelType: "channel", Text: "hello"},
		},
		{
			name: "bot_message サブタイプ",
			ev:   DirectMessageEvent{UserID: "U1", ChannelID: "D1", ChannelType: "im", SubType: "bot_message", Text: "hello"},
		},
		{
			name: "BotID 付き投稿",
			ev:   DirectMessageEvent{ChannelID: "D1", ChannelType: "im", BotID: "B1", Text: "hello"},
		},
		{
			name: "空メッセージ",
			ev:   DirectMessageEvent{UserID: "U1", ChannelID: "D1", ChannelType: "im", Text: ""},
		},
		{
			name: "空白のみのメッセージ",
			ev:   DirectMessageEvent{UserID: "U1", ChannelID: "D1", ChannelType: "im", Text: "   \n\t "},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bs, prefs, sp, tp := newTestService()

			err := bs.OnDirectMessage(context.Background(), &tt.ev)
			require.NoError(t, err)

			assert.Empty(t, sp.texts, "無視イベントに返信してはいけない")
			assert.Zero(t, tp.calls)
			assert.Zero(t, prefs.Len())
		})
	}
}

// TestSetLangCommand は setlang コマンドの解析と返信を検証します
func TestSetLangCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		wantLang     domain.LanguageCode // 処理後に GetLanguage が返すべき値
		wantContains string
	}{
		{
			name:         "有効なコード",
			text:         "setlang vi",
			wantLang:     domain.LangVI,
			wantContains: "Vietnamese",
		},
		{
			name:         "キーワードもコードも大文字",
			text:         "SETLANG VI",
			wantLang:     domain.LangVI,
			wantContains: "Vietnamese",
		},
		{
			name:         "引数なしは使い方メッセージ",
			text:         "setlang",
			wantLang:     domain.DefaultLanguage,
			wantContains: "en/vi/kr/br/jp",
		},
		{
			name:         "未知コードは使い方メッセージ",
			text:         "setlang xx",
			wantLang:     domain.DefaultLanguage,
			wantContains: "en/vi/kr/br/jp",
		},
		{
			name:         "引数過剰は使い方メッセージ",
			text:         "setlang en extra",
			wantLang:     domain.DefaultLanguage,
			wantContains: "en/vi/kr/br/jp",
		},
		{
			name:         "コードが連結されたトークンは使い方メッセージ",
			text:         "setlangvi",
			wantLang:     domain.DefaultLanguage,
			wantContains: "en/vi/kr/br/jp",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bs, prefs, sp, tp := newTestService()

			err := bs.OnDirectMessage(context.Background(), &DirectMessageEvent{
				UserID:      "U1",
				ChannelID:   "D1",
				ChannelType: "im",
				Text:        tt.text,
			})
			require.NoError(t, err)

			// コマンドは翻訳せず、ちょうど1件返信する
			require.Len(t, sp.texts, 1)
			assert.Contains(t, sp.texts[0], tt.wantContains)
			assert.Zero(t, tp.calls)

			assert.Equal(t, tt.wantLang, prefs.GetLanguage("U1"))
		})
	}
}

// TestSetLangKeywordPrefix は setlang で始まるテキストが（連結トークンでも）
// 翻訳されずコマンド分岐に入ることを検証します
func TestSetLangKeywordPrefix(t *testing.T) {
	t.Parallel()

	bs, prefs, sp, tp := newTestService()
	tp.result = "ok"

	err := bs.OnDirectMessage(context.Background(), &DirectMessageEvent{
		UserID:      "U1",
		ChannelID:   "D1",
		ChannelType: "im",
		Text:        "setlangvi",
	})
	require.NoError(t, err)

	// 翻訳は呼ばれず、使い方メッセージが1件だけ返信される
	assert.Zero(t, tp.calls)
	require.Len(t, sp.texts, 1)
	assert.Contains(t, sp.texts[0], "en/vi/kr/br/jp")
	assert.Equal(t, domain.DefaultLanguage, prefs.GetLanguage("U1"))
}

// TestTranslateReply は通常メッセージの翻訳返信を検証します
func TestTranslateReply(t *testing.T) {
	t.Parallel()

	bs, prefs, sp, tp := newTestService()
	require.NoError(t, prefs.SetLanguage("U1", domain.LangKR))
	tp.result = "안녕하세요"

	err := bs.OnDirectMessage(context.Background(), &DirectMessageEvent{
		UserID:      "U1",
		ChannelID:   "D1",
		ChannelType: "im",
		Text:        "  hello there  ",
	})
	require.NoError(t, err)

	// 翻訳は送信者の設定言語で1回だけ呼ばれる
	assert.Equal(t, 1, tp.calls)
	assert.Equal(t, domain.LangKR, tp.lastTarget)
	assert.Equal(t, "hello there", tp.lastText)

	// 返信は表示名を括弧で前置した形式
	require.Len(t, sp.texts, 1)
	assert.Equal(t, "(Korean) 안녕하세요", sp.texts[0])
}

// TestTranslateBackendFailure はバックエンド障害が診断付き返信に変換され、
// リクエスト自体は成功することを検証します
func TestTranslateBackendFailure(t *testing.T) {
	t.Parallel()

	bs, _, sp, tp := newTestService()
	tp.err = errors.New("boom")

	err := bs.OnDirectMessage(context.Background(), &DirectMessageEvent{
		UserID:      "U1",
		ChannelID:   "D1",
		ChannelType: "im",
		Text:        "hello",
	})
	require.NoError(t, err, "バックエンド障害でもハンドラーは失敗しない")

	require.Len(t, sp.texts, 1)
	assert.Contains(t, sp.texts[0], "(English) [Translation error:")
	assert.Contains(t, sp.texts[0], "boom")
}
