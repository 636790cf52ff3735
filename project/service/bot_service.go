package service

import (
	"context"
	"fmt"
	"strings"

	"translate-bot/project/domain"
	"translate-bot/project/infrastructure/logging"
)

// setlangKeyword は言語切替コマンドのキーワードです（大文字小文字を区別しない）
const setlangKeyword = "setlang"

// BotService は受信イベントの分類と返信内容の決定を管理するサービスです
type BotService interface {
	// OnMention はメンション検知時に呼ばれ、挨拶メッセージを返信します
	OnMention(ctx context.Context, ev *MentionEvent) error

	// OnDirectMessage はメッセージイベント受信時に呼ばれ、
	// setlang コマンドの処理または翻訳返信を行います。
	// DM以外・Bot自身の投稿・空メッセージは無視します
	OnDirectMessage(ctx context.Context, ev *DirectMessageEvent) error
}

// botService は BotService の実装です
type botService struct {
	prefs domain.PreferenceRepository
	sp    SlackPort
	tp    TranslatorPort
}

// NewBotService は BotService のインスタンスを作成します
func NewBotService(prefs domain.PreferenceRepository, sp SlackPort, tp TranslatorPort) BotService {
	return &botService{
		prefs: prefs,
		sp:    sp,
		tp:    tp,
	}
}

// OnMention はメンション元ユーザーに挨拶を返信します。
// 初回のユーザーはこの時点でデフォルト言語が登録されます
func (bs *botService) OnMention(ctx context.Context, ev *MentionEvent) error {
	lang := bs.prefs.GetLanguage(ev.UserID)
	name := domain.LanguageName(lang)

	text := fmt.Sprintf(
		"Xin chào <@%s>! 🚀 Your language is %s. DM me text to translate, or `setlang <%s>` to change it.",
		ev.UserID, name, domain.LanguageUsage(),
	)

	if err := bs.sp.PostMessage(ctx, ev.ChannelID, text); err != nil {
		return fmt.Errorf("OnMention: 挨拶投稿失敗: %w", err)
	}

	return nil
}

// OnDirectMessage はDMメッセージを分類して処理します。
// 遷移表（先頭一致優先）:
//  1. DMチャンネル以外 → 無視
//  2. Bot自身の投稿 → 無視（返信ループ防止）
//  3. 空メッセージ → 無視
//  4. setlang コマンド → 言語設定の更新または使い方メッセージ
//  5. それ以外 → 翻訳して返信
func (bs *botService) OnDirectMessage(ctx context.Context, ev *DirectMessageEvent) error {
	// DM（channel_type=im）以外は処理しない
	if ev.ChannelType != "im" {
		return nil
	}

	// Bot自身のメッセージや bot_message は無視
	if ev.BotID != "" || ev.SubType == "bot_message" {
		return nil
	}

	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return nil
	}

	// setlang コマンド判定（前方一致、キーワードは大文字小文字を区別しない）
	if strings.HasPrefix(strings.ToLower(text), setlangKeyword) {
		return bs.handleSetLang(ctx, ev, strings.Fields(text))
	}

	// 通常メッセージは送信者の設定言語へ翻訳して返信
	return bs.handleTranslate(ctx, ev, text)
}

// handleSetLang は setlang コマンドを処理します。
// トークンがちょうど2個かつ2番目が有効な言語コードの場合のみ設定を更新し、
// それ以外は状態を変更せず使い方メッセージを返信します
func (bs *botService) handleSetLang(ctx context.Context, ev *DirectMessageEvent, fields []string) error {
	if len(fields) == 2 {
		if code, ok := domain.NormalizeLanguage(fields[1]); ok {
			if err := bs.prefs.SetLanguage(ev.UserID, code); err != nil {
				return fmt.Errorf("OnDirectMessage: 言語設定更新失敗: %w", err)
			}

			logging.WithField("user_id", ev.UserID).Infof("言語設定を変更: %s", code)

			text := fmt.Sprintf("Language set to %s ✅", domain.LanguageName(code))
			if err := bs.sp.PostMessage(ctx, ev.ChannelID, text); err != nil {
				return fmt.Errorf("OnDirectMessage: 設定完了返信失敗: %w", err)
			}

			return nil
		}
	}

	// 引数不足・過剰・未知コードはすべて使い方メッセージ
	text := fmt.Sprintf("Usage: `setlang <%s>`", domain.LanguageUsage())
	if err := bs.sp.PostMessage(ctx, ev.ChannelID, text); err != nil {
		return fmt.Errorf("OnDirectMessage: 使い方返信失敗: %w", err)
	}

	return nil
}

// handleTranslate はテキストを送信者の設定言語へ翻訳して返信します。
// バックエンド障害は返信本文の診断文字列に変換し、必ず返信します
func (bs *botService) handleTranslate(ctx context.Context, ev *DirectMessageEvent, text string) error {
	lang := bs.prefs.GetLanguage(ev.UserID)
	name := domain.LanguageName(lang)

	result, err := bs.tp.Translate(ctx, text, lang)
	if err != nil {
		// 障害時もリクエストを失敗させず、診断をチャット本文として返す
		logging.WithField("user_id", ev.UserID).Errorf("翻訳失敗: %v", err)
		result = fmt.Sprintf("[Translation error: %v]", err)
	}

	reply := fmt.Sprintf("(%s) %s", name, result)
	if err := bs.sp.PostMessage(ctx, ev.ChannelID, reply); err != nil {
		return fmt.Errorf("OnDirectMessage: 翻訳結果返信失敗: %w", err)
	}

	return nil
}
