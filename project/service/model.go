package service

// MentionEvent はBotがメンションされたイベントを表します
type MentionEvent struct {
	// UserID はメンションを投稿したユーザーのID
	UserID string

	// ChannelID はメンションが投稿されたチャンネルのID
	ChannelID string

	// Text はメッセージのテキスト
	Text string
}

// DirectMessageEvent はBotへのメッセージイベントを表します
type DirectMessageEvent struct {
	// UserID はメッセージを送信したユーザーのID
	UserID string

	// ChannelID はメッセージが投稿されたチャンネルのID
	ChannelID string

	// ChannelType はチャンネル種別（DMの場合は "im"）
	ChannelType string

	// SubType はメッセージのサブタイプ（"bot_message" など）
	SubType string

	// BotID はBot投稿の場合のBot ID（ループ防止の判定に使用）
	BotID string

	// Text はメッセージのテキスト
	Text string
}
