package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Client は service.SlackPort の Slack SDK 実装です。
// 単一ワークスペースのBotトークンでメッセージを投稿します
type Client struct {
	api *slack.Client
}

// NewClient は Slack クライアントを初期化します
func NewClient(botToken string) *Client {
	return &Client{
		api: slack.New(botToken),
	}
}

// PostMessage は指定チャンネルにメッセージを投稿します。
// DMチャンネルのIDを渡せばDMへの返信になります
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("slack: メッセージ投稿失敗 (channel=%s): %w", channelID, err)
	}

	return nil
}
