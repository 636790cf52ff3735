package httpsec

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"
)

// timestampTolerance はリプレイ攻撃対策のタイムスタンプ許容幅です（5分）
const timestampTolerance = 300

// Verifier は Slack リクエスト署名の検証器です
type Verifier struct {
	signingSecret string
	now           func() time.Time // テスト時に差し替え可能
}

// NewVerifier は署名検証器を作成します
func NewVerifier(signingSecret string) *Verifier {
	return &Verifier{
		signingSecret: signingSecret,
		now:           time.Now,
	}
}

// Verify はリクエストの X-Slack-Signature / X-Slack-Request-Timestamp ヘッダと
// 本文から署名を検証し、改ざんやリプレイ攻撃から保護します
func (v *Verifier) Verify(signature, timestamp string, body []byte) error {
	// タイムスタンプの検証（5分以内）
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("httpsec: タイムスタンプ形式が不正です: %w", err)
	}

	now := v.now().Unix()
	if abs(now-ts) > timestampTolerance {
		return fmt.Errorf("httpsec: タイムスタンプが古すぎます: now=%d, ts=%d", now, ts)
	}

	// Slack署名: "v0=<hash>"
	// hash = HMAC-SHA256("v0:<timestamp>:<body>", signingSecret)
	expected := Sign(v.signingSecret, timestamp, body)

	// 定時間比較（タイミング攻撃対策）
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("httpsec: 署名が一致しません")
	}

	return nil
}

// Sign は Slack 署名を計算します
func Sign(signingSecret, timestamp string, body []byte) string {
	h := hmac.New(sha256.New, []byte(signingSecret))
	fmt.Fprintf(h, "v0:%s:", timestamp)
	h.Write(body)
	return fmt.Sprintf("v0=%x", h.Sum(nil))
}

// abs は絶対値を計算します
func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
