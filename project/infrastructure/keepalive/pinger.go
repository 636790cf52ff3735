package keepalive

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"

	"translate-bot/project/infrastructure/logging"
)

const (
	// pingInterval は自己Pingの実行間隔です
	pingInterval = 300 * time.Second

	// pingTimeout は1回のPingリクエストのタイムアウトです
	pingTimeout = 8 * time.Second
)

// Pinger はホスティング側のアイドルタイムアウトによる停止を防ぐため、
// 自サービスの公開URLへ定期的にGETリクエストを送るバックグラウンドジョブです
type Pinger struct {
	scheduler gocron.Scheduler
	url       string
	client    *http.Client
}

// NewPinger は自己Pingジョブを作成します（この時点では開始しません）
func NewPinger(url string) (*Pinger, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("keepalive: スケジューラ作成失敗: %w", err)
	}

	p := &Pinger{
		scheduler: s,
		url:       url,
		client:    &http.Client{Timeout: pingTimeout},
	}

	_, err = s.NewJob(
		gocron.DurationJob(pingInterval),
		gocron.NewTask(p.ping),
		gocron.WithName("keepalive"),
	)
	if err != nil {
		return nil, fmt.Errorf("keepalive: ジョブ登録失敗: %w", err)
	}

	return p, nil
}

// NewPingerIfConfigured はURLが設定されている場合のみ自己Pingジョブを作成します。
// URLが空文字列の場合は機能を無効とみなし、(nil, nil) を返します
func NewPingerIfConfigured(url string) (*Pinger, error) {
	if url == "" {
		logging.Infof("keepalive: URL未設定のため自己Pingは無効です")
		return nil, nil
	}
	return NewPinger(url)
}

// Start は自己Pingジョブを開始します。プロセス終了まで繰り返し実行されます
func (p *Pinger) Start() {
	p.scheduler.Start()
	logging.WithField("url", p.url).Infof("keepalive: 自己Pingを開始しました（間隔 %s）", pingInterval)
}

// Stop はスケジューラを停止し、実行中のジョブの完了を待ちます
func (p *Pinger) Stop() error {
	if err := p.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("keepalive: スケジューラ停止失敗: %w", err)
	}
	return nil
}

// ping は1回の自己Pingを実行します。
// 失敗してもログを残して次回実行を待つだけで、致命的エラーにはなりません
func (p *Pinger) ping() {
	resp, err := p.client.Get(p.url)
	if err != nil {
		logging.Warnf("keepalive: Ping失敗: %v", err)
		return
	}
	defer resp.Body.Close()

	logging.Debugf("keepalive: Ping成功 (status=%d)", resp.StatusCode)
}
