package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var globalLogger *logrus.Logger

// Config はロガーの設定を表します
type Config struct {
	// Level はログレベル（"debug", "info", "warn", "error"）
	Level string

	// File はログファイルのパス。空の場合は標準出力のみに出力します
	File string
}

// Init はグローバルロガーを初期化します。
// ログレベルの解析に失敗した場合は info レベルにフォールバックします
func Init(cfg Config) {
	globalLogger = logrus.New()

	// ログレベル設定
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	globalLogger.SetLevel(level)

	// 出力先設定（ファイル指定時はローテーション付きで標準出力と併用）
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		globalLogger.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	} else {
		globalLogger.SetOutput(os.Stdout)
	}

	globalLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// L はグローバルロガーを返します。
// 未初期化の場合はデフォルト設定で初期化します
func L() *logrus.Logger {
	if globalLogger == nil {
		Init(Config{Level: "info"})
	}
	return globalLogger
}

// Debugf はデバッグレベルでフォーマット付きログを出力します
func Debugf(format string, args ...interface{}) {
	L().Debugf(format, args...)
}

// Infof は情報レベルでフォーマット付きログを出力します
func Infof(format string, args ...interface{}) {
	L().Infof(format, args...)
}

// Warnf は警告レベルでフォーマット付きログを出力します
func Warnf(format string, args ...interface{}) {
	L().Warnf(format, args...)
}

// Errorf はエラーレベルでフォーマット付きログを出力します
func Errorf(format string, args ...interface{}) {
	L().Errorf(format, args...)
}

// Fatalf は致命的エラーを出力してプロセスを終了します
func Fatalf(format string, args ...interface{}) {
	L().Fatalf(format, args...)
}

// WithField は単一の構造化フィールド付きエントリを返します
func WithField(key string, value interface{}) *logrus.Entry {
	return L().WithField(key, value)
}

// WithFields は複数の構造化フィールド付きエントリを返します
func WithFields(fields logrus.Fields) *logrus.Entry {
	return L().WithFields(fields)
}
