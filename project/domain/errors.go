package domain

import "errors"

// ドメインエラー定義
var (
	// ErrUnknownLanguage はサポート外の言語コードが指定された場合のエラー
	ErrUnknownLanguage = errors.New("ドメイン: サポートされていない言語コードです")

	// ErrEmptyText は翻訳対象テキストが空の場合のエラー
	ErrEmptyText = errors.New("ドメイン: テキストが空です")
)
