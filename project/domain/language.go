package domain

import "strings"

// LanguageCode は翻訳先言語を示す短い識別子です（例: "en", "vi"）
type LanguageCode string

// サポートする言語コード定義
const (
	// LangEN は英語。未設定ユーザーのデフォルト言語です
	LangEN LanguageCode = "en"

	// LangVI はベトナム語
	LangVI LanguageCode = "vi"

	// LangKR は韓国語
	LangKR LanguageCode = "kr"

	// LangBR はブラジルポルトガル語
	LangBR LanguageCode = "br"

	// LangJP は日本語
	LangJP LanguageCode = "jp"
)

// DefaultLanguage は未設定ユーザーに適用されるデフォルト言語です
const DefaultLanguage = LangEN

// languageNames は言語コードから表示名への固定マッピングです。
// プロセス起動後は不変です
var languageNames = map[LanguageCode]string{
	LangEN: "English",
	LangVI: "Vietnamese",
	LangKR: "Korean",
	LangBR: "Brazilian Portuguese",
	LangJP: "Japanese",
}

// languageOrder は使い方メッセージなどで使う安定した表示順です
var languageOrder = []LanguageCode{LangEN, LangVI, LangKR, LangBR, LangJP}

// NormalizeLanguage はトークンを正規化し、登録済み言語コードかどうかを返します。
// 言語コードの照合は大文字小文字を区別しません
func NormalizeLanguage(token string) (LanguageCode, bool) {
	code := LanguageCode(strings.ToLower(strings.TrimSpace(token)))
	_, ok := languageNames[code]
	return code, ok
}

// LanguageName は言語コードの表示名を返します。
// 未知のコードを渡された場合は失敗せず、デフォルト言語の表示名を返します
func LanguageName(code LanguageCode) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return languageNames[DefaultLanguage]
}

// LanguageCodes はサポートする全言語コードを安定した順序で返します
func LanguageCodes() []LanguageCode {
	codes := make([]LanguageCode, len(languageOrder))
	copy(codes, languageOrder)
	return codes
}

// LanguageUsage は "en/vi/kr/br/jp" 形式の言語コード一覧文字列を返します
func LanguageUsage() string {
	parts := make([]string, 0, len(languageOrder))
	for _, code := range languageOrder {
		parts = append(parts, string(code))
	}
	return strings.Join(parts, "/")
}
