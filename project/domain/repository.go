package domain

// PreferenceRepository はユーザーごとの言語設定の保存を担当します
type PreferenceRepository interface {
	// GetLanguage は指定ユーザーの言語設定を返します。
	// 未設定の場合はデフォルト言語を保存したうえで返します（初回参照で実体化）。
	// 同一ユーザーへの連続呼び出しは冪等です
	GetLanguage(userID string) LanguageCode

	// SetLanguage は指定ユーザーの言語設定を更新します。
	// 登録済みの言語コードのみ受け付け、
	// 未知のコードの場合は状態を変更せず domain.ErrUnknownLanguage を返します
	SetLanguage(userID string, code LanguageCode) error
}
