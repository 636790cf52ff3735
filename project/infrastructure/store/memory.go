package store

import (
	"sync"

	"translate-bot/project/domain"
	"translate-bot/project/infrastructure/logging"
)

// entry はユーザー1人分の言語設定レコードです
type entry struct {
	code domain.LanguageCode

	// seq は最終アクセス順序（LRU判定用の単調増加カウンタ）
	seq uint64
}

// MemoryRepo は domain.PreferenceRepository のインメモリ実装です。
// プロセス内で唯一の共有可変状態であり、全操作をストア全体のロックで直列化します
type MemoryRepo struct {
	mu         sync.Mutex
	prefs      map[string]*entry
	seq        uint64
	maxEntries int
}

// NewMemoryRepo はインメモリリポジトリを初期化します。
// maxEntries が 0 の場合はエントリ数無制限です（エントリは削除されません）。
// 正の値を指定した場合は上限超過時に最も古く参照されたエントリを削除します
func NewMemoryRepo(maxEntries int) *MemoryRepo {
	return &MemoryRepo{
		prefs:      make(map[string]*entry),
		maxEntries: maxEntries,
	}
}

// GetLanguage は指定ユーザーの言語設定を返します。
// 未設定の場合はデフォルト言語を登録したうえで返します（初回参照で実体化）
func (repo *MemoryRepo) GetLanguage(userID string) domain.LanguageCode {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if e, ok := repo.prefs[userID]; ok {
		repo.seq++
		e.seq = repo.seq
		return e.code
	}

	// 初回参照: デフォルト言語で実体化
	repo.put(userID, domain.DefaultLanguage)

	return domain.DefaultLanguage
}

// SetLanguage は指定ユーザーの言語設定を更新します。
// 未知の言語コードは domain.ErrUnknownLanguage を返し、状態を変更しません
func (repo *MemoryRepo) SetLanguage(userID string, code domain.LanguageCode) error {
	norm, ok := domain.NormalizeLanguage(string(code))
	if !ok {
		return domain.ErrUnknownLanguage
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.put(userID, norm)

	return nil
}

// Len は現在のエントリ数を返します
func (repo *MemoryRepo) Len() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return len(repo.prefs)
}

// put はエントリを登録し、上限設定時は最古参照エントリを追い出します。
// 呼び出し側でロックを保持していること
func (repo *MemoryRepo) put(userID string, code domain.LanguageCode) {
	repo.seq++

	if e, ok := repo.prefs[userID]; ok {
		e.code = code
		e.seq = repo.seq
		return
	}

	repo.prefs[userID] = &entry{code: code, seq: repo.seq}

	// 上限超過時はLRU追い出し（maxEntries=0 は無制限）
	if repo.maxEntries > 0 && len(repo.prefs) > repo.maxEntries {
		var oldestID string
		var oldestSeq uint64
		for id, e := range repo.prefs {
			if oldestID == "" || e.seq < oldestSeq {
				oldestID = id
				oldestSeq = e.seq
			}
		}
		delete(repo.prefs, oldestID)
		logging.WithField("user_id", oldestID).Debugf("言語設定エントリを追い出しました（上限 %d 超過）", repo.maxEntries)
	}
}
