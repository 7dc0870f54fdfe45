package ledger

import (
	"context"
	"database/sql"
)

// LedgerRepository 台帳リポジトリインターフェース
// 追記専用であり、既存エントリの更新・削除は提供しない。
type LedgerRepository interface {
	// Save エントリをトランザクション内で追記
	Save(ctx context.Context, tx *sql.Tx, e *Entry) error

	// FindByMemberID 会員IDでエントリ一覧を取得（ページネーション対応）
	FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*Entry, error)
}
