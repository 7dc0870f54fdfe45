package transaction

import (
	"context"
	"database/sql"
)

// TransactionManager トランザクション管理インターフェース
// fnがエラーを返した場合は全ての変更がロールバックされる。
type TransactionManager interface {
	// WithTransaction トランザクション内で関数を実行
	WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}
