package member

import (
	"context"
	"database/sql"
)

// MemberRepository 会員リポジトリインターフェース
type MemberRepository interface {
	// FindByID 会員IDで会員を取得
	FindByID(ctx context.Context, id int64) (*Member, error)

	// FindByIDForUpdate 会員IDで会員を取得し、トランザクション内で行ロックを取る
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*Member, error)

	// SaveBalance 残高をトランザクション内で保存
	SaveBalance(ctx context.Context, tx *sql.Tx, m *Member) error
}
