package reward

import (
	"context"
	"database/sql"
)

// RewardRepository 景品リポジトリインターフェース
type RewardRepository interface {
	// FindByID 景品IDで景品を取得
	FindByID(ctx context.Context, id int64) (*Reward, error)

	// FindByIDForUpdate 景品IDで景品を取得し、トランザクション内で行ロックを取る
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*Reward, error)

	// FindActive 公開中の景品一覧を取得
	FindActive(ctx context.Context) ([]*Reward, error)

	// SaveStock 在庫数をトランザクション内で保存
	SaveStock(ctx context.Context, tx *sql.Tx, r *Reward) error
}
