package redemption

import (
	"context"
	"database/sql"
)

// RedemptionRepository 交換レコードリポジトリインターフェース
type RedemptionRepository interface {
	// Create 交換レコードをトランザクション内で作成し、採番されたIDを返す
	Create(ctx context.Context, tx *sql.Tx, r *Redemption) (int64, error)

	// FindByID 交換レコードIDで取得
	FindByID(ctx context.Context, id int64) (*Redemption, error)

	// FindByMemberID 会員IDで交換レコード一覧を取得（ページネーション対応）
	FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*Redemption, error)

	// FindByStatus ステータスで交換レコード一覧を取得（管理者向け）
	FindByStatus(ctx context.Context, status Status, limit, offset int) ([]*Redemption, error)

	// UpdateStatus 遷移元ステータスをガード条件にしてステータスを更新する
	// 更新対象が既にfromから進んでいた場合はErrInvalidTransitionを返す。
	UpdateStatus(ctx context.Context, tx *sql.Tx, r *Redemption, from Status) error
}
