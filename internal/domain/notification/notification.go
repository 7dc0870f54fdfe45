package notification

import (
	"context"
	"time"
)

// Notification 会員向け通知
type Notification struct {
	MemberID  int64
	Message   string
	CreatedAt time.Time
}

// Notifier 通知送信インターフェース
// 送信はfire-and-forgetであり、失敗しても呼び出し元の状態変更を
// ロールバックしてはならない。
type Notifier interface {
	// Notify 通知を送信
	Notify(ctx context.Context, n *Notification) error
}
