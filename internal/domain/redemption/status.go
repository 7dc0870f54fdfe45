package redemption

import (
	"fmt"
)

// Status 交換レコードの配送ステータスを表す値オブジェクト
type Status string

const (
	StatusPendingVerification Status = "pending_verification" // 検証待ち（初期状態）
	StatusProcessing          Status = "processing"           // 処理中
	StatusShipped             Status = "shipped"              // 発送済み
	StatusDelivered           Status = "delivered"            // 受取確認済み（終端・成功）
	StatusRejected            Status = "rejected"             // 配送失敗（終端・失敗）
	StatusCancelled           Status = "cancelled"            // 管理者キャンセル（終端）
)

// NewStatus 新しいStatusを作成
func NewStatus(s string) (Status, error) {
	switch s {
	case "pending_verification", "processing", "shipped", "delivered", "rejected", "cancelled":
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid redemption status: %s", s)
	}
}

// String 文字列表現を返す
func (s Status) String() string {
	return string(s)
}

// Valid 有効なステータスかどうかを返す
func (s Status) Valid() bool {
	switch s {
	case StatusPendingVerification, StatusProcessing, StatusShipped, StatusDelivered, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal 終端状態（これ以上遷移できない状態）かどうかを返す
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo sからtargetへの遷移が許可されているかどうかを返す
// 許可される遷移:
//
//	pending_verification -> processing | cancelled
//	processing           -> shipped    | cancelled
//	shipped              -> delivered  | rejected
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPendingVerification:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered || target == StatusRejected
	default:
		return false
	}
}
