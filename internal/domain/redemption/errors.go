package redemption

import "errors"

var (
	// ErrRedemptionNotFound 交換レコードが見つからないエラー
	ErrRedemptionNotFound = errors.New("redemption not found")
	// ErrInvalidTransition 許可されていないステータス遷移エラー
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidQuantity 無効な数量エラー
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrPrivilegeDenied 権限不足エラー
	ErrPrivilegeDenied = errors.New("privilege denied")
	// ErrTransactionFailed 交換処理のトランザクション失敗エラー（全ロールバック済み）
	ErrTransactionFailed = errors.New("transaction failed")
)
