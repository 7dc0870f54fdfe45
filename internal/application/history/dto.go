package history

import (
	"time"
)

// GetLedgerHistoryRequest 台帳履歴取得リクエスト
type GetLedgerHistoryRequest struct {
	MemberID  int64
	Limit     int
	Offset    int
	EntryType string // 空文字の場合はフィルタなし
}

// LedgerEntryDTO 台帳エントリのレスポンス表現
type LedgerEntryDTO struct {
	EntryID      int64
	RedemptionID *int64
	Event        string
	Amount       int64
	EntryType    string
	CreatedAt    time.Time
}

// GetLedgerHistoryResponse 台帳履歴取得レスポンス
type GetLedgerHistoryResponse struct {
	MemberID int64
	Entries  []*LedgerEntryDTO
	Limit    int
	Offset   int
}
