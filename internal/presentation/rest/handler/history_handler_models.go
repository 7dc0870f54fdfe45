package handler

import "time"

// LedgerEntryItem 台帳エントリアイテム
// @Description 台帳エントリアイテム
type LedgerEntryItem struct {
	EntryID      int64      `json:"entry_id" example:"101"`
	RedemptionID *int64     `json:"redemption_id,omitempty" example:"7"`
	Event        string     `json:"event" example:"Reward redemption: オリジナルTシャツ (2x)"`
	Amount       int64      `json:"amount" example:"-5000"`
	EntryType    string     `json:"entry_type" example:"reward_redemption"`
	CreatedAt    time.Time  `json:"created_at"`
}

// LedgerHistoryResponse 台帳履歴レスポンス
// @Description 台帳履歴レスポンス
type LedgerHistoryResponse struct {
	MemberID int64             `json:"member_id" example:"42"`
	Entries  []LedgerEntryItem `json:"entries"`
	Limit    int               `json:"limit" example:"50"`
	Offset   int               `json:"offset" example:"0"`
}
