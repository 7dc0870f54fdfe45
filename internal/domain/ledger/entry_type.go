package ledger

import (
	"fmt"
)

// EntryType 台帳エントリのタイプを表す値オブジェクト
type EntryType string

const (
	EntryTypeRedemption EntryType = "reward_redemption" // 景品交換による減算
	EntryTypeAdjustment EntryType = "manual_adjustment" // 管理者による手動調整
)

// NewEntryType 新しいEntryTypeを作成
func NewEntryType(s string) (EntryType, error) {
	switch s {
	case "reward_redemption", "manual_adjustment":
		return EntryType(s), nil
	default:
		return "", fmt.Errorf("invalid ledger entry type: %s", s)
	}
}

// String 文字列表現を返す
func (et EntryType) String() string {
	return string(et)
}

// Valid 有効なエントリタイプかどうかを返す
func (et EntryType) Valid() bool {
	return et == EntryTypeRedemption || et == EntryTypeAdjustment
}
