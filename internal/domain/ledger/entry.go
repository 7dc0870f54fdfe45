package ledger

import (
	"errors"
	"time"
)

var (
	// ErrInvalidMemberID 会員IDが無効
	ErrInvalidMemberID = errors.New("invalid member id")
	// ErrInvalidAmount 金額が無効（0は記録しない）
	ErrInvalidAmount = errors.New("invalid amount")
)

// Entry 台帳エントリエンティティ
// 追記専用の監査記録。コミット済みの交換レコード1件につき、合計コストと
// 一致する負の金額のエントリがちょうど1件存在する。
type Entry struct {
	id           int64
	memberID     int64
	redemptionID *int64 // 交換由来のエントリの場合のみ設定
	event        string
	amount       int64 // 減算はマイナス値で記録
	entryType    EntryType
	createdAt    time.Time
}

// NewEntry 新しいEntryエンティティを作成
func NewEntry(memberID int64, redemptionID *int64, event string, amount int64, entryType EntryType, now time.Time) (*Entry, error) {
	if memberID <= 0 {
		return nil, ErrInvalidMemberID
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	return &Entry{
		memberID:     memberID,
		redemptionID: redemptionID,
		event:        event,
		amount:       amount,
		entryType:    entryType,
		createdAt:    now,
	}, nil
}

// Reconstruct 永続化済みレコードからEntryエンティティを復元
func Reconstruct(id, memberID int64, redemptionID *int64, event string, amount int64, entryType EntryType, createdAt time.Time) *Entry {
	return &Entry{
		id:           id,
		memberID:     memberID,
		redemptionID: redemptionID,
		event:        event,
		amount:       amount,
		entryType:    entryType,
		createdAt:    createdAt,
	}
}

// ID エントリIDを返す
func (e *Entry) ID() int64 {
	return e.id
}

// MemberID 会員IDを返す
func (e *Entry) MemberID() int64 {
	return e.memberID
}

// RedemptionID 対応する交換レコードIDを返す（交換由来でない場合はnil）
func (e *Entry) RedemptionID() *int64 {
	return e.redemptionID
}

// Event イベント説明文を返す
func (e *Entry) Event() string {
	return e.event
}

// Amount 金額を返す
func (e *Entry) Amount() int64 {
	return e.amount
}

// EntryType エントリタイプを返す
func (e *Entry) EntryType() EntryType {
	return e.entryType
}

// CreatedAt 作成日時を返す
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
