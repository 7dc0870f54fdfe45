package member

import (
	"errors"
)

var (
	// ErrInvalidMemberID 会員IDが無効
	ErrInvalidMemberID = errors.New("invalid member id")
	// ErrBalanceOutOfRange 残高が範囲外
	ErrBalanceOutOfRange = errors.New("balance out of range")
)

// MaxBalance 最大残高 (10兆コイン)
const MaxBalance = 10_000_000_000_000

// Member 会員エンティティ
// 残高（コイン）は負になってはならない。権限ラベルは外部の管理フローで
// 付与・剥奪されるため、このコアでは読み取り専用の入力となる。
type Member struct {
	id          int64
	displayName string
	balance     int64 // コイン残高（整数値、小数点なし）
	privilege   string
}

// NewMember 新しいMemberエンティティを作成
func NewMember(id int64, displayName string, balance int64, privilege string) (*Member, error) {
	if id <= 0 {
		return nil, ErrInvalidMemberID
	}
	if balance < 0 || balance > MaxBalance {
		return nil, ErrBalanceOutOfRange
	}
	return &Member{
		id:          id,
		displayName: displayName,
		balance:     balance,
		privilege:   privilege,
	}, nil
}

// ID 会員IDを返す
func (m *Member) ID() int64 {
	return m.id
}

// DisplayName 表示名を返す
func (m *Member) DisplayName() string {
	return m.displayName
}

// Balance コイン残高を返す
func (m *Member) Balance() int64 {
	return m.balance
}

// Privilege 権限ラベルを返す
func (m *Member) Privilege() string {
	return m.privilege
}

// Debit 残高からamountを差し引く
// 残高不足の場合はErrInsufficientBalanceを返し、残高は変更されない。
func (m *Member) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if m.balance < amount {
		return ErrInsufficientBalance
	}
	m.balance -= amount
	return nil
}

// CanAfford 単価unitCost以上の残高があるかどうかを返す
func (m *Member) CanAfford(unitCost int64) bool {
	return m.balance >= unitCost
}

// MustNewMember テスト用ヘルパー: NewMemberを呼び出し、エラーが発生した場合はpanicする
func MustNewMember(id int64, displayName string, balance int64, privilege string) *Member {
	m, err := NewMember(id, displayName, balance, privilege)
	if err != nil {
		panic(err)
	}
	return m
}
