package reward

import (
	"errors"
)

var (
	// ErrInvalidRewardID 景品IDが無効
	ErrInvalidRewardID = errors.New("invalid reward id")
	// ErrInvalidUnitCost 単価が無効
	ErrInvalidUnitCost = errors.New("invalid unit cost")
	// ErrInvalidStock 在庫数が無効
	ErrInvalidStock = errors.New("invalid stock")
)

// Reward 景品カタログエンティティ
// 在庫はコミット済みの交換によってのみ減少し、負になってはならない。
// requiredPrivilegeが空文字の場合は要求なし（ランク0相当）を意味する。
type Reward struct {
	id                int64
	name              string
	description       string
	unitCost          int64 // 1個あたりのコイン単価（正の整数）
	stock             int64
	requiredPrivilege string
	isActive          bool
}

// NewReward 新しいRewardエンティティを作成
func NewReward(id int64, name, description string, unitCost, stock int64, requiredPrivilege string, isActive bool) (*Reward, error) {
	if id <= 0 {
		return nil, ErrInvalidRewardID
	}
	if unitCost <= 0 {
		return nil, ErrInvalidUnitCost
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	return &Reward{
		id:                id,
		name:              name,
		description:       description,
		unitCost:          unitCost,
		stock:             stock,
		requiredPrivilege: requiredPrivilege,
		isActive:          isActive,
	}, nil
}

// ID 景品IDを返す
func (r *Reward) ID() int64 {
	return r.id
}

// Name 景品名を返す
func (r *Reward) Name() string {
	return r.name
}

// Description 説明を返す
func (r *Reward) Description() string {
	return r.description
}

// UnitCost 単価を返す
func (r *Reward) UnitCost() int64 {
	return r.unitCost
}

// Stock 残り在庫数を返す
func (r *Reward) Stock() int64 {
	return r.stock
}

// RequiredPrivilege 必要権限ラベルを返す（空文字は要求なし）
func (r *Reward) RequiredPrivilege() string {
	return r.requiredPrivilege
}

// IsActive 公開中かどうかを返す
func (r *Reward) IsActive() bool {
	return r.isActive
}

// InStock 在庫が1個以上あるかどうかを返す
func (r *Reward) InStock() bool {
	return r.stock > 0
}

// DecrementStock 在庫をquantityだけ減らす
// 在庫不足の場合はErrOutOfStockを返し、在庫は変更されない。
func (r *Reward) DecrementStock(quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.stock < quantity {
		return ErrOutOfStock
	}
	r.stock -= quantity
	return nil
}

// MustNewReward テスト用ヘルパー: NewRewardを呼び出し、エラーが発生した場合はpanicする
func MustNewReward(id int64, name, description string, unitCost, stock int64, requiredPrivilege string, isActive bool) *Reward {
	r, err := NewReward(id, name, description, unitCost, stock, requiredPrivilege, isActive)
	if err != nil {
		panic(err)
	}
	return r
}
