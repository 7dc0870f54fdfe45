package reward

import "errors"

var (
	// ErrRewardNotFound 景品が見つからないエラー
	ErrRewardNotFound = errors.New("reward not found")
	// ErrOutOfStock 在庫不足エラー
	ErrOutOfStock = errors.New("out of stock")
	// ErrInvalidQuantity 無効な数量エラー
	ErrInvalidQuantity = errors.New("invalid quantity")
)
