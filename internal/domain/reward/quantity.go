package reward

// MaxRedeemQuantity 1回の交換で受け付ける数量の上限
const MaxRedeemQuantity = 10

// TotalCost 単価×数量の合計コストを返す
func TotalCost(unitCost, quantity int64) int64 {
	return unitCost * quantity
}

// MaxQuantity 残高・在庫・システム上限から導かれる交換可能な最大数量を返す
// 表示目的のガイドであり、実際の交換時には改めて検証される。
func MaxQuantity(balance, unitCost, stock int64) int64 {
	max := balance / unitCost
	if stock < max {
		max = stock
	}
	if max > MaxRedeemQuantity {
		max = MaxRedeemQuantity
	}
	if max < 0 {
		max = 0
	}
	return max
}

// ValidQuantity 数量が1以上かつ上限以下かどうかを返す
func ValidQuantity(quantity int64) bool {
	return quantity >= 1 && quantity <= MaxRedeemQuantity
}
