package handler

import "time"

// RedeemRequest 景品交換リクエスト
// @Description 景品交換リクエスト
type RedeemRequest struct {
	RewardID      int64  `json:"reward_id" example:"1"`
	Quantity      *int64 `json:"quantity" example:"2"`
	ShippingNotes string `json:"shipping_notes" example:"平日午前中の配達を希望"`
}

// RedeemResponse 景品交換レスポンス
// @Description 景品交換レスポンス
type RedeemResponse struct {
	RedemptionID int64     `json:"redemption_id" example:"7"`
	RewardName   string    `json:"reward_name" example:"オリジナルTシャツ"`
	Quantity     int64     `json:"quantity" example:"2"`
	TotalCost    int64     `json:"total_cost" example:"5000"`
	BalanceAfter int64     `json:"balance_after" example:"0"`
	StockAfter   int64     `json:"stock_after" example:"8"`
	Status       string    `json:"status" example:"pending_verification"`
	RedeemedAt   time.Time `json:"redeemed_at"`
}

// ConfirmReceiptRequest 受取確認リクエスト
// @Description 受取確認リクエスト
type ConfirmReceiptRequest struct {
	Note string `json:"note" example:"無事受け取りました"`
}

// RedemptionItem 交換レコードアイテム
// @Description 交換レコードアイテム
type RedemptionItem struct {
	RedemptionID  int64      `json:"redemption_id" example:"7"`
	MemberID      int64      `json:"member_id" example:"42"`
	RewardID      int64      `json:"reward_id" example:"1"`
	Quantity      int64      `json:"quantity" example:"2"`
	TotalCost     int64      `json:"total_cost" example:"5000"`
	ShippingNotes string     `json:"shipping_notes,omitempty" example:"平日午前中の配達を希望"`
	Note          string     `json:"note,omitempty" example:"伝票番号 1234-5678"`
	Status        string     `json:"status" example:"processing"`
	RedeemedAt    time.Time  `json:"redeemed_at"`
	ShippedAt     *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

// RedemptionListResponse 交換レコード一覧レスポンス
// @Description 交換レコード一覧レスポンス
type RedemptionListResponse struct {
	Redemptions []RedemptionItem `json:"redemptions"`
	Limit       int              `json:"limit" example:"50"`
	Offset      int              `json:"offset" example:"0"`
}
