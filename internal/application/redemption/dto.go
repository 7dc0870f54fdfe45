package redemption

import (
	"time"

	"reward-server/internal/domain/redemption"
)

// RedeemRequest 景品交換リクエスト
type RedeemRequest struct {
	MemberID      int64
	RewardID      int64
	Quantity      int64
	ShippingNotes string
}

// RedeemResponse 景品交換レスポンス
type RedeemResponse struct {
	RedemptionID int64
	RewardName   string
	Quantity     int64
	TotalCost    int64
	BalanceAfter int64
	StockAfter   int64
	Status       string
	RedeemedAt   time.Time
}

// AdvanceStatusRequest ステータス遷移リクエスト
type AdvanceStatusRequest struct {
	RedemptionID int64
	TargetStatus string
	Actor        redemption.Actor
	Note         string
}

// ConfirmReceiptRequest 受取確認リクエスト
type ConfirmReceiptRequest struct {
	RedemptionID int64
	MemberID     int64
	Note         string
}

// ListRedemptionsRequest 交換レコード一覧取得リクエスト
type ListRedemptionsRequest struct {
	MemberID int64
	Limit    int
	Offset   int
}

// ListByStatusRequest ステータス別の交換レコード一覧取得リクエスト（管理者向け）
type ListByStatusRequest struct {
	Status string
	Limit  int
	Offset int
}

// RedemptionDTO 交換レコードのレスポンス表現
type RedemptionDTO struct {
	RedemptionID  int64
	MemberID      int64
	RewardID      int64
	Quantity      int64
	TotalCost     int64
	ShippingNotes string
	Note          string
	Status        string
	RedeemedAt    time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
}

// ListRedemptionsResponse 交換レコード一覧レスポンス
type ListRedemptionsResponse struct {
	Redemptions []*RedemptionDTO
	Limit       int
	Offset      int
}

// toDTO 交換レコードエンティティをDTOへ変換
func toDTO(r *redemption.Redemption) *RedemptionDTO {
	return &RedemptionDTO{
		RedemptionID:  r.ID(),
		MemberID:      r.MemberID(),
		RewardID:      r.RewardID(),
		Quantity:      r.Quantity(),
		TotalCost:     r.TotalCost(),
		ShippingNotes: r.ShippingNotes(),
		Note:          r.Note(),
		Status:        r.Status().String(),
		RedeemedAt:    r.RedeemedAt(),
		ShippedAt:     r.ShippedAt(),
		DeliveredAt:   r.DeliveredAt(),
	}
}
