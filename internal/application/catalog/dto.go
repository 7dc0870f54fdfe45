package catalog

// ListEligibilityRequest カタログ取得リクエスト
type ListEligibilityRequest struct {
	MemberID int64
}

// EligibleRewardDTO 交換可否を付与した景品のレスポンス表現
// 3つの独立した判定事実を全て返し、呼び出し側が正確な理由を
// 提示できるようにする。
type EligibleRewardDTO struct {
	RewardID          int64
	Name              string
	Description       string
	UnitCost          int64
	Stock             int64
	RequiredPrivilege string
	HasPrivilege      bool
	CanAfford         bool
	InStock           bool
	CanRedeem         bool
	MaxQuantity       int64
}

// ListEligibilityResponse カタログ取得レスポンス
type ListEligibilityResponse struct {
	MemberID  int64
	Privilege string
	Balance   int64
	Rewards   []*EligibleRewardDTO
}
