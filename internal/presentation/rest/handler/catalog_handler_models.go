package handler

// RewardItem 交換可否付きの景品アイテム
// @Description 交換可否付きの景品アイテム
type RewardItem struct {
	RewardID          int64  `json:"reward_id" example:"1"`
	Name              string `json:"name" example:"オリジナルTシャツ"`
	Description       string `json:"description" example:"コミュニティ限定デザイン"`
	UnitCost          int64  `json:"unit_cost" example:"2500"`
	Stock             int64  `json:"stock" example:"10"`
	RequiredPrivilege string `json:"required_privilege,omitempty" example:"plus"`
	HasPrivilege      bool   `json:"has_privilege" example:"true"`
	CanAfford         bool   `json:"can_afford" example:"true"`
	InStock           bool   `json:"in_stock" example:"true"`
	CanRedeem         bool   `json:"can_redeem" example:"true"`
	MaxQuantity       int64  `json:"max_quantity" example:"2"`
}

// CatalogResponse 景品カタログレスポンス
// @Description 景品カタログレスポンス
type CatalogResponse struct {
	MemberID  int64        `json:"member_id" example:"42"`
	Privilege string       `json:"privilege" example:"plus"`
	Balance   int64        `json:"balance" example:"5000"`
	Rewards   []RewardItem `json:"rewards"`
}
