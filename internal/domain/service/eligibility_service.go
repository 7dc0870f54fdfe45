package service

import (
	"reward-server/internal/domain/privilege"
	"reward-server/internal/domain/reward"
)

// Eligibility 交換可否の判定結果
// 3つの独立した事実を全て報告する。複数が不成立の場合も最初の1つ
// だけでなく全てが偽として返る。
type Eligibility struct {
	HasPrivilege bool // 権限要求を満たしている
	CanAfford    bool // 残高が単価以上ある（最低1個は交換できる）
	InStock      bool // 在庫が1個以上ある
	CanRedeem    bool // 上記3つ全てが真
}

// EligibilityService 交換可否を判定するドメインサービス
// 判定は表示目的の参考情報であり、実際の交換時には同じ条件が
// トランザクション内で改めて検証される。
type EligibilityService struct {
	hierarchy *privilege.Hierarchy
}

// NewEligibilityService 新しいEligibilityServiceを作成
func NewEligibilityService(hierarchy *privilege.Hierarchy) *EligibilityService {
	return &EligibilityService{hierarchy: hierarchy}
}

// Hierarchy 使用中の権限階層を返す
func (s *EligibilityService) Hierarchy() *privilege.Hierarchy {
	return s.hierarchy
}

// Evaluate 会員の権限ラベルと残高から景品の交換可否を判定
func (s *EligibilityService) Evaluate(memberPrivilege string, balance int64, rw *reward.Reward) Eligibility {
	e := Eligibility{
		HasPrivilege: s.hierarchy.Dominates(memberPrivilege, rw.RequiredPrivilege()),
		CanAfford:    balance >= rw.UnitCost(),
		InStock:      rw.InStock(),
	}
	e.CanRedeem = e.HasPrivilege && e.CanAfford && e.InStock
	return e
}
