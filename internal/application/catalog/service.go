package catalog

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"reward-server/internal/domain/member"
	"reward-server/internal/domain/reward"
	"reward-server/internal/domain/service"
	otelinfra "reward-server/internal/infrastructure/observability/otel"
)

// CatalogApplicationService カタログアプリケーションサービス
// 公開中の景品一覧に会員ごとの交換可否を付与して返す。判定は表示目的
// であり、交換時にはトランザクション内で改めて検証される。
type CatalogApplicationService struct {
	memberRepo         member.MemberRepository
	rewardRepo         reward.RewardRepository
	eligibilityService *service.EligibilityService
	logger             *otelinfra.Logger
	metrics            *otelinfra.Metrics
	tracer             trace.Tracer
}

// NewCatalogApplicationService 新しいCatalogApplicationServiceを作成
func NewCatalogApplicationService(
	memberRepo member.MemberRepository,
	rewardRepo reward.RewardRepository,
	eligibilityService *service.EligibilityService,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CatalogApplicationService {
	return &CatalogApplicationService{
		memberRepo:         memberRepo,
		rewardRepo:         rewardRepo,
		eligibilityService: eligibilityService,
		logger:             logger,
		metrics:            metrics,
		tracer:             otel.Tracer("catalog-service"),
	}
}

// ListEligibility 会員向けに交換可否を付与した景品一覧を取得
func (s *CatalogApplicationService) ListEligibility(ctx context.Context, req *ListEligibilityRequest) (*ListEligibilityResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogApplicationService.ListEligibility")
	defer span.End()

	span.SetAttributes(attribute.Int64("member_id", req.MemberID))

	s.logger.Info(ctx, "Listing reward eligibility", map[string]interface{}{
		"member_id": req.MemberID,
	})

	m, err := s.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to find member", err, map[string]interface{}{
			"member_id": req.MemberID,
		})
		return nil, err
	}

	rewards, err := s.rewardRepo.FindActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to find active rewards", err, map[string]interface{}{
			"member_id": req.MemberID,
		})
		return nil, fmt.Errorf("failed to find active rewards: %w", err)
	}

	items := make([]*EligibleRewardDTO, 0, len(rewards))
	for _, rw := range rewards {
		e := s.eligibilityService.Evaluate(m.Privilege(), m.Balance(), rw)
		items = append(items, &EligibleRewardDTO{
			RewardID:          rw.ID(),
			Name:              rw.Name(),
			Description:       rw.Description(),
			UnitCost:          rw.UnitCost(),
			Stock:             rw.Stock(),
			RequiredPrivilege: rw.RequiredPrivilege(),
			HasPrivilege:      e.HasPrivilege,
			CanAfford:         e.CanAfford,
			InStock:           e.InStock,
			CanRedeem:         e.CanRedeem,
			MaxQuantity:       reward.MaxQuantity(m.Balance(), rw.UnitCost(), rw.Stock()),
		})
	}

	span.SetAttributes(attribute.Int("reward_count", len(items)))
	s.metrics.RecordCoinBalance(ctx, m.ID(), m.Balance())

	return &ListEligibilityResponse{
		MemberID:  m.ID(),
		Privilege: m.Privilege(),
		Balance:   m.Balance(),
		Rewards:   items,
	}, nil
}
