package history

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"reward-server/internal/domain/ledger"
	otelinfra "reward-server/internal/infrastructure/observability/otel"
)

// HistoryApplicationService 台帳履歴アプリケーションサービス
type HistoryApplicationService struct {
	ledgerRepo ledger.LedgerRepository
	logger     *otelinfra.Logger
	metrics    *otelinfra.Metrics
	tracer     trace.Tracer
}

// NewHistoryApplicationService 新しいHistoryApplicationServiceを作成
func NewHistoryApplicationService(
	ledgerRepo ledger.LedgerRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *HistoryApplicationService {
	return &HistoryApplicationService{
		ledgerRepo: ledgerRepo,
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer("history-service"),
	}
}

// GetLedgerHistory 会員の台帳履歴を取得
func (s *HistoryApplicationService) GetLedgerHistory(ctx context.Context, req *GetLedgerHistoryRequest) (*GetLedgerHistoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "HistoryApplicationService.GetLedgerHistory")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("member_id", req.MemberID),
		attribute.Int("limit", req.Limit),
		attribute.Int("offset", req.Offset),
	)

	s.logger.Info(ctx, "Getting ledger history", map[string]interface{}{
		"member_id":  req.MemberID,
		"limit":      req.Limit,
		"offset":     req.Offset,
		"entry_type": req.EntryType,
	})

	// バリデーション
	if req.Limit <= 0 {
		req.Limit = 50 // デフォルト値
	}
	if req.Limit > 100 {
		req.Limit = 100 // 最大値
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	entries, err := s.ledgerRepo.FindByMemberID(ctx, req.MemberID, req.Limit, req.Offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to get ledger history", err, map[string]interface{}{
			"member_id": req.MemberID,
		})
		return nil, fmt.Errorf("failed to get ledger history: %w", err)
	}

	// エントリタイプフィルタ
	dtos := make([]*LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		if req.EntryType != "" {
			entryType, err := ledger.NewEntryType(req.EntryType)
			if err == nil && e.EntryType() != entryType {
				continue
			}
		}
		dtos = append(dtos, &LedgerEntryDTO{
			EntryID:      e.ID(),
			RedemptionID: e.RedemptionID(),
			Event:        e.Event(),
			Amount:       e.Amount(),
			EntryType:    e.EntryType().String(),
			CreatedAt:    e.CreatedAt(),
		})
	}

	return &GetLedgerHistoryResponse{
		MemberID: req.MemberID,
		Entries:  dtos,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}, nil
}
