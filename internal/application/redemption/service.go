package redemption

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"reward-server/internal/domain/ledger"
	"reward-server/internal/domain/member"
	"reward-server/internal/domain/notification"
	"reward-server/internal/domain/privilege"
	"reward-server/internal/domain/redemption"
	"reward-server/internal/domain/reward"
	"reward-server/internal/domain/transaction"
	otelinfra "reward-server/internal/infrastructure/observability/otel"
)

// RedemptionApplicationService 景品交換アプリケーションサービス
// 交換のコミット（残高減算・在庫減算・レコード作成・台帳追記）と
// 配送ステータスの遷移を担う唯一の書き込み主体。
type RedemptionApplicationService struct {
	memberRepo     member.MemberRepository
	rewardRepo     reward.RewardRepository
	redemptionRepo redemption.RedemptionRepository
	ledgerRepo     ledger.LedgerRepository
	txManager      transaction.TransactionManager
	hierarchy      *privilege.Hierarchy
	notifier       notification.Notifier
	logger         *otelinfra.Logger
	metrics        *otelinfra.Metrics
	tracer         trace.Tracer
	now            func() time.Time
}

// NewRedemptionApplicationService 新しいRedemptionApplicationServiceを作成
func NewRedemptionApplicationService(
	memberRepo member.MemberRepository,
	rewardRepo reward.RewardRepository,
	redemptionRepo redemption.RedemptionRepository,
	ledgerRepo ledger.LedgerRepository,
	txManager transaction.TransactionManager,
	hierarchy *privilege.Hierarchy,
	notifier notification.Notifier,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *RedemptionApplicationService {
	return &RedemptionApplicationService{
		memberRepo:     memberRepo,
		rewardRepo:     rewardRepo,
		redemptionRepo: redemptionRepo,
		ledgerRepo:     ledgerRepo,
		txManager:      txManager,
		hierarchy:      hierarchy,
		notifier:       notifier,
		logger:         logger,
		metrics:        metrics,
		tracer:         otel.Tracer("redemption-service"),
		now:            time.Now,
	}
}

// Redeem 景品を交換する
// 事前条件の検証と変更（残高減算・在庫減算・交換レコード作成・台帳追記）を
// 1つのトランザクション内で行う。会員行と景品行はFOR UPDATEでロックし、
// 検証と書き込みの間に他のリクエストが割り込めないようにする。
// いずれかの手順が適用できない場合は全体がロールバックされる。
func (s *RedemptionApplicationService) Redeem(ctx context.Context, req *RedeemRequest) (*RedeemResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RedemptionApplicationService.Redeem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("member_id", req.MemberID),
		attribute.Int64("reward_id", req.RewardID),
		attribute.Int64("quantity", req.Quantity),
	)

	s.logger.Info(ctx, "Redeeming reward", map[string]interface{}{
		"member_id": req.MemberID,
		"reward_id": req.RewardID,
		"quantity":  req.Quantity,
	})

	// 数量のバリデーション（1以上、システム上限以下）
	if !reward.ValidQuantity(req.Quantity) {
		err := redemption.ErrInvalidQuantity
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var result *RedeemResponse
	err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		// 会員行をロックして取得
		m, err := s.memberRepo.FindByIDForUpdate(ctx, tx, req.MemberID)
		if err != nil {
			return err
		}

		// 景品行をロックして取得。非公開の景品は存在しない扱いとする。
		rw, err := s.rewardRepo.FindByIDForUpdate(ctx, tx, req.RewardID)
		if err != nil {
			return err
		}
		if !rw.IsActive() {
			return reward.ErrRewardNotFound
		}

		// 権限チェック
		if !s.hierarchy.Dominates(m.Privilege(), rw.RequiredPrivilege()) {
			return redemption.ErrPrivilegeDenied
		}

		// 残高減算（不足の場合はErrInsufficientBalance）
		totalCost := reward.TotalCost(rw.UnitCost(), req.Quantity)
		if err := m.Debit(totalCost); err != nil {
			return err
		}

		// 在庫減算（不足の場合はErrOutOfStock）
		if err := rw.DecrementStock(req.Quantity); err != nil {
			return err
		}

		if err := s.memberRepo.SaveBalance(ctx, tx, m); err != nil {
			return err
		}
		if err := s.rewardRepo.SaveStock(ctx, tx, rw); err != nil {
			return err
		}

		// 交換レコードを作成（数量と合計コストはこの時点で凍結）
		now := s.now()
		rec, err := redemption.NewRedemption(m.ID(), rw.ID(), req.Quantity, totalCost, req.ShippingNotes, now)
		if err != nil {
			return err
		}
		redemptionID, err := s.redemptionRepo.Create(ctx, tx, rec)
		if err != nil {
			return err
		}
		rec.SetID(redemptionID)

		// 対応する台帳エントリを追記（金額は負で記録）
		event := fmt.Sprintf("Reward redemption: %s", rw.Name())
		if req.Quantity > 1 {
			event = fmt.Sprintf("Reward redemption: %s (%dx)", rw.Name(), req.Quantity)
		}
		entry, err := ledger.NewEntry(m.ID(), &redemptionID, event, -totalCost, ledger.EntryTypeRedemption, now)
		if err != nil {
			return err
		}
		if err := s.ledgerRepo.Save(ctx, tx, entry); err != nil {
			return err
		}

		result = &RedeemResponse{
			RedemptionID: redemptionID,
			RewardName:   rw.Name(),
			Quantity:     req.Quantity,
			TotalCost:    totalCost,
			BalanceAfter: m.Balance(),
			StockAfter:   rw.Stock(),
			Status:       rec.Status().String(),
			RedeemedAt:   rec.RedeemedAt(),
		}

		return nil
	})

	if err != nil {
		err = s.classifyError(err)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to redeem reward", err, map[string]interface{}{
			"member_id": req.MemberID,
			"reward_id": req.RewardID,
			"quantity":  req.Quantity,
		})
		s.metrics.RecordError(ctx, "redeem_failed")
		return nil, err
	}

	// メトリクス記録
	s.metrics.RecordRedemption(ctx, result.Status)
	s.metrics.RecordCoinBalance(ctx, req.MemberID, result.BalanceAfter)
	s.metrics.RecordRewardStock(ctx, req.RewardID, result.StockAfter)

	// 通知はfire-and-forget（失敗しても交換はロールバックしない）
	s.notify(ctx, req.MemberID, fmt.Sprintf("Your redemption of %s has been received and is awaiting verification.", result.RewardName))

	s.logger.Info(ctx, "Reward redeemed successfully", map[string]interface{}{
		"member_id":     req.MemberID,
		"redemption_id": result.RedemptionID,
		"total_cost":    result.TotalCost,
		"balance_after": result.BalanceAfter,
	})

	return result, nil
}

// AdvanceStatus 交換レコードのステータスを遷移させる
// 遷移は現在ステータスをガード条件とした単一の読み取り・判定・更新として
// 実行され、並行する遷移に追い越されていた場合はErrInvalidTransitionを返す。
func (s *RedemptionApplicationService) AdvanceStatus(ctx context.Context, req *AdvanceStatusRequest) (*RedemptionDTO, error) {
	ctx, span := s.tracer.Start(ctx, "RedemptionApplicationService.AdvanceStatus")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("redemption_id", req.RedemptionID),
		attribute.String("target_status", req.TargetStatus),
		attribute.String("actor_role", req.Actor.Role.String()),
	)

	s.logger.Info(ctx, "Advancing redemption status", map[string]interface{}{
		"redemption_id": req.RedemptionID,
		"target_status": req.TargetStatus,
		"actor_role":    req.Actor.Role.String(),
	})

	target, err := redemption.NewStatus(req.TargetStatus)
	if err != nil {
		span.RecordError(redemption.ErrInvalidTransition)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, redemption.ErrInvalidTransition
	}

	var result *RedemptionDTO
	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		rec, err := s.redemptionRepo.FindByID(ctx, req.RedemptionID)
		if err != nil {
			return err
		}

		from := rec.Status()
		if err := rec.Advance(target, req.Actor, req.Note, s.now()); err != nil {
			return err
		}

		// 遷移元ステータスをガード条件にして更新。並行する遷移が先に
		// コミットしていた場合は0行更新となりErrInvalidTransitionになる。
		if err := s.redemptionRepo.UpdateStatus(ctx, tx, rec, from); err != nil {
			return err
		}

		result = toDTO(rec)
		return nil
	})

	if err != nil {
		err = s.classifyError(err)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to advance redemption status", err, map[string]interface{}{
			"redemption_id": req.RedemptionID,
			"target_status": req.TargetStatus,
		})
		s.metrics.RecordError(ctx, "advance_status_failed")
		return nil, err
	}

	s.metrics.RecordStatusTransition(ctx, result.Status)
	s.notify(ctx, result.MemberID, fmt.Sprintf("Your redemption #%d status has changed to %s.", result.RedemptionID, result.Status))

	s.logger.Info(ctx, "Redemption status advanced", map[string]interface{}{
		"redemption_id": result.RedemptionID,
		"status":        result.Status,
	})

	return result, nil
}

// ConfirmReceipt 会員が受取を確認する
// 所有会員によるshipped -> deliveredの遷移に限定したAdvanceStatusの糖衣。
func (s *RedemptionApplicationService) ConfirmReceipt(ctx context.Context, req *ConfirmReceiptRequest) (*RedemptionDTO, error) {
	return s.AdvanceStatus(ctx, &AdvanceStatusRequest{
		RedemptionID: req.RedemptionID,
		TargetStatus: redemption.StatusDelivered.String(),
		Actor:        redemption.MemberActor(req.MemberID),
		Note:         req.Note,
	})
}

// GetMemberRedemptions 会員の交換レコード一覧を取得
func (s *RedemptionApplicationService) GetMemberRedemptions(ctx context.Context, req *ListRedemptionsRequest) (*ListRedemptionsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RedemptionApplicationService.GetMemberRedemptions")
	defer span.End()

	span.SetAttributes(attribute.Int64("member_id", req.MemberID))

	limit, offset := normalizePage(req.Limit, req.Offset)

	records, err := s.redemptionRepo.FindByMemberID(ctx, req.MemberID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to get member redemptions", err, map[string]interface{}{
			"member_id": req.MemberID,
		})
		return nil, fmt.Errorf("failed to get member redemptions: %w", err)
	}

	return &ListRedemptionsResponse{
		Redemptions: toDTOs(records),
		Limit:       limit,
		Offset:      offset,
	}, nil
}

// ListByStatus ステータス別の交換レコード一覧を取得（管理者向け）
func (s *RedemptionApplicationService) ListByStatus(ctx context.Context, req *ListByStatusRequest) (*ListRedemptionsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "RedemptionApplicationService.ListByStatus")
	defer span.End()

	span.SetAttributes(attribute.String("status", req.Status))

	status, err := redemption.NewStatus(req.Status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	limit, offset := normalizePage(req.Limit, req.Offset)

	records, err := s.redemptionRepo.FindByStatus(ctx, status, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list redemptions by status", err, map[string]interface{}{
			"status": req.Status,
		})
		return nil, fmt.Errorf("failed to list redemptions by status: %w", err)
	}

	return &ListRedemptionsResponse{
		Redemptions: toDTOs(records),
		Limit:       limit,
		Offset:      offset,
	}, nil
}

// notify 通知を送信する。失敗はログに残すのみで呼び出し元へは返さない。
func (s *RedemptionApplicationService) notify(ctx context.Context, memberID int64, message string) {
	n := &notification.Notification{
		MemberID:  memberID,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn(ctx, "Failed to send notification", map[string]interface{}{
			"member_id": memberID,
			"error":     err.Error(),
		})
	}
}

// classifyError ドメインエラーはそのまま返し、それ以外のストレージ起因の
// エラーはErrTransactionFailedとして報告する（全ロールバック済み）。
func (s *RedemptionApplicationService) classifyError(err error) error {
	for _, domainErr := range []error{
		member.ErrMemberNotFound,
		member.ErrInsufficientBalance,
		reward.ErrRewardNotFound,
		reward.ErrOutOfStock,
		redemption.ErrRedemptionNotFound,
		redemption.ErrInvalidQuantity,
		redemption.ErrInvalidTransition,
		redemption.ErrPrivilegeDenied,
	} {
		if errors.Is(err, domainErr) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", redemption.ErrTransactionFailed, err)
}

// toDTOs 交換レコードエンティティのスライスをDTOへ変換
func toDTOs(records []*redemption.Redemption) []*RedemptionDTO {
	dtos := make([]*RedemptionDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, toDTO(r))
	}
	return dtos
}

// normalizePage ページネーションの既定値と上限を適用
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
