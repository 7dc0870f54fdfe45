package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"reward-server/internal/domain/redemption"
)

// RedemptionRepository MySQL実装のRedemptionRepository
type RedemptionRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewRedemptionRepository 新しいRedemptionRepositoryを作成
func NewRedemptionRepository(db *DB) *RedemptionRepository {
	return &RedemptionRepository{
		db:     db,
		tracer: otel.Tracer("redemption-repository"),
	}
}

const redemptionColumns = `id, member_id, reward_id, quantity, total_cost, shipping_notes, redemption_notes, status, redeemed_at, shipped_at, delivered_at`

// Create 交換レコードをトランザクション内で作成し、採番されたIDを返す
func (r *RedemptionRepository) Create(ctx context.Context, tx *sql.Tx, rec *redemption.Redemption) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.member_id", rec.MemberID()),
		attribute.Int64("db.reward_id", rec.RewardID()),
		attribute.Int64("db.quantity", rec.Quantity()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "reward_redemptions"),
	)

	query := `
		INSERT INTO reward_redemptions
			(member_id, reward_id, quantity, total_cost, shipping_notes, redemption_notes, status, redeemed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		rec.MemberID(),
		rec.RewardID(),
		rec.Quantity(),
		rec.TotalCost(),
		rec.ShippingNotes(),
		rec.Note(),
		rec.Status().String(),
		rec.RedeemedAt(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to create redemption: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.redemption_id", id))
	span.SetStatus(otelcodes.Ok, "redemption created")
	return id, nil
}

// FindByID 交換レコードIDで取得
func (r *RedemptionRepository) FindByID(ctx context.Context, id int64) (*redemption.Redemption, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.FindByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.redemption_id", id),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "reward_redemptions"),
	)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reward_redemptions
		WHERE id = ?
	`, redemptionColumns)

	rec, err := scanRedemption(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "redemption not found")
		return nil, redemption.ErrRedemptionNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find redemption: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "redemption found")
	return rec, nil
}

// FindByMemberID 会員IDで交換レコード一覧を取得（新しい順）
func (r *RedemptionRepository) FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*redemption.Redemption, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.FindByMemberID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.member_id", memberID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "reward_redemptions"),
	)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reward_redemptions
		WHERE member_id = ?
		ORDER BY redeemed_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, redemptionColumns)

	return r.queryRedemptions(ctx, span, query, memberID, limit, offset)
}

// FindByStatus ステータスで交換レコード一覧を取得（古い順、処理待ちの消化用）
func (r *RedemptionRepository) FindByStatus(ctx context.Context, status redemption.Status, limit, offset int) ([]*redemption.Redemption, error) {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.FindByStatus")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.status", status.String()),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "reward_redemptions"),
	)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reward_redemptions
		WHERE status = ?
		ORDER BY redeemed_at ASC, id ASC
		LIMIT ? OFFSET ?
	`, redemptionColumns)

	return r.queryRedemptions(ctx, span, query, status.String(), limit, offset)
}

// UpdateStatus 遷移元ステータスをガード条件にしてステータスを更新する
// 並行する遷移が先にコミットしていた場合は0行更新となり、
// ErrInvalidTransitionを返す（上書きは決して行わない）。
func (r *RedemptionRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, rec *redemption.Redemption, from redemption.Status) error {
	ctx, span := r.tracer.Start(ctx, "RedemptionRepository.UpdateStatus")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.redemption_id", rec.ID()),
		attribute.String("db.status_from", from.String()),
		attribute.String("db.status_to", rec.Status().String()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "reward_redemptions"),
	)

	query := `
		UPDATE reward_redemptions
		SET status = ?, redemption_notes = ?, shipped_at = ?, delivered_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := tx.ExecContext(ctx, query,
		rec.Status().String(),
		rec.Note(),
		rec.ShippedAt(),
		rec.DeliveredAt(),
		rec.ID(),
		from.String(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to update redemption status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Error, "status guard failed")
		return redemption.ErrInvalidTransition
	}

	span.SetStatus(otelcodes.Ok, "redemption status updated")
	return nil
}

// queryRedemptions 複数行の取得とエンティティ復元
func (r *RedemptionRepository) queryRedemptions(ctx context.Context, span trace.Span, query string, args ...interface{}) ([]*redemption.Redemption, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var records []*redemption.Redemption
	for rows.Next() {
		rec, err := scanRedemption(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate redemptions: %w", err)
	}

	span.SetAttributes(attribute.Int("db.redemption_count", len(records)))
	span.SetStatus(otelcodes.Ok, "redemptions found")
	return records, nil
}

// rowScanner sql.Rowとsql.Rowsの共通スキャンインターフェース
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRedemption 1行の結果からRedemptionエンティティを復元
func scanRedemption(row rowScanner) (*redemption.Redemption, error) {
	var id, memberID, rewardID, quantity, totalCost int64
	var shippingNotes, note string
	var statusStr string
	var redeemedAt time.Time
	var shippedAt, deliveredAt sql.NullTime

	err := row.Scan(&id, &memberID, &rewardID, &quantity, &totalCost, &shippingNotes, &note, &statusStr, &redeemedAt, &shippedAt, &deliveredAt)
	if err != nil {
		return nil, err
	}

	status, err := redemption.NewStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("invalid redemption status in storage: %w", err)
	}

	var shippedAtPtr, deliveredAtPtr *time.Time
	if shippedAt.Valid {
		t := shippedAt.Time
		shippedAtPtr = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		deliveredAtPtr = &t
	}

	return redemption.Reconstruct(id, memberID, rewardID, quantity, totalCost, shippingNotes, note, status, redeemedAt, shippedAtPtr, deliveredAtPtr), nil
}
