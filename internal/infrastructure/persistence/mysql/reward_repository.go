package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"reward-server/internal/domain/reward"
)

// RewardRepository MySQL実装のRewardRepository
type RewardRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewRewardRepository 新しいRewardRepositoryを作成
func NewRewardRepository(db *DB) *RewardRepository {
	return &RewardRepository{
		db:     db,
		tracer: otel.Tracer("reward-repository"),
	}
}

// FindByID 景品IDで景品を取得
func (r *RewardRepository) FindByID(ctx context.Context, id int64) (*reward.Reward, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.FindByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.reward_id", id),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "rewards"),
	)

	query := `
		SELECT id, reward_name, description, unit_cost, stock, required_privilege, is_active
		FROM rewards
		WHERE id = ?
	`

	return r.scanReward(span, r.db.QueryRowContext(ctx, query, id))
}

// FindByIDForUpdate 景品IDで景品を取得し、トランザクション内で行ロックを取る
func (r *RewardRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*reward.Reward, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.FindByIDForUpdate")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.reward_id", id),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "rewards"),
	)

	query := `
		SELECT id, reward_name, description, unit_cost, stock, required_privilege, is_active
		FROM rewards
		WHERE id = ?
		FOR UPDATE
	`

	return r.scanReward(span, tx.QueryRowContext(ctx, query, id))
}

// FindActive 公開中の景品一覧を取得
func (r *RewardRepository) FindActive(ctx context.Context) ([]*reward.Reward, error) {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.FindActive")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "rewards"),
	)

	query := `
		SELECT id, reward_name, description, unit_cost, stock, required_privilege, is_active
		FROM rewards
		WHERE is_active = TRUE
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find active rewards: %w", err)
	}
	defer rows.Close()

	var rewards []*reward.Reward
	for rows.Next() {
		var id int64
		var name, description string
		var unitCost, stock int64
		var requiredPrivilege sql.NullString
		var isActive bool

		if err := rows.Scan(&id, &name, &description, &unitCost, &stock, &requiredPrivilege, &isActive); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}

		rw, err := reward.NewReward(id, name, description, unitCost, stock, requiredPrivilege.String, isActive)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct reward entity: %w", err)
		}
		rewards = append(rewards, rw)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate rewards: %w", err)
	}

	span.SetAttributes(attribute.Int("db.reward_count", len(rewards)))
	span.SetStatus(otelcodes.Ok, "active rewards found")
	return rewards, nil
}

// SaveStock 在庫数をトランザクション内で保存
func (r *RewardRepository) SaveStock(ctx context.Context, tx *sql.Tx, rw *reward.Reward) error {
	ctx, span := r.tracer.Start(ctx, "RewardRepository.SaveStock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.reward_id", rw.ID()),
		attribute.Int64("db.stock", rw.Stock()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "rewards"),
	)

	query := `
		UPDATE rewards
		SET stock = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query, rw.Stock(), rw.ID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save reward stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Error, "reward not found")
		return reward.ErrRewardNotFound
	}

	span.SetStatus(otelcodes.Ok, "reward stock saved")
	return nil
}

// scanReward 1行の結果からRewardエンティティを復元
func (r *RewardRepository) scanReward(span trace.Span, row *sql.Row) (*reward.Reward, error) {
	var id int64
	var name, description string
	var unitCost, stock int64
	var requiredPrivilege sql.NullString
	var isActive bool

	err := row.Scan(&id, &name, &description, &unitCost, &stock, &requiredPrivilege, &isActive)
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "reward not found")
		return nil, reward.ErrRewardNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find reward: %w", err)
	}

	rw, err := reward.NewReward(id, name, description, unitCost, stock, requiredPrivilege.String, isActive)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct reward entity: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.stock", stock))
	span.SetStatus(otelcodes.Ok, "reward found")
	return rw, nil
}
