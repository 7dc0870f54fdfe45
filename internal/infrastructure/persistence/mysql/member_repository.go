package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"reward-server/internal/domain/member"
)

// MemberRepository MySQL実装のMemberRepository
type MemberRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewMemberRepository 新しいMemberRepositoryを作成
func NewMemberRepository(db *DB) *MemberRepository {
	return &MemberRepository{
		db:     db,
		tracer: otel.Tracer("member-repository"),
	}
}

// FindByID 会員IDで会員を取得
func (r *MemberRepository) FindByID(ctx context.Context, id int64) (*member.Member, error) {
	ctx, span := r.tracer.Start(ctx, "MemberRepository.FindByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.member_id", id),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "members"),
	)

	query := `
		SELECT id, display_name, coin, privilege
		FROM members
		WHERE id = ?
	`

	return r.scanMember(span, r.db.QueryRowContext(ctx, query, id))
}

// FindByIDForUpdate 会員IDで会員を取得し、トランザクション内で行ロックを取る
// ロックはトランザクションのコミットまたはロールバックまで保持される。
func (r *MemberRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*member.Member, error) {
	ctx, span := r.tracer.Start(ctx, "MemberRepository.FindByIDForUpdate")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.member_id", id),
		attribute.String("db.operation", "SELECT FOR UPDATE"),
		attribute.String("db.table", "members"),
	)

	query := `
		SELECT id, display_name, coin, privilege
		FROM members
		WHERE id = ?
		FOR UPDATE
	`

	return r.scanMember(span, tx.QueryRowContext(ctx, query, id))
}

// SaveBalance 残高をトランザクション内で保存
func (r *MemberRepository) SaveBalance(ctx context.Context, tx *sql.Tx, m *member.Member) error {
	ctx, span := r.tracer.Start(ctx, "MemberRepository.SaveBalance")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.member_id", m.ID()),
		attribute.Int64("db.coin", m.Balance()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "members"),
	)

	query := `
		UPDATE members
		SET coin = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query, m.Balance(), m.ID())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save member balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Error, "member not found")
		return member.ErrMemberNotFound
	}

	span.SetStatus(otelcodes.Ok, "member balance saved")
	return nil
}

// scanMember 1行の結果からMemberエンティティを復元
func (r *MemberRepository) scanMember(span trace.Span, row *sql.Row) (*member.Member, error) {
	var id int64
	var displayName string
	var coin int64
	var privilege sql.NullString

	err := row.Scan(&id, &displayName, &coin, &privilege)
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "member not found")
		return nil, member.ErrMemberNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	m, err := member.NewMember(id, displayName, coin, privilege.String)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct member entity: %w", err)
	}

	span.SetAttributes(attribute.Int64("db.coin", coin))
	span.SetStatus(otelcodes.Ok, "member found")
	return m, nil
}
