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

	"reward-server/internal/domain/ledger"
)

// LedgerRepository MySQL実装のLedgerRepository
type LedgerRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewLedgerRepository 新しいLedgerRepositoryを作成
func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		tracer: otel.Tracer("ledger-repository"),
	}
}

// Save エントリをトランザクション内で追記
func (r *LedgerRepository) Save(ctx context.Context, tx *sql.Tx, e *ledger.Entry) error {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.member_id", e.MemberID()),
		attribute.Int64("db.amount", e.Amount()),
		attribute.String("db.entry_type", e.EntryType().String()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "ledger_entries"),
	)

	query := `
		INSERT INTO ledger_entries (member_id, redemption_id, event, amount, entry_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		e.MemberID(),
		e.RedemptionID(),
		e.Event(),
		e.Amount(),
		e.EntryType().String(),
		e.CreatedAt(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save ledger entry: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "ledger entry saved")
	return nil
}

// FindByMemberID 会員IDでエントリ一覧を取得（新しい順）
func (r *LedgerRepository) FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*ledger.Entry, error) {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.FindByMemberID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.member_id", memberID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "ledger_entries"),
	)

	query := `
		SELECT id, member_id, redemption_id, event, amount, entry_type, created_at
		FROM ledger_entries
		WHERE member_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry
	for rows.Next() {
		var id, mID int64
		var redemptionID sql.NullInt64
		var event string
		var amount int64
		var entryTypeStr string
		var createdAt time.Time

		if err := rows.Scan(&id, &mID, &redemptionID, &event, &amount, &entryTypeStr, &createdAt); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		entryType, err := ledger.NewEntryType(entryTypeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid entry type in storage: %w", err)
		}

		var redemptionIDPtr *int64
		if redemptionID.Valid {
			v := redemptionID.Int64
			redemptionIDPtr = &v
		}

		entries = append(entries, ledger.Reconstruct(id, mID, redemptionIDPtr, event, amount, entryType, createdAt))
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	span.SetAttributes(attribute.Int("db.entry_count", len(entries)))
	span.SetStatus(otelcodes.Ok, "ledger entries found")
	return entries, nil
}
