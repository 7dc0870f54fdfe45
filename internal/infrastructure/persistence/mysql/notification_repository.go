package mysql

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"reward-server/internal/domain/notification"
)

// NotificationRepository MySQL実装のNotifier
// 通知をnotificationsテーブルに書き込み、クライアントのポーリングで配信する。
type NotificationRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewNotificationRepository 新しいNotificationRepositoryを作成
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		tracer: otel.Tracer("notification-repository"),
	}
}

// Notify 通知を保存
func (r *NotificationRepository) Notify(ctx context.Context, n *notification.Notification) error {
	ctx, span := r.tracer.Start(ctx, "NotificationRepository.Notify")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.member_id", n.MemberID),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "notifications"),
	)

	query := `
		INSERT INTO notifications (member_id, message, created_at)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, n.MemberID, n.Message, n.CreatedAt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save notification: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "notification saved")
	return nil
}
