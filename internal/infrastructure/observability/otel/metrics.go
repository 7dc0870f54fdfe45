package otel

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 交換数
	RedemptionCount metric.Int64Counter

	// ステータス遷移数
	StatusTransitionCount metric.Int64Counter

	// コイン残高の分布
	CoinBalance metric.Int64Gauge

	// 景品在庫の分布
	RewardStock metric.Int64Gauge

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	redemptionCount, err := meter.Int64Counter(
		"redemptions_total",
		metric.WithDescription("Total number of reward redemptions"),
	)
	if err != nil {
		return nil, err
	}

	statusTransitionCount, err := meter.Int64Counter(
		"status_transitions_total",
		metric.WithDescription("Total number of redemption status transitions"),
	)
	if err != nil {
		return nil, err
	}

	coinBalance, err := meter.Int64Gauge(
		"coin_balance",
		metric.WithDescription("Member coin balance"),
	)
	if err != nil {
		return nil, err
	}

	rewardStock, err := meter.Int64Gauge(
		"reward_stock",
		metric.WithDescription("Remaining reward stock"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RedemptionCount:       redemptionCount,
		StatusTransitionCount: statusTransitionCount,
		CoinBalance:           coinBalance,
		RewardStock:           rewardStock,
		RequestCount:          requestCount,
		ResponseTime:          responseTime,
		ErrorCount:            errorCount,
	}, nil
}

// RecordRedemption 交換を記録
func (m *Metrics) RecordRedemption(ctx context.Context, status string) {
	m.RedemptionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("status", status),
		),
	)
}

// RecordStatusTransition ステータス遷移を記録
func (m *Metrics) RecordStatusTransition(ctx context.Context, status string) {
	m.StatusTransitionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("status", status),
		),
	)
}

// RecordCoinBalance コイン残高を記録
func (m *Metrics) RecordCoinBalance(ctx context.Context, memberID, balance int64) {
	m.CoinBalance.Record(ctx, balance,
		metric.WithAttributes(
			attribute.String("member_id", strconv.FormatInt(memberID, 10)),
		),
	)
}

// RecordRewardStock 景品在庫を記録
func (m *Metrics) RecordRewardStock(ctx context.Context, rewardID, stock int64) {
	m.RewardStock.Record(ctx, stock,
		metric.WithAttributes(
			attribute.String("reward_id", strconv.FormatInt(rewardID, 10)),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
