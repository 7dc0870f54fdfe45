package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"reward-server/internal/domain/member"
	"reward-server/internal/domain/redemption"
	"reward-server/internal/domain/reward"
	otelinfra "reward-server/internal/infrastructure/observability/otel"
)

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
	}{
		{
			name:      "会員が見つからない",
			err:       member.ErrMemberNotFound,
			wantCode:  http.StatusNotFound,
			wantError: "member_not_found",
		},
		{
			name:      "報酬が見つからない",
			err:       reward.ErrRewardNotFound,
			wantCode:  http.StatusNotFound,
			wantError: "reward_not_found",
		},
		{
			name:      "交換記録が見つからない",
			err:       redemption.ErrRedemptionNotFound,
			wantCode:  http.StatusNotFound,
			wantError: "redemption_not_found",
		},
		{
			name:      "権限不足",
			err:       redemption.ErrPrivilegeDenied,
			wantCode:  http.StatusForbidden,
			wantError: "privilege_denied",
		},
		{
			name:      "残高不足",
			err:       member.ErrInsufficientBalance,
			wantCode:  http.StatusConflict,
			wantError: "insufficient_balance",
		},
		{
			name:      "在庫切れ",
			err:       reward.ErrOutOfStock,
			wantCode:  http.StatusConflict,
			wantError: "out_of_stock",
		},
		{
			name:      "無効なステータス遷移",
			err:       redemption.ErrInvalidTransition,
			wantCode:  http.StatusConflict,
			wantError: "invalid_transition",
		},
		{
			name:      "無効な数量",
			err:       redemption.ErrInvalidQuantity,
			wantCode:  http.StatusBadRequest,
			wantError: "invalid_quantity",
		},
		{
			name:      "無効な金額",
			err:       member.ErrInvalidAmount,
			wantCode:  http.StatusBadRequest,
			wantError: "invalid_amount",
		},
		{
			name:      "ラップされたトランザクション失敗",
			err:       fmt.Errorf("%w: connection lost", redemption.ErrTransactionFailed),
			wantCode:  http.StatusInternalServerError,
			wantError: "transaction_failed",
		},
		{
			name:      "EchoのHTTPエラー",
			err:       echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body"),
			wantCode:  http.StatusUnprocessableEntity,
			wantError: http.StatusText(http.StatusUnprocessableEntity),
		},
		{
			name:      "予期しないエラー",
			err:       errors.New("boom"),
			wantCode:  http.StatusInternalServerError,
			wantError: "internal_server_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := otelinfra.NewLogger(noop.NewTracerProvider().Tracer("test"))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := ErrorHandlerMiddleware(logger)(func(c echo.Context) error {
				return tt.err
			})

			err := handler(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestErrorHandlerMiddleware_成功時は何もしない(t *testing.T) {
	logger := otelinfra.NewLogger(noop.NewTracerProvider().Tracer("test"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ErrorHandlerMiddleware(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := handler(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
