package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	otelinfra "reward-server/internal/infrastructure/observability/otel"

	"reward-server/internal/domain/member"
	"reward-server/internal/domain/redemption"
	"reward-server/internal/domain/reward"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	if errors.Is(err, member.ErrMemberNotFound) {
		logger.Warn(ctx, "Member not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "member_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, reward.ErrRewardNotFound) {
		logger.Warn(ctx, "Reward not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "reward_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption.ErrRedemptionNotFound) {
		logger.Warn(ctx, "Redemption not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "redemption_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption.ErrPrivilegeDenied) {
		logger.Warn(ctx, "Privilege denied", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "privilege_denied",
			Message: err.Error(),
		})
	}

	if errors.Is(err, member.ErrInsufficientBalance) {
		logger.Warn(ctx, "Insufficient balance", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "insufficient_balance",
			Message: err.Error(),
		})
	}

	if errors.Is(err, reward.ErrOutOfStock) {
		logger.Warn(ctx, "Out of stock", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "out_of_stock",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption.ErrInvalidTransition) {
		logger.Warn(ctx, "Invalid status transition", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "invalid_transition",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption.ErrInvalidQuantity) || errors.Is(err, reward.ErrInvalidQuantity) {
		logger.Warn(ctx, "Invalid quantity", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_quantity",
			Message: err.Error(),
		})
	}

	if errors.Is(err, member.ErrInvalidAmount) {
		logger.Warn(ctx, "Invalid amount", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_amount",
			Message: err.Error(),
		})
	}

	if errors.Is(err, redemption.ErrTransactionFailed) {
		logger.Error(ctx, "Redemption transaction failed", err, map[string]interface{}{
			"path": c.Request().URL.Path,
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "transaction_failed",
			Message: "Failed to complete the operation",
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
