package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	redemptionapp "reward-server/internal/application/redemption"
	"reward-server/internal/domain/redemption"
)

// AdminHandler 管理API関連ハンドラー
type AdminHandler struct {
	redemptionService *redemptionapp.RedemptionApplicationService
}

// NewAdminHandler 新しいAdminHandlerを作成
func NewAdminHandler(redemptionService *redemptionapp.RedemptionApplicationService) *AdminHandler {
	return &AdminHandler{
		redemptionService: redemptionService,
	}
}

// UpdateStatus ステータス更新ハンドラー（管理API用）
// @Summary 交換レコードのステータスを更新（管理API）
// @Description 交換レコードを指定されたステータスへ遷移させます。許可された遷移のみ実行されます
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "交換レコードID" example(7)
// @Param X-API-Key header string true "APIキー"
// @Param request body UpdateStatusRequest true "ステータス更新リクエスト"
// @Success 200 {object} RedemptionItem "ステータス更新成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "交換レコードが見つからない"
// @Failure 409 {object} ErrorResponse "遷移できないステータス"
// @Router /admin/redemptions/{id}/status [put]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	redemptionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid redemption id")
	}

	var reqBody UpdateStatusRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if reqBody.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	req := &redemptionapp.AdvanceStatusRequest{
		RedemptionID: redemptionID,
		TargetStatus: reqBody.Status,
		Actor:        redemption.AdminActor(),
		Note:         reqBody.Note,
	}

	resp, err := h.redemptionService.AdvanceStatus(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRedemptionItem(resp))
}

// ListRedemptions ステータス別一覧取得ハンドラー（管理API用）
// @Summary 交換レコード一覧を取得（管理API）
// @Description 指定されたステータスの交換レコード一覧を古い順で取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "APIキー"
// @Param status query string true "ステータス" example(pending_verification)
// @Param limit query int false "取得件数（最大100）" example(50)
// @Param offset query int false "オフセット" example(0)
// @Success 200 {object} RedemptionListResponse "一覧取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/redemptions [get]
func (h *AdminHandler) ListRedemptions(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	if _, err := redemption.NewStatus(status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	limit, offset := parsePagination(c)

	req := &redemptionapp.ListByStatusRequest{
		Status: status,
		Limit:  limit,
		Offset: offset,
	}

	resp, err := h.redemptionService.ListByStatus(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRedemptionListResponse(resp))
}
