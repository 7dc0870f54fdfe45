package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	redemptionapp "reward-server/internal/application/redemption"
)

// RedemptionHandler 景品交換関連ハンドラー
type RedemptionHandler struct {
	redemptionService *redemptionapp.RedemptionApplicationService
}

// NewRedemptionHandler 新しいRedemptionHandlerを作成
func NewRedemptionHandler(redemptionService *redemptionapp.RedemptionApplicationService) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
	}
}

// Redeem 景品交換ハンドラー
// @Summary 景品を交換
// @Description 残高と在庫を消費して景品を交換します。権限・残高・在庫の全てを満たす必要があります
// @Tags redemption
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body RedeemRequest true "景品交換リクエスト"
// @Success 200 {object} RedeemResponse "交換成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 403 {object} ErrorResponse "権限不足"
// @Failure 404 {object} ErrorResponse "景品が見つからない"
// @Failure 409 {object} ErrorResponse "残高不足または在庫切れ"
// @Router /rewards/redeem [post]
func (h *RedemptionHandler) Redeem(c echo.Context) error {
	memberID, ok := c.Get("member_id").(int64)
	if !ok || memberID <= 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "member_id not found in token")
	}

	var reqBody RedeemRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if reqBody.RewardID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "reward_id is required")
	}

	// 数量未指定の場合は1個として扱う。明示的な0は不正値として後段で弾く
	quantity := int64(1)
	if reqBody.Quantity != nil {
		quantity = *reqBody.Quantity
	}

	req := &redemptionapp.RedeemRequest{
		MemberID:      memberID,
		RewardID:      reqBody.RewardID,
		Quantity:      quantity,
		ShippingNotes: reqBody.ShippingNotes,
	}

	resp, err := h.redemptionService.Redeem(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RedeemResponse{
		RedemptionID: resp.RedemptionID,
		RewardName:   resp.RewardName,
		Quantity:     resp.Quantity,
		TotalCost:    resp.TotalCost,
		BalanceAfter: resp.BalanceAfter,
		StockAfter:   resp.StockAfter,
		Status:       resp.Status,
		RedeemedAt:   resp.RedeemedAt,
	})
}

// ListMemberRedemptions 交換レコード一覧取得ハンドラー
// @Summary 自分の交換レコード一覧を取得
// @Description 指定された会員の交換レコード一覧を取得します。自分のレコードのみ取得可能です
// @Tags redemption
// @Accept json
// @Produce json
// @Security Bearer
// @Param member_id path int true "会員ID" example(42)
// @Param limit query int false "取得件数（最大100）" example(50)
// @Param offset query int false "オフセット" example(0)
// @Success 200 {object} RedemptionListResponse "一覧取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 403 {object} ErrorResponse "他会員のレコードへのアクセス"
// @Router /members/{member_id}/redemptions [get]
func (h *RedemptionHandler) ListMemberRedemptions(c echo.Context) error {
	memberID, ok := c.Get("member_id").(int64)
	if !ok || memberID <= 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "member_id not found in token")
	}

	pathMemberID, err := strconv.ParseInt(c.Param("member_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member_id")
	}

	// 自分以外の交換レコードは取得できない
	if pathMemberID != memberID {
		return echo.NewHTTPError(http.StatusForbidden, "cannot access another member's redemptions")
	}

	limit, offset := parsePagination(c)

	req := &redemptionapp.ListRedemptionsRequest{
		MemberID: memberID,
		Limit:    limit,
		Offset:   offset,
	}

	resp, err := h.redemptionService.GetMemberRedemptions(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRedemptionListResponse(resp))
}

// ConfirmReceipt 受取確認ハンドラー
// @Summary 受取を確認
// @Description 発送済みの交換レコードについて受取を確認し、deliveredへ遷移させます
// @Tags redemption
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "交換レコードID" example(7)
// @Param request body ConfirmReceiptRequest false "受取確認リクエスト"
// @Success 200 {object} RedemptionItem "受取確認成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "交換レコードが見つからない"
// @Failure 409 {object} ErrorResponse "遷移できないステータス"
// @Router /redemptions/{id}/confirm [post]
func (h *RedemptionHandler) ConfirmReceipt(c echo.Context) error {
	memberID, ok := c.Get("member_id").(int64)
	if !ok || memberID <= 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "member_id not found in token")
	}

	redemptionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid redemption id")
	}

	var reqBody ConfirmReceiptRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &redemptionapp.ConfirmReceiptRequest{
		RedemptionID: redemptionID,
		MemberID:     memberID,
		Note:         reqBody.Note,
	}

	resp, err := h.redemptionService.ConfirmReceipt(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRedemptionItem(resp))
}

// parsePagination クエリパラメータからlimit/offsetを取得
func parsePagination(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}

// toRedemptionItem アプリケーション層DTOをレスポンスモデルへ変換
func toRedemptionItem(dto *redemptionapp.RedemptionDTO) RedemptionItem {
	return RedemptionItem{
		RedemptionID:  dto.RedemptionID,
		MemberID:      dto.MemberID,
		RewardID:      dto.RewardID,
		Quantity:      dto.Quantity,
		TotalCost:     dto.TotalCost,
		ShippingNotes: dto.ShippingNotes,
		Note:          dto.Note,
		Status:        dto.Status,
		RedeemedAt:    dto.RedeemedAt,
		ShippedAt:     dto.ShippedAt,
		DeliveredAt:   dto.DeliveredAt,
	}
}

// toRedemptionListResponse 一覧レスポンスを構築
func toRedemptionListResponse(resp *redemptionapp.ListRedemptionsResponse) RedemptionListResponse {
	items := make([]RedemptionItem, 0, len(resp.Redemptions))
	for _, dto := range resp.Redemptions {
		items = append(items, toRedemptionItem(dto))
	}
	return RedemptionListResponse{
		Redemptions: items,
		Limit:       resp.Limit,
		Offset:      resp.Offset,
	}
}
