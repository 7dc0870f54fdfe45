package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	historyapp "reward-server/internal/application/history"
)

// HistoryHandler 台帳履歴関連ハンドラー
type HistoryHandler struct {
	historyService *historyapp.HistoryApplicationService
}

// NewHistoryHandler 新しいHistoryHandlerを作成
func NewHistoryHandler(historyService *historyapp.HistoryApplicationService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetLedgerHistory 台帳履歴取得ハンドラー
// @Summary 台帳履歴を取得
// @Description 自分のコイン台帳履歴を新しい順で取得します
// @Tags history
// @Accept json
// @Produce json
// @Security Bearer
// @Param member_id path int true "会員ID" example(42)
// @Param limit query int false "取得件数（最大100）" example(50)
// @Param offset query int false "オフセット" example(0)
// @Param entry_type query string false "エントリタイプ" example(reward_redemption)
// @Success 200 {object} LedgerHistoryResponse "履歴取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 403 {object} ErrorResponse "他会員の履歴へのアクセス"
// @Router /members/{member_id}/ledger [get]
func (h *HistoryHandler) GetLedgerHistory(c echo.Context) error {
	memberID, ok := c.Get("member_id").(int64)
	if !ok || memberID <= 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "member_id not found in token")
	}

	pathMemberID, err := strconv.ParseInt(c.Param("member_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member_id")
	}

	// 自分以外の台帳履歴は取得できない
	if pathMemberID != memberID {
		return echo.NewHTTPError(http.StatusForbidden, "cannot access another member's ledger")
	}

	limit, offset := parsePagination(c)

	req := &historyapp.GetLedgerHistoryRequest{
		MemberID:  memberID,
		Limit:     limit,
		Offset:    offset,
		EntryType: c.QueryParam("entry_type"),
	}

	resp, err := h.historyService.GetLedgerHistory(c.Request().Context(), req)
	if err != nil {
		return err
	}

	entries := make([]LedgerEntryItem, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		entries = append(entries, LedgerEntryItem{
			EntryID:      e.EntryID,
			RedemptionID: e.RedemptionID,
			Event:        e.Event,
			Amount:       e.Amount,
			EntryType:    e.EntryType,
			CreatedAt:    e.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, LedgerHistoryResponse{
		MemberID: resp.MemberID,
		Entries:  entries,
		Limit:    resp.Limit,
		Offset:   resp.Offset,
	})
}
