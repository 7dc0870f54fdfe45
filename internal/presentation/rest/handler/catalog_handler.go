package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	catalogapp "reward-server/internal/application/catalog"
)

// CatalogHandler 景品カタログ関連ハンドラー
type CatalogHandler struct {
	catalogService *catalogapp.CatalogApplicationService
}

// NewCatalogHandler 新しいCatalogHandlerを作成
func NewCatalogHandler(catalogService *catalogapp.CatalogApplicationService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListRewards 景品カタログ取得ハンドラー
// @Summary 景品カタログを取得
// @Description 公開中の景品一覧を、自分の権限・残高・在庫に基づく交換可否付きで取得します
// @Tags catalog
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} CatalogResponse "カタログ取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "会員が見つからない"
// @Router /rewards [get]
func (h *CatalogHandler) ListRewards(c echo.Context) error {
	memberID, ok := c.Get("member_id").(int64)
	if !ok || memberID <= 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "member_id not found in token")
	}

	req := &catalogapp.ListEligibilityRequest{
		MemberID: memberID,
	}

	resp, err := h.catalogService.ListEligibility(c.Request().Context(), req)
	if err != nil {
		return err
	}

	rewards := make([]RewardItem, 0, len(resp.Rewards))
	for _, rw := range resp.Rewards {
		rewards = append(rewards, RewardItem{
			RewardID:          rw.RewardID,
			Name:              rw.Name,
			Description:       rw.Description,
			UnitCost:          rw.UnitCost,
			Stock:             rw.Stock,
			RequiredPrivilege: rw.RequiredPrivilege,
			HasPrivilege:      rw.HasPrivilege,
			CanAfford:         rw.CanAfford,
			InStock:           rw.InStock,
			CanRedeem:         rw.CanRedeem,
			MaxQuantity:       rw.MaxQuantity,
		})
	}

	return c.JSON(http.StatusOK, CatalogResponse{
		MemberID:  resp.MemberID,
		Privilege: resp.Privilege,
		Balance:   resp.Balance,
		Rewards:   rewards,
	})
}
