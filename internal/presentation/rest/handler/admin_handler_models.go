package handler

// UpdateStatusRequest ステータス更新リクエスト
// @Description ステータス更新リクエスト
type UpdateStatusRequest struct {
	Status string `json:"status" example:"processing" enums:"processing,shipped,rejected,cancelled"`
	Note   string `json:"note" example:"伝票番号 1234-5678"`
}
