package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	catalogapp "reward-server/internal/application/catalog"
	historyapp "reward-server/internal/application/history"
	redemptionapp "reward-server/internal/application/redemption"
	"reward-server/internal/infrastructure/config"
	otelinfra "reward-server/internal/infrastructure/observability/otel"
	"reward-server/internal/presentation/rest/handler"
	restmiddleware "reward-server/internal/presentation/rest/middleware"
)

// Router REST APIルーター
type Router struct {
	echo              *echo.Echo
	catalogHandler    *handler.CatalogHandler
	redemptionHandler *handler.RedemptionHandler
	adminHandler      *handler.AdminHandler
	historyHandler    *handler.HistoryHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	catalogService *catalogapp.CatalogApplicationService,
	redemptionService *redemptionapp.RedemptionApplicationService,
	historyService *historyapp.HistoryApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, cfg, logger, metrics)

	// ハンドラーの作成
	catalogHandler := handler.NewCatalogHandler(catalogService)
	redemptionHandler := handler.NewRedemptionHandler(redemptionService)
	adminHandler := handler.NewAdminHandler(redemptionService)
	historyHandler := handler.NewHistoryHandler(historyService)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, catalogHandler, redemptionHandler, adminHandler, historyHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:              e,
		catalogHandler:    catalogHandler,
		redemptionHandler: redemptionHandler,
		adminHandler:      adminHandler,
		historyHandler:    historyHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	catalogHandler *handler.CatalogHandler,
	redemptionHandler *handler.RedemptionHandler,
	adminHandler *handler.AdminHandler,
	historyHandler *handler.HistoryHandler,
) {
	// API v1グループ
	api := e.Group("/api/v1")

	// 認証が必要なエンドポイント
	authGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))

	// カタログ関連エンドポイント
	authGroup.GET("/rewards", catalogHandler.ListRewards)

	// 交換関連エンドポイント
	authGroup.POST("/rewards/redeem", redemptionHandler.Redeem)
	authGroup.GET("/members/:member_id/redemptions", redemptionHandler.ListMemberRedemptions)
	authGroup.POST("/redemptions/:id/confirm", redemptionHandler.ConfirmReceipt)

	// 台帳履歴エンドポイント
	authGroup.GET("/members/:member_id/ledger", historyHandler.GetLedgerHistory)

	// 管理APIエンドポイント（APIキー認証）
	adminGroup := api.Group("/admin", restmiddleware.APIKeyMiddleware(&cfg.AdminAPI, logger))
	adminGroup.PUT("/redemptions/:id/status", adminHandler.UpdateStatus)
	adminGroup.GET("/redemptions", adminHandler.ListRedemptions)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
